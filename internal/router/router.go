package router

import (
	"net/http"

	"codeask/internal/handlers"
	"codeask/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the engine. LoadUser runs
// globally in main, so public routes still see the caller when a valid
// token is present.
func RegisterRoutes(r *gin.Engine) {
	questionHandler := handlers.NewQuestionHandler()
	answerHandler := handlers.NewAnswerHandler()
	voteHandler := handlers.NewVoteHandler()
	tagHandler := handlers.NewTagHandler()
	userHandler := handlers.NewUserHandler()
	collectionHandler := handlers.NewCollectionHandler()
	notificationHandler := handlers.NewNotificationHandler()
	webhookHandler := handlers.NewWebhookHandler()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/webhooks/identity", webhookHandler.Identity)

		api.GET("/questions", questionHandler.List)
		api.GET("/questions/top", questionHandler.Top)
		api.GET("/questions/:qid", questionHandler.Detail)
		api.GET("/questions/:qid/answers", answerHandler.List)

		api.GET("/tags", tagHandler.List)
		api.GET("/tags/top", tagHandler.Top)
		api.GET("/tags/:name/questions", tagHandler.Questions)

		api.GET("/community", userHandler.List)
		api.GET("/users/:username", userHandler.Profile)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/questions/recommended", questionHandler.Recommended)
		authed.POST("/questions", questionHandler.Create)
		authed.PUT("/questions/:qid", questionHandler.Update)
		authed.DELETE("/questions/:qid", questionHandler.Delete)

		authed.POST("/questions/:qid/answers", answerHandler.Create)
		authed.DELETE("/answers/:aid", answerHandler.Delete)

		authed.POST("/questions/:qid/upvote", voteHandler.UpvoteQuestion)
		authed.POST("/questions/:qid/downvote", voteHandler.DownvoteQuestion)
		authed.POST("/answers/:aid/upvote", voteHandler.UpvoteAnswer)
		authed.POST("/answers/:aid/downvote", voteHandler.DownvoteAnswer)

		authed.POST("/questions/:qid/save", collectionHandler.Toggle)
		authed.GET("/me/collections", collectionHandler.List)

		authed.GET("/me", userHandler.Me)
		authed.PUT("/me", userHandler.UpdateMe)
		authed.GET("/me/reputation", userHandler.Reputation)

		authed.GET("/me/notifications", notificationHandler.List)
		authed.POST("/me/notifications/read-all", notificationHandler.ReadAll)
		authed.POST("/me/notifications/:id/read", notificationHandler.Read)
	}
}
