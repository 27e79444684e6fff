package handlers

import (
	"fmt"
	"net/http"

	"codeask/internal/db"
	"codeask/internal/models"
	"codeask/internal/services"
	"codeask/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnswerHandler struct{}

func NewAnswerHandler() *AnswerHandler {
	return &AnswerHandler{}
}

type answerInput struct {
	Content string `json:"content" binding:"required,min=10"`
}

// Create handles POST /api/questions/:qid/answers. Answer, interaction,
// reputation and the author notification commit together.
func (h *AnswerHandler) Create(c *gin.Context) {
	user := MustUser(c)
	qid := c.Param("qid")

	var input answerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "Answer content is required")
		return
	}

	var question models.Question
	if err := db.DB.Preload("Tags").Where("qid = ?", qid).First(&question).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Question not found")
		return
	}

	answer := models.Answer{
		Aid:        utils.RandString(8),
		QuestionID: question.ID,
		UserID:     user.ID,
		Content:    input.Content,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}

		// The answer inherits the question's tags for recommendation history
		interaction := models.Interaction{
			UserID:     user.ID,
			Action:     models.InteractionAnswerQuestion,
			QuestionID: &question.ID,
		}
		if err := tx.Create(&interaction).Error; err != nil {
			return err
		}
		if len(question.Tags) > 0 {
			if err := tx.Model(&interaction).Association("Tags").Append(&question.Tags); err != nil {
				return err
			}
		}

		if err := services.AddReputationTx(tx, user.ID, services.ReputationAnswerCreate, services.ActionAnswerCreate); err != nil {
			return err
		}

		// Answering your own question is allowed but not notified
		if question.UserID != user.ID {
			notification := models.Notification{
				UserID:     question.UserID,
				ActorID:    &user.ID,
				QuestionID: &question.ID,
				Type:       models.NotificationTypeAnswer,
				Reason:     user.Username + " answered your question",
			}
			if err := tx.Create(&notification).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to post answer")
		return
	}

	services.GetRankingService().ScheduleUpdate(question.ID)
	utils.GetCache().Delete(fmt.Sprintf("questions:detail:%s", qid))
	utils.GetCache().DeletePrefix("questions:list:")

	db.DB.Preload("User").First(&answer, answer.ID)

	c.JSON(http.StatusCreated, gin.H{"answer": answer})
}

// answerListQuery builds the ordered base query for a question's answers
func answerListQuery(questionID uint, filter string) *gorm.DB {
	base := db.DB.Model(&models.Answer{}).Where("question_id = ?", questionID)

	switch filter {
	case "highestUpvotes":
		base = base.Order("score DESC, created_at DESC")
	case "lowestUpvotes":
		base = base.Order("score ASC, created_at DESC")
	case "old":
		base = base.Order("created_at ASC")
	default: // recent
		base = base.Order("created_at DESC")
	}

	return base
}

// List handles GET /api/questions/:qid/answers with sort filter and pagination
func (h *AnswerHandler) List(c *gin.Context) {
	qid := c.Param("qid")
	filter := c.DefaultQuery("filter", "recent")

	var question models.Question
	if err := db.DB.Select("id").Where("qid = ?", qid).First(&question).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Question not found")
		return
	}

	_, pageSize, offset := ParsePagination(c)

	var total int64
	if err := answerListQuery(question.ID, filter).Count(&total).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch answers")
		return
	}

	var answers []models.Answer
	if err := answerListQuery(question.ID, filter).
		Preload("User").
		Limit(pageSize).
		Offset(offset).
		Find(&answers).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch answers")
		return
	}

	rendered := make([]gin.H, len(answers))
	for i, answer := range answers {
		rendered[i] = gin.H{
			"answer":       answer,
			"content_html": utils.RenderMarkdown(answer.Content),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"answers": rendered,
		"total":   total,
		"is_next": HasNextPage(total, offset, len(answers)),
	})
}

// Delete handles DELETE /api/answers/:aid (author only), removing the
// answer's votes with it.
func (h *AnswerHandler) Delete(c *gin.Context) {
	user := MustUser(c)
	aid := c.Param("aid")

	var answer models.Answer
	if err := db.DB.Preload("Question").Where("aid = ?", aid).First(&answer).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Answer not found")
		return
	}

	if answer.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "You can only delete your own answers")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_id = ?", answer.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&answer).Error
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to delete answer")
		return
	}

	services.GetRankingService().ScheduleUpdate(answer.QuestionID)
	utils.GetCache().Delete(fmt.Sprintf("questions:detail:%s", answer.Question.Qid))
	utils.GetCache().DeletePrefix("questions:list:")

	c.JSON(http.StatusOK, gin.H{"message": "Answer deleted"})
}
