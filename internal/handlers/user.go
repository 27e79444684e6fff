package handlers

import (
	"net/http"

	"codeask/internal/db"
	"codeask/internal/middleware"
	"codeask/internal/models"
	"codeask/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// communityQuery applies search and sort for the member directory
func communityQuery(query, filter string) *gorm.DB {
	base := db.DB.Model(&models.User{})

	if query != "" {
		pattern := "%" + query + "%"
		base = base.Where("username ILIKE ? OR name ILIKE ?", pattern, pattern)
	}

	switch filter {
	case "old_users":
		base = base.Order("created_at ASC")
	case "top_contributors":
		base = base.Order("reputation DESC, created_at ASC")
	default: // new_users
		base = base.Order("created_at DESC")
	}

	return base
}

// List handles GET /api/community, the member directory
func (h *UserHandler) List(c *gin.Context) {
	query := c.Query("q")
	filter := c.DefaultQuery("filter", "new_users")

	_, pageSize, offset := ParsePagination(c)

	var total int64
	if err := communityQuery(query, filter).Count(&total).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch members")
		return
	}

	var users []models.User
	if err := communityQuery(query, filter).
		Limit(pageSize).
		Offset(offset).
		Find(&users).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch members")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":   users,
		"total":   total,
		"is_next": HasNextPage(total, offset, len(users)),
	})
}

// Profile handles GET /api/users/:username with activity stats and a
// questions or answers tab.
func (h *UserHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		JSONError(c, http.StatusNotFound, "User not found")
		return
	}

	var questionCount int64
	db.DB.Model(&models.Question{}).Where("user_id = ?", user.ID).Count(&questionCount)

	var answerCount int64
	db.DB.Model(&models.Answer{}).Where("user_id = ?", user.ID).Count(&answerCount)

	tab := c.DefaultQuery("tab", "questions")
	_, pageSize, offset := ParsePagination(c)

	data := gin.H{
		"user":           user,
		"question_count": questionCount,
		"answer_count":   answerCount,
		"tab":            tab,
	}

	if tab == "answers" {
		var answers []models.Answer
		db.DB.Preload("Question").
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Limit(pageSize).
			Offset(offset).
			Find(&answers)
		data["answers"] = answers
		data["is_next"] = HasNextPage(answerCount, offset, len(answers))
	} else {
		var questions []models.Question
		db.DB.Preload("Tags").
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Limit(pageSize).
			Offset(offset).
			Find(&questions)
		fillAnswerCounts(questions)
		data["questions"] = questions
		data["is_next"] = HasNextPage(questionCount, offset, len(questions))
	}

	c.JSON(http.StatusOK, data)
}

// Me handles GET /api/me for the signed-in user
func (h *UserHandler) Me(c *gin.Context) {
	user := MustUser(c)

	unread, _ := c.Get(middleware.UnreadCountKey)

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"unread_count": unread,
	})
}

type profileInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Bio      string `json:"bio" binding:"max=500"`
	Location string `json:"location" binding:"max=100"`
	Website  string `json:"website" binding:"omitempty,url"`
}

// UpdateMe handles PUT /api/me, the editable profile fields
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := MustUser(c)

	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid profile fields")
		return
	}

	// Username must stay unique across the community
	var clash int64
	db.DB.Model(&models.User{}).
		Where("username = ? AND id <> ?", input.Username, user.ID).
		Count(&clash)
	if clash > 0 {
		JSONError(c, http.StatusConflict, "Username already taken")
		return
	}

	updates := map[string]interface{}{
		"name":     input.Name,
		"username": input.Username,
		"bio":      input.Bio,
		"location": input.Location,
		"website":  input.Website,
	}
	if err := db.DB.Model(user).Updates(updates).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	db.DB.First(user, user.ID)

	// author names appear in cached question payloads
	utils.GetCache().DeletePrefix("questions:")

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Reputation handles GET /api/me/reputation, the ledger behind the counter
func (h *UserHandler) Reputation(c *gin.Context) {
	user := MustUser(c)

	_, pageSize, offset := ParsePagination(c)

	var total int64
	db.DB.Model(&models.ReputationLog{}).Where("user_id = ?", user.ID).Count(&total)

	var entries []models.ReputationLog
	if err := db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&entries).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch reputation history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reputation": user.Reputation,
		"entries":    entries,
		"total":      total,
		"is_next":    HasNextPage(total, offset, len(entries)),
	})
}
