package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"codeask/internal/db"
	"codeask/internal/models"
	"codeask/internal/services"
	"codeask/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CollectionHandler struct{}

func NewCollectionHandler() *CollectionHandler {
	return &CollectionHandler{}
}

// Toggle handles POST /api/questions/:qid/save. Saved becomes unsaved and
// back; the response reports the resulting state.
func (h *CollectionHandler) Toggle(c *gin.Context) {
	user := MustUser(c)
	qid := c.Param("qid")

	var question models.Question
	if err := db.DB.Where("qid = ?", qid).First(&question).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Question not found")
		return
	}

	saved := false
	var existing models.Collection
	err := db.DB.Where("user_id = ? AND question_id = ?", user.ID, question.ID).
		First(&existing).Error
	switch {
	case err == nil:
		if err := db.DB.Delete(&existing).Error; err != nil {
			JSONError(c, http.StatusInternalServerError, "Failed to update collection")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry := models.Collection{UserID: user.ID, QuestionID: question.ID}
		if err := db.DB.Create(&entry).Error; err != nil {
			JSONError(c, http.StatusInternalServerError, "Failed to update collection")
			return
		}
		saved = true
	default:
		JSONError(c, http.StatusInternalServerError, "Failed to update collection")
		return
	}

	services.GetRankingService().ScheduleUpdate(question.ID)
	utils.GetCache().Delete(fmt.Sprintf("questions:detail:%s", qid))

	c.JSON(http.StatusOK, gin.H{"is_saved": saved})
}

// List handles GET /api/me/collections, the saved questions with search
func (h *CollectionHandler) List(c *gin.Context) {
	user := MustUser(c)
	query := c.Query("q")

	_, pageSize, offset := ParsePagination(c)

	collected := func() *gorm.DB {
		sub := db.DB.Model(&models.Collection{}).
			Select("question_id").
			Where("user_id = ?", user.ID)

		base := db.DB.Model(&models.Question{}).Where("id IN (?)", sub)
		if query != "" {
			pattern := "%" + query + "%"
			base = base.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
		}
		return base
	}

	var total int64
	if err := collected().Count(&total).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch collection")
		return
	}

	var questions []models.Question
	if err := collected().
		Preload("User").Preload("Tags").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&questions).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch collection")
		return
	}

	fillAnswerCounts(questions)

	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"total":     total,
		"is_next":   HasNextPage(total, offset, len(questions)),
	})
}
