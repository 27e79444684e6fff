package handlers

import (
	"net/http"
	"time"

	"codeask/internal/db"
	"codeask/internal/models"
	"codeask/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TagHandler struct{}

func NewTagHandler() *TagHandler {
	return &TagHandler{}
}

// tagListQuery joins in per-tag question counts and applies search and sort
func tagListQuery(query, filter string) *gorm.DB {
	base := db.DB.Model(&models.Tag{}).
		Select("tags.*, COUNT(question_tags.question_id) AS question_count").
		Joins("LEFT JOIN question_tags ON question_tags.tag_id = tags.id").
		Group("tags.id")

	if query != "" {
		base = base.Where("tags.name ILIKE ?", "%"+query+"%")
	}

	switch filter {
	case "recent":
		base = base.Order("tags.created_at DESC")
	case "old":
		base = base.Order("tags.created_at ASC")
	case "name":
		base = base.Order("tags.name ASC")
	default: // popular
		base = base.Order("question_count DESC, tags.name ASC")
	}

	return base
}

// List handles GET /api/tags with search, filter and pagination
func (h *TagHandler) List(c *gin.Context) {
	query := c.Query("q")
	filter := c.DefaultQuery("filter", "popular")

	_, pageSize, offset := ParsePagination(c)

	// Count distinct tags, not joined rows
	countQuery := db.DB.Model(&models.Tag{})
	if query != "" {
		countQuery = countQuery.Where("name ILIKE ?", "%"+query+"%")
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}

	var tags []models.Tag
	if err := tagListQuery(query, filter).
		Limit(pageSize).
		Offset(offset).
		Find(&tags).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":    tags,
		"total":   total,
		"is_next": HasNextPage(total, offset, len(tags)),
	})
}

// Top handles GET /api/tags/top, the most used tags for the sidebar
func (h *TagHandler) Top(c *gin.Context) {
	cacheKey := "tags:top"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	var tags []models.Tag
	tagListQuery("", "popular").Limit(5).Find(&tags)

	data := gin.H{"tags": tags}
	utils.GetCache().Set(cacheKey, data, 5*time.Minute)

	c.JSON(http.StatusOK, data)
}

// Questions handles GET /api/tags/:name/questions, the listing for one tag
func (h *TagHandler) Questions(c *gin.Context) {
	name := utils.NormalizeTag(c.Param("name"))

	var tag models.Tag
	if err := db.DB.Where("name = ?", name).First(&tag).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Tag not found")
		return
	}

	query := c.Query("q")
	_, pageSize, offset := ParsePagination(c)

	tagged := func() *gorm.DB {
		sub := db.DB.Table("question_tags").
			Select("question_id").
			Where("tag_id = ?", tag.ID)

		base := db.DB.Model(&models.Question{}).Where("id IN (?)", sub)
		if query != "" {
			pattern := "%" + query + "%"
			base = base.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
		}
		return base
	}

	var total int64
	if err := tagged().Count(&total).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch questions")
		return
	}

	var questions []models.Question
	if err := tagged().
		Preload("User").Preload("Tags").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&questions).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch questions")
		return
	}

	fillAnswerCounts(questions)

	c.JSON(http.StatusOK, gin.H{
		"tag":       tag,
		"questions": questions,
		"total":     total,
		"is_next":   HasNextPage(total, offset, len(questions)),
	})
}
