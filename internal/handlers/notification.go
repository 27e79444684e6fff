package handlers

import (
	"net/http"

	"codeask/internal/db"
	"codeask/internal/models"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// List handles GET /api/me/notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	user := MustUser(c)

	_, pageSize, offset := ParsePagination(c)

	var total int64
	db.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&total)

	var unread int64
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).Count(&unread)

	var notifications []models.Notification
	if err := db.DB.Preload("Actor").Preload("Question").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&notifications).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
		"total":         total,
		"is_next":       HasNextPage(total, offset, len(notifications)),
	})
}

// Read handles POST /api/me/notifications/:id/read
func (h *NotificationHandler) Read(c *gin.Context) {
	user := MustUser(c)

	result := db.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Update("is_read", true)
	if result.Error != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	if result.RowsAffected == 0 {
		JSONError(c, http.StatusNotFound, "Notification not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification read"})
}

// ReadAll handles POST /api/me/notifications/read-all
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := MustUser(c)

	if err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications read"})
}
