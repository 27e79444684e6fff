package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"codeask/internal/db"
	"codeask/internal/models"
	"codeask/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// webhookTolerance bounds how stale a signed timestamp may be
const webhookTolerance = 5 * time.Minute

type WebhookHandler struct{}

func NewWebhookHandler() *WebhookHandler {
	return &WebhookHandler{}
}

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ImageURL  string `json:"image_url"`
		Emails    []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// Identity handles POST /api/webhooks/identity: signed account lifecycle
// events from the identity provider, mirrored into the local users table.
func (h *WebhookHandler) Identity(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		JSONError(c, http.StatusBadRequest, "Unreadable payload")
		return
	}

	if !verifyWebhookSignature(c, body) {
		JSONError(c, http.StatusUnauthorized, "Invalid webhook signature")
		return
	}

	var event identityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		JSONError(c, http.StatusBadRequest, "Malformed event payload")
		return
	}
	if event.Data.ID == "" {
		JSONError(c, http.StatusBadRequest, "Missing account id")
		return
	}

	switch event.Type {
	case "user.created", "user.updated":
		user := models.User{
			AccountID: event.Data.ID,
			Username:  event.Data.Username,
			Name:      strings.TrimSpace(event.Data.FirstName + " " + event.Data.LastName),
			Picture:   event.Data.ImageURL,
		}
		if len(event.Data.Emails) > 0 {
			user.Email = event.Data.Emails[0].EmailAddress
		}
		if user.Username == "" {
			user.Username = "user_" + utils.RandString(8)
		}

		err = db.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns(
				[]string{"username", "name", "email", "picture", "updated_at"},
			),
		}).Create(&user).Error
		if err != nil {
			JSONError(c, http.StatusInternalServerError, "Failed to sync account")
			return
		}

	case "user.deleted":
		err = db.DB.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.Where("account_id = ?", event.Data.ID).First(&user).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return nil // already gone, the event is idempotent
				}
				return err
			}
			return deleteUserContent(tx, user.ID)
		})
		if err != nil {
			JSONError(c, http.StatusInternalServerError, "Failed to remove account")
			return
		}

	default:
		// unknown event types are acknowledged, not errors
	}

	utils.GetCache().DeletePrefix("questions:")

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// deleteUserContent removes a user and every row keyed to them
func deleteUserContent(tx *gorm.DB, userID uint) error {
	var questionIDs []uint
	if err := tx.Model(&models.Question{}).Where("user_id = ?", userID).
		Pluck("id", &questionIDs).Error; err != nil {
		return err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Vote{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Collection{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ? OR actor_id = ?", userID, userID).Delete(&models.Notification{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.ReputationLog{}).Error; err != nil {
		return err
	}

	var interactionIDs []uint
	if err := tx.Model(&models.Interaction{}).Where("user_id = ?", userID).
		Pluck("id", &interactionIDs).Error; err != nil {
		return err
	}
	if len(interactionIDs) > 0 {
		if err := tx.Exec("DELETE FROM interaction_tags WHERE interaction_id IN ?", interactionIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", interactionIDs).Delete(&models.Interaction{}).Error; err != nil {
			return err
		}
	}

	// The user's answers on other questions go with them
	if err := tx.Where("user_id = ?", userID).Delete(&models.Answer{}).Error; err != nil {
		return err
	}

	for _, questionID := range questionIDs {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Collection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM question_tags WHERE question_id = ?", questionID).Error; err != nil {
			return err
		}
	}
	if len(questionIDs) > 0 {
		if err := tx.Where("id IN ?", questionIDs).Delete(&models.Question{}).Error; err != nil {
			return err
		}
	}

	return tx.Delete(&models.User{}, userID).Error
}

// verifyWebhookSignature checks the provider's HMAC headers: the signed
// content is "id.timestamp.body" and the signature header carries one or
// more space-separated "v1,<base64>" candidates.
func verifyWebhookSignature(c *gin.Context, body []byte) bool {
	secret := os.Getenv("IDENTITY_WEBHOOK_SECRET")
	if secret == "" {
		return false
	}

	msgID := c.GetHeader("svix-id")
	msgTimestamp := c.GetHeader("svix-timestamp")
	msgSignature := c.GetHeader("svix-signature")
	if msgID == "" || msgTimestamp == "" || msgSignature == "" {
		return false
	}

	ts, err := strconv.ParseInt(msgTimestamp, 10, 64)
	if err != nil {
		return false
	}
	age := time.Since(time.Unix(ts, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return false
	}

	key := []byte(secret)
	if trimmed, ok := strings.CutPrefix(secret, "whsec_"); ok {
		decoded, err := base64.StdEncoding.DecodeString(trimmed)
		if err != nil {
			return false
		}
		key = decoded
	}

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.%s", msgID, msgTimestamp, body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, candidate := range strings.Fields(msgSignature) {
		version, signature, found := strings.Cut(candidate, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return true
		}
	}
	return false
}
