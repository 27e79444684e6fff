package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func signedWebhookContext(t *testing.T, secret, msgID string, ts time.Time, body []byte) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	timestamp := strconv.FormatInt(ts.Unix(), 10)

	key := []byte(secret)
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.%s", msgID, timestamp, body)
	signature := "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/webhooks/identity", nil)
	c.Request.Header.Set("svix-id", msgID)
	c.Request.Header.Set("svix-timestamp", timestamp)
	c.Request.Header.Set("svix-signature", signature)
	return c
}

func TestVerifyWebhookSignature(t *testing.T) {
	t.Setenv("IDENTITY_WEBHOOK_SECRET", "super-secret")
	body := []byte(`{"type":"user.created","data":{"id":"acct_1"}}`)

	t.Run("valid signature", func(t *testing.T) {
		c := signedWebhookContext(t, "super-secret", "msg_1", time.Now(), body)
		assert.True(t, verifyWebhookSignature(c, body))
	})

	t.Run("wrong secret", func(t *testing.T) {
		c := signedWebhookContext(t, "other-secret", "msg_1", time.Now(), body)
		assert.False(t, verifyWebhookSignature(c, body))
	})

	t.Run("tampered body", func(t *testing.T) {
		c := signedWebhookContext(t, "super-secret", "msg_1", time.Now(), body)
		assert.False(t, verifyWebhookSignature(c, []byte(`{"type":"user.deleted"}`)))
	})

	t.Run("stale timestamp", func(t *testing.T) {
		c := signedWebhookContext(t, "super-secret", "msg_1", time.Now().Add(-time.Hour), body)
		assert.False(t, verifyWebhookSignature(c, body))
	})

	t.Run("future timestamp", func(t *testing.T) {
		c := signedWebhookContext(t, "super-secret", "msg_1", time.Now().Add(time.Hour), body)
		assert.False(t, verifyWebhookSignature(c, body))
	})

	t.Run("missing headers", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("POST", "/api/webhooks/identity", nil)
		assert.False(t, verifyWebhookSignature(c, body))
	})
}

func TestVerifyWebhookSignatureEncodedSecret(t *testing.T) {
	raw := []byte("raw-key-material")
	t.Setenv("IDENTITY_WEBHOOK_SECRET", "whsec_"+base64.StdEncoding.EncodeToString(raw))
	body := []byte(`{}`)

	c := signedWebhookContext(t, string(raw), "msg_2", time.Now(), body)
	assert.True(t, verifyWebhookSignature(c, body))
}

func TestVerifyWebhookSignatureNoSecret(t *testing.T) {
	t.Setenv("IDENTITY_WEBHOOK_SECRET", "")
	c := signedWebhookContext(t, "anything", "msg_3", time.Now(), []byte(`{}`))
	assert.False(t, verifyWebhookSignature(c, []byte(`{}`)))
}
