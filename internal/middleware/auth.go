package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"codeask/internal/db"
	"codeask/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const CheckUserKey = "user"
const UnreadCountKey = "unread_count"

var ErrInvalidToken = errors.New("invalid token")

// BearerToken extracts the token from the Authorization header, empty if absent.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ParseAccountID validates a token issued by the identity provider and
// returns its subject, the external account id.
func ParseAccountID(tokenStr string) (string, error) {
	secret := os.Getenv("IDENTITY_JWT_SECRET")
	if secret == "" {
		return "", errors.New("IDENTITY_JWT_SECRET not configured")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// LoadUser resolves the caller's token to the internal user row and sets it
// on the context. Anonymous or unresolvable callers pass through unset.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := BearerToken(c)
		if tokenStr != "" {
			if accountID, err := ParseAccountID(tokenStr); err == nil {
				var user models.User
				if err := db.DB.Where("account_id = ?", accountID).First(&user).Error; err == nil {
					c.Set(CheckUserKey, &user)

					var count int64
					db.DB.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", user.ID, false).Count(&count)
					c.Set(UnreadCountKey, count)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests that did not resolve to a user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}
