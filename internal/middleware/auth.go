package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/pkg/auth"
	"log/slog"
	"net/http"
)

const (
	AccountIDKey = "accountID"
	TokenKey     = "accessToken"
)

// AuthMiddleware проверяет JWT токен и список отозванных токенов
func AuthMiddleware(jwtManager *auth.JWTManager, revocations auth.Revocations) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		revoked, err := revocations.IsRevoked(c.Request.Context(), token)
		if err != nil {
			slog.Error("revocation lookup failed", "component", "middleware", "error", err)
		}
		if err != nil || revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is blacklisted"})
			return
		}

		accountID, err := jwtManager.AccountID(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(AccountIDKey, accountID)
		c.Set(TokenKey, token)
		c.Next()
	}
}

func AccountID(c *gin.Context) uuid.UUID {
	return c.MustGet(AccountIDKey).(uuid.UUID)
}
