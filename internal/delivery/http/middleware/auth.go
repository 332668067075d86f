package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// TokenVerifier resolves an access token to a user ID.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth sets "user_id" in the gin context. The token comes from the
// Authorization header or, for websocket clients, the token query parameter.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			abortUnauthenticated(c, "missing authorization token")
			return
		}

		userID, err := m.verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthenticated(c, "invalid or expired token")
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
		"kind":  domain.KindUnauthenticated,
	})
}
