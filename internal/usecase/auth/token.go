package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier checks HMAC-signed access tokens issued by the identity
// service and extracts the user ID they carry.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// VerifyToken verifies JWT token and returns user ID
func (v *TokenVerifier) VerifyToken(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || strings.TrimSpace(userID) == "" {
		return "", domain.ErrInvalidToken
	}

	return userID, nil
}

// IssueToken signs a token for userID. The API never hands these out; it is
// used by tooling and tests that need a valid credential.
func (v *TokenVerifier) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
