package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string      `json:"error"`
	Kind  domain.Kind `json:"kind"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindInvalidRequest:
		return http.StatusBadRequest
	case domain.KindDuplicateRequest:
		return http.StatusConflict
	case domain.KindQuotaExceeded:
		return http.StatusForbidden
	case domain.KindMissingPreferences:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusServiceUnavailable
	}
}

var publicMessages = map[domain.Kind]string{
	domain.KindUnauthenticated:       "unauthorized",
	domain.KindQuotaExceeded:         "daily request limit reached, upgrade to premium for unlimited requests",
	domain.KindDuplicateRequest:      "request already sent",
	domain.KindMissingPreferences:    "preferences not found",
	domain.KindDependencyUnavailable: "service temporarily unavailable",
}

func respondError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := StatusFor(kind)

	message, ok := publicMessages[kind]
	if !ok {
		message = err.Error()
	}
	if kind == domain.KindDependencyUnavailable {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Kind: kind})
}

func respondBadRequest(c *gin.Context, err error) {
	message := "invalid request body"
	if err != nil && !errors.Is(err, domain.ErrInvalidRequest) {
		message = "invalid request body: " + err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: message, Kind: domain.KindInvalidRequest})
}

// currentUserID reads the ID set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
	}
	return userID, ok
}
