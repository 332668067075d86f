package handler

import (
	"net/http"

	"github.com/gdugdh24/roommate-backend/internal/usecase/request"
	"github.com/gin-gonic/gin"
)

type MatchRequestHandler struct {
	requestUseCase *request.RequestUseCase
}

func NewMatchRequestHandler(requestUseCase *request.RequestUseCase) *MatchRequestHandler {
	return &MatchRequestHandler{
		requestUseCase: requestUseCase,
	}
}

// CreateMatchResponse is returned after a request is stored
type CreateMatchResponse struct {
	Success bool `json:"success"`
	Match   any  `json:"match"`
}

// CreateRequest handles POST /match/request
// @Summary Send match request
// @Description Send a match request to another user, optionally with a message
// @Tags match
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateMatchRequest true "Match request"
// @Success 201 {object} CreateMatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /match/request [post]
func (h *MatchRequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	match, err := h.requestUseCase.CreateRequest(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateMatchResponse{Success: true, Match: match})
}

// ListPending handles GET /match/request
// @Summary Pending match requests
// @Description Requests received by the current user, with sender details
// @Tags match
// @Security BearerAuth
// @Produce json
// @Success 200 {object} request.PendingRequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /match/request [get]
func (h *MatchRequestHandler) ListPending(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	resp, err := h.requestUseCase.ListPending(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
