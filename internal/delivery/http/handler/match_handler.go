package handler

import (
	"net/http"

	"github.com/gdugdh24/roommate-backend/internal/usecase/matching"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchingUseCase *matching.MatchingUseCase
}

func NewMatchHandler(matchingUseCase *matching.MatchingUseCase) *MatchHandler {
	return &MatchHandler{
		matchingUseCase: matchingUseCase,
	}
}

// GetCandidates handles GET /match/candidates
// @Summary Find matches
// @Description Candidates scoring at or above the match threshold, best first
// @Tags match
// @Security BearerAuth
// @Produce json
// @Success 200 {object} matching.MatchesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /match/candidates [get]
func (h *MatchHandler) GetCandidates(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	resp, err := h.matchingUseCase.FindMatches(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUser handles GET /users/:id
// @Summary Match details
// @Tags match
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} domain.User
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *MatchHandler) GetUser(c *gin.Context) {
	user, err := h.matchingUseCase.GetMatchDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
