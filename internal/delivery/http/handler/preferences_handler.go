package handler

import (
	"net/http"

	"github.com/gdugdh24/roommate-backend/internal/usecase/preferences"
	"github.com/gin-gonic/gin"
)

type PreferencesHandler struct {
	preferencesUseCase *preferences.PreferencesUseCase
}

func NewPreferencesHandler(preferencesUseCase *preferences.PreferencesUseCase) *PreferencesHandler {
	return &PreferencesHandler{
		preferencesUseCase: preferencesUseCase,
	}
}

// GetMine handles GET /preferences/me
// @Summary Get my preferences
// @Tags preferences
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Preferences
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /preferences/me [get]
func (h *PreferencesHandler) GetMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	prefs, err := h.preferencesUseCase.GetMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// UpdateMine handles PUT /preferences/me
// @Summary Replace my preferences
// @Tags preferences
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body preferences.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} domain.Preferences
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /preferences/me [put]
func (h *PreferencesHandler) UpdateMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req preferences.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	prefs, err := h.preferencesUseCase.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}
