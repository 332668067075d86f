package handler

import (
	"net/http"

	"github.com/gdugdh24/roommate-backend/internal/usecase/account"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountUseCase *account.AccountUseCase
}

func NewAccountHandler(accountUseCase *account.AccountUseCase) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
	}
}

// Delete handles DELETE /account
// @Summary Delete account
// @Description Delete the current user and everything that references them
// @Tags account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /account [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.accountUseCase.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "account deleted"})
}
