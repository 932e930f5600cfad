package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"barberly/middleware"
	"barberly/models"
	"barberly/services/bonus"
	"barberly/utils"
)

// BonusHandler exposes bonus point balances and admin grants.
type BonusHandler struct {
	Svc bonus.BonusService
}

func NewBonusHandler(svc bonus.BonusService) *BonusHandler {
	return &BonusHandler{Svc: svc}
}

// AssignBonus grants points to a user. Admin only.
func (h *BonusHandler) AssignBonus(c *gin.Context) {
	var input struct {
		UserID string `json:"user_id" binding:"required"`
		Type   string `json:"type" binding:"required"`
		Points int    `json:"points" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Svc.Assign(c.Request.Context(), input.UserID, models.BonusType(input.Type), input.Points); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "assigned"})
}

// GetMyBalance returns the caller's point balance for one bonus type.
func (h *BonusHandler) GetMyBalance(c *gin.Context) {
	bonusType := models.BonusType(c.DefaultQuery("type", string(models.BonusBookingPoints)))
	balance, err := h.Svc.GetBalance(c.Request.Context(), middleware.CallerID(c), bonusType)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// GetMyHistory returns the caller's most recent bonus transactions.
func (h *BonusHandler) GetMyHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	history, err := h.Svc.History(c.Request.Context(), middleware.CallerID(c), limit)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": history})
}
