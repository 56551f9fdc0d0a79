package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minegram/minegram/internal/server/http/dto"
	"github.com/minegram/minegram/internal/usecase"
)

// MiningHandler manages reward endpoints.
type MiningHandler struct {
	facade MiningFacade
}

// NewMiningHandler constructs MiningHandler.
func NewMiningHandler(facade MiningFacade) *MiningHandler {
	return &MiningHandler{facade: facade}
}

// Status handles GET /api/mining/status.
func (h *MiningHandler) Status(c *gin.Context) {
	tgID := CurrentTgID(c)
	balance, err := h.facade.MiningStatus(c.Request.Context(), tgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MiningStatusResponse{Status: statusSuccess, Balance: balance})
}

// Collect handles POST /api/mining/collect.
func (h *MiningHandler) Collect(c *gin.Context) {
	tgID := CurrentTgID(c)
	balance, err := h.facade.Collect(c.Request.Context(), tgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CollectResponse{
		Status:     statusSuccess,
		Collected:  usecase.CollectReward,
		NewBalance: balance,
	})
}

// WatchAd handles POST /api/mining/ad.
func (h *MiningHandler) WatchAd(c *gin.Context) {
	tgID := CurrentTgID(c)
	balance, err := h.facade.WatchAd(c.Request.Context(), tgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AdRewardResponse{
		Status:     statusSuccess,
		Reward:     usecase.AdReward,
		NewBalance: balance,
	})
}
