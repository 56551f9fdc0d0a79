package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minegram/minegram/internal/server/http/dto"
)

// ReferralHandler serves referral program stats.
// TODO: back with a referrals table once invite tracking lands.
type ReferralHandler struct {
	botName string
}

// NewReferralHandler constructs ReferralHandler.
func NewReferralHandler() *ReferralHandler {
	return &ReferralHandler{botName: "MinegramBot"}
}

// Stats handles GET /api/referral/stats.
func (h *ReferralHandler) Stats(c *gin.Context) {
	tgID := CurrentTgID(c)
	c.JSON(http.StatusOK, dto.ReferralStatsResponse{
		Status:    statusSuccess,
		Referrals: 0,
		Earnings:  0,
		Link:      fmt.Sprintf("https://t.me/%s?start=%d", h.botName, tgID),
	})
}
