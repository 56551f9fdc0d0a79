package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minegram/minegram/internal/server/http/dto"
	"github.com/minegram/minegram/internal/usecase"
)

// WithdrawHandler manages payout endpoints.
type WithdrawHandler struct {
	facade WithdrawFacade
}

// NewWithdrawHandler constructs WithdrawHandler.
func NewWithdrawHandler(facade WithdrawFacade) *WithdrawHandler {
	return &WithdrawHandler{facade: facade}
}

// Coins handles GET /api/withdraw/coins.
func (h *WithdrawHandler) Coins(c *gin.Context) {
	coins, err := h.facade.Coins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.CoinListResponse{Status: statusSuccess, Coins: make([]dto.CoinResponse, 0, len(coins))}
	for _, coin := range coins {
		resp.Coins = append(resp.Coins, dto.NewCoinResponse(coin))
	}
	c.JSON(http.StatusOK, resp)
}

// Request handles POST /api/withdraw.
func (h *WithdrawHandler) Request(c *gin.Context) {
	tgID := CurrentTgID(c)
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	withdrawal, err := h.facade.RequestWithdrawal(c.Request.Context(), tgID, req.Coin, req.Amount, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.WithdrawCreatedResponse{
		Status:     statusSuccess,
		Message:    "withdrawal request accepted",
		Withdrawal: dto.NewWithdrawalResponse(*withdrawal),
	})
}

// History handles GET /api/withdraw/history.
func (h *WithdrawHandler) History(c *gin.Context) {
	tgID := CurrentTgID(c)

	limit := usecase.DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	withdrawals, err := h.facade.WithdrawalHistory(c.Request.Context(), tgID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.WithdrawalHistoryResponse{
		Status:      statusSuccess,
		Count:       len(withdrawals),
		Withdrawals: make([]dto.WithdrawalResponse, 0, len(withdrawals)),
	}
	for _, w := range withdrawals {
		resp.Withdrawals = append(resp.Withdrawals, dto.NewWithdrawalResponse(w))
	}
	c.JSON(http.StatusOK, resp)
}
