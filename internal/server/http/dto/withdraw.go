package dto

import (
	"time"

	"github.com/minegram/minegram/internal/domain/model"
)

// WithdrawRequest describes a payout request payload.
type WithdrawRequest struct {
	Coin   string  `json:"coin"`
	Amount float64 `json:"amount"`
	Email  string  `json:"email"`
}

// CoinResponse describes a withdrawable currency.
type CoinResponse struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	MinWithdrawal float64 `json:"minWithdrawal"`
	MaxWithdrawal float64 `json:"maxWithdrawal"`
	IconURL       string  `json:"iconUrl"`
}

// CoinListResponse wraps the active coin catalogue.
type CoinListResponse struct {
	Status string         `json:"status"`
	Coins  []CoinResponse `json:"coins"`
}

// WithdrawalResponse describes a withdrawal history entry.
type WithdrawalResponse struct {
	ID        int64     `json:"id"`
	Coin      string    `json:"coin"`
	Amount    float64   `json:"amount"`
	Platform  string    `json:"platform"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// WithdrawCreatedResponse confirms an accepted withdrawal.
type WithdrawCreatedResponse struct {
	Status     string             `json:"status"`
	Message    string             `json:"message"`
	Withdrawal WithdrawalResponse `json:"withdrawal"`
}

// WithdrawalHistoryResponse wraps a page of withdrawal history.
type WithdrawalHistoryResponse struct {
	Status      string               `json:"status"`
	Count       int                  `json:"count"`
	Withdrawals []WithdrawalResponse `json:"withdrawals"`
}

// NewCoinResponse maps a domain coin to its transport shape.
func NewCoinResponse(c model.Coin) CoinResponse {
	return CoinResponse{
		Symbol:        c.Symbol,
		Name:          c.Name,
		MinWithdrawal: c.MinWithdrawal,
		MaxWithdrawal: c.MaxWithdrawal,
		IconURL:       c.IconURL,
	}
}

// NewWithdrawalResponse maps a domain withdrawal to its transport shape.
// Submitting is a dispatcher-internal state; callers see it as Pending.
func NewWithdrawalResponse(w model.Withdrawal) WithdrawalResponse {
	status := w.Status
	if status == model.WithdrawalStatusSubmitting {
		status = model.WithdrawalStatusPending
	}
	return WithdrawalResponse{
		ID:        w.ID,
		Coin:      w.Coin,
		Amount:    w.Amount,
		Platform:  w.Platform,
		Email:     w.Email,
		Status:    string(status),
		Reason:    w.RejectReason,
		CreatedAt: w.CreatedAt,
	}
}
