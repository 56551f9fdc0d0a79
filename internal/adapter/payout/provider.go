package payout

import (
	"context"

	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/domain/model"
)

// Provider submits an approved-for-payout withdrawal to the payout platform
// and returns an opaque provider reference for the transfer.
type Provider interface {
	Submit(ctx context.Context, w model.Withdrawal) (string, error)
}

// Disabled is used when no payout API is configured. Every submission fails
// with ErrPayoutUnavailable, leaving withdrawals pending for manual handling.
type Disabled struct{}

// Submit always reports the provider as unavailable.
func (Disabled) Submit(context.Context, model.Withdrawal) (string, error) {
	return "", domainErrors.ErrPayoutUnavailable
}
