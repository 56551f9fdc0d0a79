package test

import (
	"context"
	"sync"
	"time"

	"github.com/minegram/minegram/internal/domain/model"
)

// MiningFacadeStub provides controllable behaviour for mining endpoints.
type MiningFacadeStub struct {
	StatusFn  func(context.Context, int64) (float64, error)
	CollectFn func(context.Context, int64) (float64, error)
	WatchAdFn func(context.Context, int64) (float64, error)
}

// MiningStatus delegates to provided function or returns a fixed balance.
func (s MiningFacadeStub) MiningStatus(ctx context.Context, tgID int64) (float64, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, tgID)
	}
	return 100, nil
}

// Collect returns the updated balance after a collection.
func (s MiningFacadeStub) Collect(ctx context.Context, tgID int64) (float64, error) {
	if s.CollectFn != nil {
		return s.CollectFn(ctx, tgID)
	}
	return 110, nil
}

// WatchAd returns the updated balance after an ad reward.
func (s MiningFacadeStub) WatchAd(ctx context.Context, tgID int64) (float64, error) {
	if s.WatchAdFn != nil {
		return s.WatchAdFn(ctx, tgID)
	}
	return 150, nil
}

// WithdrawFacadeStub simulates withdrawal operations.
type WithdrawFacadeStub struct {
	CoinsFn   func(context.Context) ([]model.Coin, error)
	RequestFn func(context.Context, int64, string, float64, string) (*model.Withdrawal, error)
	HistoryFn func(context.Context, int64, int) ([]model.Withdrawal, error)
}

// Coins returns the stubbed catalog.
func (s WithdrawFacadeStub) Coins(ctx context.Context) ([]model.Coin, error) {
	if s.CoinsFn != nil {
		return s.CoinsFn(ctx)
	}
	return []model.Coin{{Symbol: "BTC", Name: "Bitcoin", MinWithdrawal: 100, MaxWithdrawal: 10000, IsActive: true}}, nil
}

// RequestWithdrawal executes the configured withdrawal handler.
func (s WithdrawFacadeStub) RequestWithdrawal(ctx context.Context, tgID int64, coin string, amount float64, email string) (*model.Withdrawal, error) {
	if s.RequestFn != nil {
		return s.RequestFn(ctx, tgID, coin, amount, email)
	}
	now := time.Unix(0, 0)
	return &model.Withdrawal{
		ID:        1,
		TgID:      tgID,
		Coin:      coin,
		Amount:    amount,
		Platform:  model.DefaultPayoutPlatform,
		Email:     email,
		Status:    model.WithdrawalStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// WithdrawalHistory returns preconfigured history.
func (s WithdrawFacadeStub) WithdrawalHistory(ctx context.Context, tgID int64, limit int) ([]model.Withdrawal, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, tgID, limit)
	}
	return []model.Withdrawal{{ID: 1, TgID: tgID, Coin: "TRX", Amount: 150, Status: model.WithdrawalStatusPending, CreatedAt: time.Unix(0, 0)}}, nil
}

// MiningAppFacadeStub aggregates facade dependencies for HTTP layer tests.
type MiningAppFacadeStub struct {
	AuthFacadeStub
	MiningFacadeStub
	WithdrawFacadeStub
}

// PayoutProviderStub fulfils the payout submission contract for tests.
type PayoutProviderStub struct {
	SubmitFn func(context.Context, model.Withdrawal) (string, error)
	Ref      string
	Err      error
}

// Submit returns a configured reference or error.
func (s PayoutProviderStub) Submit(ctx context.Context, w model.Withdrawal) (string, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, w)
	}
	if s.Err != nil {
		return "", s.Err
	}
	if s.Ref != "" {
		return s.Ref, nil
	}
	return "ref-1", nil
}

// SubmissionCall records dispatcher interactions with the repository.
type SubmissionCall struct {
	ID          int64
	ProviderRef string
	Reason      string
}

// WorkerFacadeStub mimics dispatcher interactions with the application facade.
type WorkerFacadeStub struct {
	Batches     [][]model.Withdrawal
	PendingFn   func(context.Context, int) ([]model.Withdrawal, error)
	SubmitFn    func(context.Context, model.Withdrawal) (string, error)
	SubmittedFn func(context.Context, int64, string) error
	RejectedFn  func(context.Context, int64, string) error
	ReleasedFn  func(context.Context, int64) error

	mu        sync.Mutex
	Submitted []SubmissionCall
	Rejected  []SubmissionCall
	Released  []int64
	calls     int
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// PendingWithdrawals returns batches from the configured queue.
func (s *WorkerFacadeStub) PendingWithdrawals(ctx context.Context, limit int) ([]model.Withdrawal, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls < len(s.Batches) {
		batch := s.Batches[s.calls]
		s.calls++
		return batch, nil
	}
	return nil, nil
}

// SubmitPayout returns configured provider reference.
func (s *WorkerFacadeStub) SubmitPayout(ctx context.Context, w model.Withdrawal) (string, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, w)
	}
	return "ref-1", nil
}

// MarkWithdrawalSubmitted records a successful submission.
func (s *WorkerFacadeStub) MarkWithdrawalSubmitted(ctx context.Context, id int64, providerRef string) error {
	if s.SubmittedFn != nil {
		return s.SubmittedFn(ctx, id, providerRef)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Submitted = append(s.Submitted, SubmissionCall{ID: id, ProviderRef: providerRef})
	return nil
}

// MarkWithdrawalRejected records a rejected submission.
func (s *WorkerFacadeStub) MarkWithdrawalRejected(ctx context.Context, id int64, reason string) error {
	if s.RejectedFn != nil {
		return s.RejectedFn(ctx, id, reason)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Rejected = append(s.Rejected, SubmissionCall{ID: id, Reason: reason})
	return nil
}

// ReleaseWithdrawal records a claim returned to the pending queue.
func (s *WorkerFacadeStub) ReleaseWithdrawal(ctx context.Context, id int64) error {
	if s.ReleasedFn != nil {
		return s.ReleasedFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Released = append(s.Released, id)
	return nil
}
