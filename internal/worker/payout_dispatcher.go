package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/domain/model"
)

// MiningFacade exposes the subset of application functionality required by the dispatcher.
type MiningFacade interface {
	PendingWithdrawals(ctx context.Context, limit int) ([]model.Withdrawal, error)
	SubmitPayout(ctx context.Context, w model.Withdrawal) (string, error)
	MarkWithdrawalSubmitted(ctx context.Context, id int64, providerRef string) error
	MarkWithdrawalRejected(ctx context.Context, id int64, reason string) error
	ReleaseWithdrawal(ctx context.Context, id int64) error
}

// PayoutDispatcher polls pending withdrawals and submits them to the payout
// platform concurrently.
type PayoutDispatcher struct {
	facade       MiningFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Withdrawal
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPayoutDispatcher constructs the payout worker pool.
func NewPayoutDispatcher(facade MiningFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PayoutDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PayoutDispatcher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Withdrawal, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PayoutDispatcher) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PayoutDispatcher) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PayoutDispatcher) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PayoutDispatcher) fetchAndDispatch(ctx context.Context) {
	withdrawals, err := p.facade.PendingWithdrawals(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch pending withdrawals failed", slog.String("error", err.Error()))
		return
	}
	for _, w := range withdrawals {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- w:
		}
	}
}

func (p *PayoutDispatcher) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case w, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleWithdrawal(ctx, w)
		}
	}
}

// handleWithdrawal submits one claimed withdrawal. An unavailable provider
// releases the claim so the next poll retries it; a definitive provider
// error rejects it.
func (p *PayoutDispatcher) handleWithdrawal(ctx context.Context, w model.Withdrawal) {
	providerRef, err := p.facade.SubmitPayout(ctx, w)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPayoutUnavailable) {
			p.logger.Warn("payout provider unavailable",
				slog.Int64("withdrawal", w.ID),
				slog.String("error", err.Error()),
			)
			if releaseErr := p.facade.ReleaseWithdrawal(ctx, w.ID); releaseErr != nil {
				p.logger.Error("release withdrawal failed", slog.Int64("withdrawal", w.ID), slog.String("error", releaseErr.Error()))
			}
			return
		}
		if markErr := p.facade.MarkWithdrawalRejected(ctx, w.ID, err.Error()); markErr != nil {
			p.logger.Error("mark withdrawal rejected failed", slog.Int64("withdrawal", w.ID), slog.String("error", markErr.Error()))
		}
		return
	}

	if err := p.facade.MarkWithdrawalSubmitted(ctx, w.ID, providerRef); err != nil {
		p.logger.Error("mark withdrawal submitted failed", slog.Int64("withdrawal", w.ID), slog.String("error", err.Error()))
	}
}
