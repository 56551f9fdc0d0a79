package test

import (
	"context"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/domain/model"
)

// AccountRepositoryStub stores accounts in-memory for tests. All operations
// are guarded by one mutex so concurrency tests exercise the same
// "atomic against the store" contract the real storage provides.
type AccountRepositoryStub struct {
	mu       sync.Mutex
	Accounts map[int64]*model.Account
	Next     int64
	Err      error
}

// NewAccountRepositoryStub constructs stub repository with initialized state.
func NewAccountRepositoryStub() *AccountRepositoryStub {
	return &AccountRepositoryStub{Accounts: make(map[int64]*model.Account), Next: 1}
}

// Seed inserts an account directly, for test arrangement.
func (s *AccountRepositoryStub) Seed(acct *model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acct.ID == 0 {
		acct.ID = s.Next
		s.Next++
	}
	s.Accounts[acct.TgID] = acct
}

// GetOrCreate returns the stored account or provisions a zero-balance one.
func (s *AccountRepositoryStub) GetOrCreate(ctx context.Context, tgID int64, username string) (*model.Account, bool, error) {
	if s.Err != nil {
		return nil, false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if acct, ok := s.Accounts[tgID]; ok {
		copied := *acct
		return &copied, false, nil
	}
	acct := &model.Account{
		ID:        s.Next,
		TgID:      tgID,
		Username:  username,
		Status:    model.AccountStatusActive,
		CreatedAt: time.Now(),
	}
	s.Next++
	s.Accounts[tgID] = acct
	copied := *acct
	return &copied, true, nil
}

// GetByTgID fetches account by Telegram identity or returns not found.
func (s *AccountRepositoryStub) GetByTgID(ctx context.Context, tgID int64) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if acct, ok := s.Accounts[tgID]; ok {
		copied := *acct
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Credit atomically increases the balance and returns the new value.
// Matching the storage contract, only active accounts are credited.
func (s *AccountRepositoryStub) Credit(ctx context.Context, tgID int64, amount float64) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.Accounts[tgID]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	if acct.Status != model.AccountStatusActive {
		return 0, domainErrors.ErrAccountBanned
	}
	acct.Balance += amount
	return acct.Balance, nil
}

// CoinRepositoryStub serves catalog data from memory.
type CoinRepositoryStub struct {
	mu    sync.Mutex
	Coins []model.Coin
	Err   error
}

// ListActive returns coins flagged active.
func (s *CoinRepositoryStub) ListActive(ctx context.Context) ([]model.Coin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Coin
	for _, c := range s.Coins {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

// Get returns coin by symbol or not found.
func (s *CoinRepositoryStub) Get(ctx context.Context, symbol string) (*model.Coin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.Coins {
		if strings.EqualFold(c.Symbol, symbol) {
			copied := c
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// SeedIfEmpty inserts defaults only when no coins are stored.
func (s *CoinRepositoryStub) SeedIfEmpty(ctx context.Context, defaults []model.Coin) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Coins) > 0 {
		return nil
	}
	s.Coins = append(s.Coins, defaults...)
	return nil
}

// WithdrawalRepositoryStub implements the transactional withdrawal contract
// against an AccountRepositoryStub: balance check, debit, email update and
// record insert happen under the account stub's lock.
type WithdrawalRepositoryStub struct {
	mu          sync.Mutex
	AccountRepo *AccountRepositoryStub
	Withdrawals []model.Withdrawal
	Next        int64
	Err         error
}

// NewWithdrawalRepositoryStub wires the stub to its account store.
func NewWithdrawalRepositoryStub(accounts *AccountRepositoryStub) *WithdrawalRepositoryStub {
	return &WithdrawalRepositoryStub{AccountRepo: accounts, Next: 1}
}

// Create debits the account and appends a Pending record atomically.
func (s *WithdrawalRepositoryStub) Create(ctx context.Context, tgID int64, coin string, amount float64, email string) (*model.Withdrawal, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	s.AccountRepo.mu.Lock()
	defer s.AccountRepo.mu.Unlock()

	acct, ok := s.AccountRepo.Accounts[tgID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if acct.Status != model.AccountStatusActive {
		return nil, domainErrors.ErrAccountBanned
	}
	if acct.Balance < amount {
		return nil, domainErrors.ErrInsufficientBalance
	}

	acct.Balance -= amount
	acct.Email = email

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	w := model.Withdrawal{
		ID:        s.Next,
		TgID:      tgID,
		Coin:      coin,
		Amount:    amount,
		Platform:  model.DefaultPayoutPlatform,
		Email:     email,
		Status:    model.WithdrawalStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Next++
	s.Withdrawals = append(s.Withdrawals, w)
	copied := w
	return &copied, nil
}

// ListByTgID returns stored withdrawals most recent first.
func (s *WithdrawalRepositoryStub) ListByTgID(ctx context.Context, tgID int64, limit int) ([]model.Withdrawal, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Withdrawal
	for i := len(s.Withdrawals) - 1; i >= 0 && len(out) < limit; i-- {
		if s.Withdrawals[i].TgID == tgID {
			out = append(out, s.Withdrawals[i])
		}
	}
	return out, nil
}

// SelectBatchForSubmission claims up to limit Pending withdrawals, moving
// them to Submitting as the real storage does.
func (s *WithdrawalRepositoryStub) SelectBatchForSubmission(ctx context.Context, limit int) ([]model.Withdrawal, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Withdrawal
	for i := range s.Withdrawals {
		if s.Withdrawals[i].Status == model.WithdrawalStatusPending && len(out) < limit {
			s.Withdrawals[i].Status = model.WithdrawalStatusSubmitting
			s.Withdrawals[i].UpdatedAt = time.Now()
			out = append(out, s.Withdrawals[i])
		}
	}
	return out, nil
}

// MarkSubmitted transitions a withdrawal to Approved with provider reference.
func (s *WithdrawalRepositoryStub) MarkSubmitted(ctx context.Context, id int64, providerRef string) error {
	if s.Err != nil {
		return s.Err
	}
	return s.setStatus(id, model.WithdrawalStatusApproved, providerRef, "")
}

// MarkRejected transitions a withdrawal to Rejected and records the reason.
func (s *WithdrawalRepositoryStub) MarkRejected(ctx context.Context, id int64, reason string) error {
	if s.Err != nil {
		return s.Err
	}
	return s.setStatus(id, model.WithdrawalStatusRejected, "", reason)
}

// Release returns a claimed withdrawal to Pending.
func (s *WithdrawalRepositoryStub) Release(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Withdrawals {
		if s.Withdrawals[i].ID == id && s.Withdrawals[i].Status == model.WithdrawalStatusSubmitting {
			s.Withdrawals[i].Status = model.WithdrawalStatusPending
			s.Withdrawals[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *WithdrawalRepositoryStub) setStatus(id int64, status model.WithdrawalStatus, ref, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Withdrawals {
		if s.Withdrawals[i].ID == id {
			s.Withdrawals[i].Status = status
			if ref != "" {
				s.Withdrawals[i].ProviderRef = ref
			}
			if reason != "" {
				s.Withdrawals[i].RejectReason = reason
			}
			s.Withdrawals[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// InvalidatorStub records cache invalidation calls.
type InvalidatorStub struct {
	mu    sync.Mutex
	Calls []int64
	Err   error
}

// InvalidateAccount records the call and returns the configured error.
func (s *InvalidatorStub) InvalidateAccount(ctx context.Context, tgID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, tgID)
	return s.Err
}

// CallCount returns the number of recorded invalidations.
func (s *InvalidatorStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
