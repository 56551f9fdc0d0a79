package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/domain/model"
	testhelpers "github.com/minegram/minegram/internal/test"
)

func newWithdrawFixture(balance float64) (*WithdrawUseCase, *testhelpers.AccountRepositoryStub, *testhelpers.WithdrawalRepositoryStub) {
	accounts := testhelpers.NewAccountRepositoryStub()
	accounts.Seed(&model.Account{TgID: 1, Username: "miner", Balance: balance, Status: model.AccountStatusActive})

	coins := &testhelpers.CoinRepositoryStub{Coins: []model.Coin{
		{Symbol: "BTC", Name: "Bitcoin", MinWithdrawal: 100, MaxWithdrawal: 10000, IsActive: true},
		{Symbol: "TRX", Name: "Tron", MinWithdrawal: 50, MaxWithdrawal: 10000, IsActive: true},
		{Symbol: "XMR", Name: "Monero", MinWithdrawal: 100, MaxWithdrawal: 10000, IsActive: false},
	}}

	withdrawals := testhelpers.NewWithdrawalRepositoryStub(accounts)
	uc := NewWithdrawUseCase(accounts, coins, withdrawals, &testhelpers.InvalidatorStub{}, discardLogger())
	return uc, accounts, withdrawals
}

func mustBalance(t *testing.T, accounts *testhelpers.AccountRepositoryStub, tgID int64) float64 {
	t.Helper()
	acct, err := accounts.GetByTgID(context.Background(), tgID)
	if err != nil {
		t.Fatalf("fetch account: %v", err)
	}
	return acct.Balance
}

func TestWithdrawRequestSuccess(t *testing.T) {
	uc, accounts, withdrawals := newWithdrawFixture(200)

	w, err := uc.Request(context.Background(), 1, "TRX", 150, "miner@example.com")
	if err != nil {
		t.Fatalf("request returned error: %v", err)
	}
	if w.Status != model.WithdrawalStatusPending {
		t.Fatalf("expected pending status, got %s", w.Status)
	}
	if w.Coin != "TRX" || w.Amount != 150 {
		t.Fatalf("unexpected withdrawal %+v", w)
	}
	if w.Platform != model.DefaultPayoutPlatform {
		t.Fatalf("expected FaucetPay platform, got %q", w.Platform)
	}

	if got := mustBalance(t, accounts, 1); got != 50 {
		t.Fatalf("expected balance 50 after withdrawal, got %v", got)
	}
	if len(withdrawals.Withdrawals) != 1 {
		t.Fatalf("expected one record, got %d", len(withdrawals.Withdrawals))
	}

	acct, _ := accounts.GetByTgID(context.Background(), 1)
	if acct.Email != "miner@example.com" {
		t.Fatalf("expected email persisted, got %q", acct.Email)
	}
}

func TestWithdrawRequestBelowMinimum(t *testing.T) {
	uc, accounts, withdrawals := newWithdrawFixture(100)

	_, err := uc.Request(context.Background(), 1, "BTC", 50, "miner@example.com")
	if err != domainErrors.ErrAmountOutOfRange {
		t.Fatalf("expected out of range error, got %v", err)
	}
	if got := mustBalance(t, accounts, 1); got != 100 {
		t.Fatalf("balance must be unchanged, got %v", got)
	}
	if len(withdrawals.Withdrawals) != 0 {
		t.Fatalf("expected no records, got %d", len(withdrawals.Withdrawals))
	}
}

func TestWithdrawRequestValidationLadder(t *testing.T) {
	cases := []struct {
		name    string
		tgID    int64
		coin    string
		amount  float64
		email   string
		wantErr error
	}{
		{"unknown identity", 999, "BTC", 150, "a@b.com", domainErrors.ErrNotFound},
		{"unknown coin", 1, "DOGE2", 150, "a@b.com", domainErrors.ErrCoinUnavailable},
		{"inactive coin", 1, "XMR", 150, "a@b.com", domainErrors.ErrCoinUnavailable},
		{"zero amount", 1, "BTC", 0, "a@b.com", domainErrors.ErrInvalidAmount},
		{"negative amount", 1, "BTC", -10, "a@b.com", domainErrors.ErrInvalidAmount},
		{"bad email", 1, "BTC", 150, "not-an-email", domainErrors.ErrInvalidEmail},
		{"above maximum", 1, "BTC", 20000, "a@b.com", domainErrors.ErrAmountOutOfRange},
		{"insufficient balance", 1, "BTC", 180, "a@b.com", domainErrors.ErrInsufficientBalance},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, accounts, withdrawals := newWithdrawFixture(170)
			_, err := uc.Request(context.Background(), tc.tgID, tc.coin, tc.amount, tc.email)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if got := mustBalance(t, accounts, 1); got != 170 {
				t.Fatalf("balance must be unchanged, got %v", got)
			}
			if len(withdrawals.Withdrawals) != 0 {
				t.Fatalf("expected no records, got %d", len(withdrawals.Withdrawals))
			}
		})
	}
}

func TestWithdrawRequestBannedAccount(t *testing.T) {
	uc, accounts, withdrawals := newWithdrawFixture(200)
	accounts.Seed(&model.Account{TgID: 2, Username: "cheater", Balance: 500, Status: model.AccountStatusBanned})

	_, err := uc.Request(context.Background(), 2, "BTC", 150, "a@b.com")
	if err != domainErrors.ErrAccountBanned {
		t.Fatalf("expected banned error, got %v", err)
	}
	if got := mustBalance(t, accounts, 2); got != 500 {
		t.Fatalf("balance must be unchanged, got %v", got)
	}
	if len(withdrawals.Withdrawals) != 0 {
		t.Fatalf("expected no records, got %d", len(withdrawals.Withdrawals))
	}
}

func TestConcurrentWithdrawalsCannotOverdraw(t *testing.T) {
	uc, accounts, withdrawals := newWithdrawFixture(100)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.Request(context.Background(), 1, "TRX", 60, "miner@example.com")
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domainErrors.ErrInsufficientBalance):
			failed++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || failed != 1 {
		t.Fatalf("expected exactly one success and one rejection, got %d/%d", succeeded, failed)
	}
	if got := mustBalance(t, accounts, 1); got != 40 {
		t.Fatalf("expected balance 40, got %v", got)
	}
	if len(withdrawals.Withdrawals) != 1 {
		t.Fatalf("expected one record, got %d", len(withdrawals.Withdrawals))
	}
}

func TestWithdrawCoinsListsActiveOnly(t *testing.T) {
	uc, _, _ := newWithdrawFixture(0)

	coins, err := uc.Coins(context.Background())
	if err != nil {
		t.Fatalf("coins returned error: %v", err)
	}
	if len(coins) != 2 {
		t.Fatalf("expected 2 active coins, got %d", len(coins))
	}
	for _, c := range coins {
		if !c.IsActive {
			t.Fatalf("inactive coin leaked: %+v", c)
		}
	}
}

func TestWithdrawHistoryLimits(t *testing.T) {
	uc, _, withdrawals := newWithdrawFixture(100000)

	ctx := context.Background()
	for i := 0; i < 25; i++ {
		if _, err := uc.Request(ctx, 1, "TRX", 100, "miner@example.com"); err != nil {
			t.Fatalf("seed withdrawal %d failed: %v", i, err)
		}
	}
	if len(withdrawals.Withdrawals) != 25 {
		t.Fatalf("expected 25 records, got %d", len(withdrawals.Withdrawals))
	}

	history, err := uc.History(ctx, 1, 0)
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if len(history) != DefaultHistoryLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultHistoryLimit, len(history))
	}

	history, err = uc.History(ctx, 1, 5)
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if len(history) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(history))
	}
	// Most recent first.
	for i := 1; i < len(history); i++ {
		if history[i].ID > history[i-1].ID {
			t.Fatalf("history not ordered most recent first: %v then %v", history[i-1].ID, history[i].ID)
		}
	}

	history, err = uc.History(ctx, 1, 500)
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if len(history) != 25 {
		t.Fatalf("expected capped result of 25, got %d", len(history))
	}
}

func TestWithdrawRequestSurvivesCacheFailure(t *testing.T) {
	accounts := testhelpers.NewAccountRepositoryStub()
	accounts.Seed(&model.Account{TgID: 1, Balance: 200, Status: model.AccountStatusActive})
	coins := &testhelpers.CoinRepositoryStub{Coins: []model.Coin{
		{Symbol: "TRX", MinWithdrawal: 100, MaxWithdrawal: 10000, IsActive: true},
	}}
	withdrawals := testhelpers.NewWithdrawalRepositoryStub(accounts)
	inv := &testhelpers.InvalidatorStub{Err: errors.New("redis down")}
	uc := NewWithdrawUseCase(accounts, coins, withdrawals, inv, discardLogger())

	if _, err := uc.Request(context.Background(), 1, "TRX", 150, "a@b.com"); err != nil {
		t.Fatalf("request must not propagate cache errors, got %v", err)
	}
}
