package usecase

import (
	"context"
	"fmt"
	"testing"

	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/domain/model"
	pkgAuth "github.com/minegram/minegram/internal/pkg/auth"
	testhelpers "github.com/minegram/minegram/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(tgID int64) (string, error) {
			return fmt.Sprintf("token-%d", tgID), nil
		},
		ParseFn: func(token string) (int64, error) {
			var id int64
			if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
				return 0, pkgAuth.ErrInvalidToken
			}
			return id, nil
		},
	}
}

func TestAuthUseCaseLoginProvisionsAccount(t *testing.T) {
	repo := testhelpers.NewAccountRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	acct, token, err := uc.Login(ctx, 42, "alice", "")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if acct.TgID != 42 {
		t.Fatalf("unexpected tg id %d", acct.TgID)
	}
	if acct.Balance != 0 {
		t.Fatalf("expected zero balance on first contact, got %v", acct.Balance)
	}
	if acct.Status != model.AccountStatusActive {
		t.Fatalf("expected active status, got %s", acct.Status)
	}
	if token != "token-42" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseLoginIsIdempotentPerIdentity(t *testing.T) {
	repo := testhelpers.NewAccountRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	first, _, err := uc.Login(ctx, 7, "bob", "")
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	second, _, err := uc.Login(ctx, 7, "bob", "")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same account id, got %d and %d", first.ID, second.ID)
	}
	if len(repo.Accounts) != 1 {
		t.Fatalf("expected single account, got %d", len(repo.Accounts))
	}
}

func TestAuthUseCaseLoginDefaultsUsername(t *testing.T) {
	repo := testhelpers.NewAccountRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	acct, _, err := uc.Login(context.Background(), 99, "  ", "")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if acct.Username != "User99" {
		t.Fatalf("expected generated username, got %q", acct.Username)
	}
}

func TestAuthUseCaseLoginRejectsInvalidIdentity(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewAccountRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())
	if _, _, err := uc.Login(context.Background(), 0, "x", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Login(context.Background(), -5, "x", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthUseCaseLoginChecksStoredPassword(t *testing.T) {
	repo := testhelpers.NewAccountRepositoryStub()
	repo.Seed(&model.Account{TgID: 5, Username: "carol", PasswordHash: "hash:secret", Status: model.AccountStatusActive})
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	if _, _, err := uc.Login(context.Background(), 5, "carol", "wrong"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	_, token, err := uc.Login(context.Background(), 5, "carol", "secret")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if token != "token-5" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseLoginRepositoryError(t *testing.T) {
	repo := testhelpers.NewAccountRepositoryStub()
	repo.Err = fmt.Errorf("db down")
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())
	if _, _, err := uc.Login(context.Background(), 1, "x", ""); err == nil {
		t.Fatal("expected repository error")
	}
}

func TestAuthUseCaseLoginIssueTokenError(t *testing.T) {
	strategy := testhelpers.StrategyStub{IssueFn: func(int64) (string, error) {
		return "", fmt.Errorf("cannot issue token")
	}}
	uc := NewAuthUseCase(testhelpers.NewAccountRepositoryStub(), testhelpers.HasherStub{}, strategy)
	if _, _, err := uc.Login(context.Background(), 1, "x", ""); err == nil {
		t.Fatal("expected token issuing error")
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewAccountRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	id, err := uc.ParseToken("token-42")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if _, err := uc.ParseToken("bad-token"); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	if _, err := uc.ParseToken(""); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestAuthUseCaseGetByTgID(t *testing.T) {
	repo := testhelpers.NewAccountRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	acct, _, err := uc.Login(context.Background(), 11, "dave", "")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}

	fetched, err := uc.GetByTgID(context.Background(), acct.TgID)
	if err != nil {
		t.Fatalf("get by tg id returned error: %v", err)
	}
	if fetched.Username != acct.Username {
		t.Fatalf("expected username %q, got %q", acct.Username, fetched.Username)
	}

	if _, err := uc.GetByTgID(context.Background(), 12345); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
