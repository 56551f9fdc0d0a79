package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/domain/model"
	"github.com/minegram/minegram/internal/domain/repository"
	pkgAuth "github.com/minegram/minegram/internal/pkg/auth"
)

// AuthUseCase handles account provisioning and token management.
type AuthUseCase struct {
	accounts repository.AccountRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(accounts repository.AccountRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{accounts: accounts, hasher: hasher, tokens: strategy}
}

// Login resolves the account for tgID, provisioning it on first contact, and
// returns an auth token. When the stored account carries a password hash the
// supplied password must match it.
func (u *AuthUseCase) Login(ctx context.Context, tgID int64, username, password string) (*model.Account, string, error) {
	if tgID <= 0 {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = fmt.Sprintf("User%d", tgID)
	}

	acct, _, err := u.accounts.GetOrCreate(ctx, tgID, username)
	if err != nil {
		return nil, "", err
	}

	if acct.PasswordHash != "" {
		if err := u.hasher.Compare(acct.PasswordHash, password); err != nil {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
	}

	token, err := u.tokens.IssueToken(acct.TgID)
	if err != nil {
		return nil, "", err
	}

	return acct, token, nil
}

// ParseToken extracts the Telegram ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByTgID fetches account by its Telegram identity.
func (u *AuthUseCase) GetByTgID(ctx context.Context, tgID int64) (*model.Account, error) {
	return u.accounts.GetByTgID(ctx, tgID)
}
