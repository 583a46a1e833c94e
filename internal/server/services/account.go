// Package services contains server-side business logic. This file implements
// AccountService, which handles sign-up, credential verification and issuing
// bearer tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/dmitrijs2005/fittrack/internal/server/auth"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	minSecretLength = 8
	// bcrypt only looks at the first 72 bytes.
	maxSecretBytes = 72
)

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token   string
	Account *models.Account
}

// AccountService provides the credential store operations:
// - Signup: create an account with a hashed secret
// - Verify: check an email/secret pair
// - Login: Verify, then issue a bearer token
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenService
	logger      logging.Logger
	newID       func() string
}

// NewAccountService constructs an AccountService. The hasher and token service
// are built once at startup from the immutable config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher,
	tokens *auth.TokenService, logger logging.Logger) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
		newID:       uuid.NewString,
	}
}

// Signup validates the input and stores a new account. A second sign-up with
// the same email fails with common.ErrorAlreadyExists.
func (s *AccountService) Signup(ctx context.Context, email, name, secret string) (*models.Account, error) {
	if err := validateSignup(email, name, secret); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	account := &models.Account{ID: s.newID(), Email: email, Name: name, PasswordHash: hash}
	created, err := s.repomanager.Accounts(s.db).Create(ctx, account)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists), errors.Is(err, common.ErrSchemaMissing):
			return nil, fmt.Errorf("error creating account: %w", err)
		}
		s.logger.Error(ctx, "account insert failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "account created", "account_id", created.ID)
	return created, nil
}

// Verify checks email and secret. Unknown email and wrong secret both return
// common.ErrorUnauthorized, and both pay for one bcrypt comparison.
func (s *AccountService) Verify(ctx context.Context, email, secret string) (*models.Account, error) {
	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(secret)
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	if !s.hasher.Compare(account.PasswordHash, secret) {
		return nil, common.ErrorUnauthorized
	}
	return account, nil
}

// Login verifies the credentials and, on success, issues a token for the account.
func (s *AccountService) Login(ctx context.Context, email, secret string) (*LoginResult, error) {
	if email == "" || secret == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	account, err := s.Verify(ctx, email, secret)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "account_id", account.ID, "error", err)
		return nil, common.ErrorInternal
	}
	return &LoginResult{Token: token, Account: account}, nil
}

func validateSignup(email, name, secret string) error {
	if email == "" || name == "" || secret == "" {
		return fmt.Errorf("%w: name, email and password are required", common.ErrorValidation)
	}
	if utf8.RuneCountInString(secret) < minSecretLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minSecretLength)
	}
	if len(secret) > maxSecretBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, maxSecretBytes)
	}
	return nil
}
