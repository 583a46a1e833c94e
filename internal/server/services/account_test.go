package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/dmitrijs2005/fittrack/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAccountService(t *testing.T, repo *fakeAccountsRepo) (*AccountService, *auth.TokenService) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens := auth.NewTokenService([]byte("k"), "fittrack", time.Hour)
	return NewAccountService(db, &fakeRepoManager{a: repo}, hasher, tokens, logging.Nop()), tokens
}

func TestSignup_Success(t *testing.T) {
	repo := newFakeAccountsRepo()
	s, _ := newAccountService(t, repo)

	a, err := s.Signup(context.Background(), "a@x.com", "A", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "a@x.com", a.Email)
	assert.Equal(t, "A", a.Name)

	stored := repo.byEmail["a@x.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password1", stored.PasswordHash, "plaintext must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password1")))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newFakeAccountsRepo()
	s, _ := newAccountService(t, repo)

	_, err := s.Signup(context.Background(), "a@x.com", "A", "password1")
	require.NoError(t, err)

	_, err = s.Signup(context.Background(), "a@x.com", "B", "password2")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Len(t, repo.byEmail, 1)
	assert.Equal(t, "A", repo.byEmail["a@x.com"].Name)
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name, email, user, secret string
	}{
		{"empty email", "", "A", "password1"},
		{"empty name", "a@x.com", "", "password1"},
		{"empty secret", "a@x.com", "A", ""},
		{"short secret", "a@x.com", "A", "pass123"},
		{"seven runes", "a@x.com", "A", "пароль1"},
		{"over bcrypt limit", "a@x.com", "A", strings.Repeat("x", 73)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAccountsRepo()
			s, _ := newAccountService(t, repo)

			_, err := s.Signup(context.Background(), tt.email, tt.user, tt.secret)
			assert.ErrorIs(t, err, common.ErrorValidation)
			assert.Empty(t, repo.byEmail, "no account is created")
		})
	}
}

func TestSignup_EightMultibyteRunesAccepted(t *testing.T) {
	s, _ := newAccountService(t, newFakeAccountsRepo())
	_, err := s.Signup(context.Background(), "a@x.com", "A", "пароль12")
	assert.NoError(t, err)
}

func TestSignup_StorageErrors(t *testing.T) {
	repo := newFakeAccountsRepo()
	s, _ := newAccountService(t, repo)

	repo.createErr = common.ErrSchemaMissing
	_, err := s.Signup(context.Background(), "a@x.com", "A", "password1")
	assert.ErrorIs(t, err, common.ErrSchemaMissing)

	repo.createErr = errors.New("db error: connection refused")
	_, err = s.Signup(context.Background(), "a@x.com", "A", "password1")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestVerify(t *testing.T) {
	repo := newFakeAccountsRepo()
	s, _ := newAccountService(t, repo)
	ctx := context.Background()

	created, err := s.Signup(ctx, "a@x.com", "A", "password1")
	require.NoError(t, err)

	got, err := s.Verify(ctx, "a@x.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, wrongSecret := s.Verify(ctx, "a@x.com", "password2")
	_, unknownEmail := s.Verify(ctx, "ghost@x.com", "password1")
	_, wrongCase := s.Verify(ctx, "A@x.com", "password1")

	assert.Equal(t, common.ErrorUnauthorized, wrongSecret)
	assert.Equal(t, wrongSecret, unknownEmail, "failures must be indistinguishable")
	assert.Equal(t, wrongSecret, wrongCase)
}

func TestVerify_LookupError(t *testing.T) {
	repo := newFakeAccountsRepo()
	repo.getErr = errors.New("db error: timeout")
	s, _ := newAccountService(t, repo)

	_, err := s.Verify(context.Background(), "a@x.com", "password1")
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_SchemaMissing(t *testing.T) {
	repo := newFakeAccountsRepo()
	repo.getErr = fmt.Errorf("%w: relation \"accounts\" does not exist", common.ErrSchemaMissing)
	s, _ := newAccountService(t, repo)

	_, err := s.Login(context.Background(), "a@x.com", "password1")
	assert.ErrorIs(t, err, common.ErrSchemaMissing)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeAccountsRepo()
	s, tokens := newAccountService(t, repo)
	ctx := context.Background()

	created, err := s.Signup(ctx, "a@x.com", "A", "password1")
	require.NoError(t, err)

	res, err := s.Login(ctx, "a@x.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, res.Account.ID)
	assert.Equal(t, "A", res.Account.Name)

	claims, err := tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.AccountID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestLogin_Failures(t *testing.T) {
	repo := newFakeAccountsRepo()
	s, _ := newAccountService(t, repo)
	ctx := context.Background()

	_, err := s.Signup(ctx, "a@x.com", "A", "password1")
	require.NoError(t, err)

	_, err = s.Login(ctx, "a@x.com", "")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Login(ctx, "a@x.com", "nope-nope")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "nobody@x.com", "password1")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}
