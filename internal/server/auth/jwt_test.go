package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	s := NewTokenService([]byte("super-secret"), "fittrack", time.Hour)

	tok, err := s.Issue("acc-123", "a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := s.Validate(tok)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if claims.AccountID != "acc-123" || claims.Email != "a@x.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatalf("expected iat and exp to be set: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("lifetime = %v, want 1h", got)
	}
}

func TestIssue_EmptyAccount(t *testing.T) {
	t.Parallel()

	s := NewTokenService([]byte("k"), "fittrack", time.Hour)
	if _, err := s.Issue("", "a@x.com"); err == nil {
		t.Fatal("expected error for empty account id")
	}
}

func TestValidate_AcceptedUntilExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	s := NewTokenService([]byte("secret"), "fittrack", 10*time.Minute)
	s.now = func() time.Time { return now }

	tok, err := s.Issue("u1", "u1@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	s.now = func() time.Time { return now.Add(9 * time.Minute) }
	if _, err := s.Validate(tok); err != nil {
		t.Fatalf("token must be valid before expiry, got %v", err)
	}

	s.now = func() time.Time { return now.Add(11 * time.Minute) }
	if _, err := s.Validate(tok); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService([]byte("right-secret"), "fittrack", time.Hour).Issue("u2", "")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewTokenService([]byte("wrong-secret"), "fittrack", time.Hour).Validate(tok)
	if err != common.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for invalid signature, got %v", err)
	}
}

func TestValidate_WrongIssuer(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService([]byte("k"), "someone-else", time.Hour).Issue("u3", "")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewTokenService([]byte("k"), "fittrack", time.Hour).Validate(tok); err != common.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for foreign issuer, got %v", err)
	}
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u4",
			Issuer:    "fittrack",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		AccountID: "u4",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	s := NewTokenService([]byte("k"), "fittrack", time.Hour)
	for _, tk := range []string{tok, none} {
		if _, err := s.Validate(tk); err != common.ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	}
}

func TestValidate_MissingAccountOrExpiry(t *testing.T) {
	t.Parallel()

	noAccount := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "fittrack",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	noExpiry := Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "fittrack", Subject: "u5"}, AccountID: "u5"}

	s := NewTokenService([]byte("k"), "fittrack", time.Hour)
	for name, c := range map[string]Claims{"no account": noAccount, "no expiry": noExpiry} {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("k"))
		if err != nil {
			t.Fatalf("%s: sign: %v", name, err)
		}
		if _, err := s.Validate(tok); err != common.ErrInvalidToken {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestValidate_MalformedAndTampered(t *testing.T) {
	t.Parallel()

	s := NewTokenService([]byte("k"), "fittrack", time.Hour)
	tok, err := s.Issue("u6", "")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(tok, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	for _, in := range []string{"", "not.a.jwt", "garbage", tampered} {
		if _, err := s.Validate(in); err != common.ErrInvalidToken {
			t.Fatalf("Validate(%q): expected ErrInvalidToken, got %v", in, err)
		}
	}
}
