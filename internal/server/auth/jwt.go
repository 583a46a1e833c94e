// Package auth holds the credential primitives of the server: the Token
// Service that issues and validates bearer tokens, password hashing, and the
// request-context plumbing for authenticated identities.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// TokenService issues and validates HS256 tokens. The signing key and the
// lifetime are fixed at construction time.
type TokenService struct {
	secretKey []byte
	issuer    string
	validity  time.Duration
	now       func() time.Time
}

// NewTokenService builds a TokenService. validity must be positive.
func NewTokenService(secretKey []byte, issuer string, validity time.Duration) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		issuer:    issuer,
		validity:  validity,
		now:       time.Now,
	}
}

// Issue signs a token binding accountID and email, valid for the configured
// lifetime starting now.
func (s *TokenService) Issue(accountID, email string) (string, error) {
	if accountID == "" {
		return "", errors.New("empty account id")
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		AccountID: accountID,
		Email:     email,
	})

	return token.SignedString(s.secretKey)
}

// Validate checks signature, algorithm, issuer and expiry and returns the
// decoded claims. Every failure is reported as common.ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.AccountID == "" || claims.Subject != claims.AccountID {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
