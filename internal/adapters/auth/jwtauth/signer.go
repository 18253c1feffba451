package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-adoption/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNotConfigured = errors.New("jwt signer not configured")
	ErrTokenEmpty    = errors.New("token is empty")
)

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Signer firma y verifica tokens HS256.
type Signer struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

var (
	_ auth.AuthVerifier = (*Signer)(nil)
	_ auth.TokenIssuer  = (*Signer)(nil)
)

func NewSigner(secret, issuer string, ttl time.Duration) *Signer {
	return &Signer{
		key:    []byte(secret),
		issuer: strings.TrimSpace(issuer),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Sign emite un token para c; el UserID va en "sub".
func (s *Signer) Sign(c auth.Claims) (string, error) {
	if s == nil || len(s.key) == 0 {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(c.UserID) == "" {
		return "", errors.New("claims missing user id")
	}

	now := s.now()
	tc := tokenClaims{
		Email: c.Email,
		Role:  string(c.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Signer) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if s == nil || len(s.key) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("parse token: %w", err)
	}

	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return auth.Claims{}, fmt.Errorf("unknown claims type: %T", parsed.Claims)
	}
	if strings.TrimSpace(tc.Subject) == "" {
		return auth.Claims{}, errors.New("token missing subject")
	}

	return auth.Claims{UserID: tc.Subject, Email: tc.Email, Role: auth.ParseRole(tc.Role)}, nil
}
