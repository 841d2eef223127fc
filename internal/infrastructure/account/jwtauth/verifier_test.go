package jwtauth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/efantasy/league-service/internal/usecase"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestVerifierVerifyAccessToken(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	verifier := NewVerifier(testSecret, nil, WithIssuer("efantasy"), WithClock(clock))

	valid := jwt.RegisteredClaims{
		Subject:   "42",
		Issuer:    "efantasy",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	t.Run("valid token", func(t *testing.T) {
		principal, err := verifier.VerifyAccessToken(t.Context(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), valid))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if principal.UserID != 42 {
			t.Fatalf("expected user 42, got %d", principal.UserID)
		}
	})

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{name: "empty", token: func(*testing.T) string { return "  " }},
		{name: "wrong secret", token: func(t *testing.T) string {
			return signToken(t, jwt.SigningMethodHS256, []byte("other"), valid)
		}},
		{name: "wrong algorithm", token: func(t *testing.T) string {
			return signToken(t, jwt.SigningMethodHS512, []byte(testSecret), valid)
		}},
		{name: "expired", token: func(t *testing.T) string {
			claims := valid
			claims.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
			return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
		}},
		{name: "missing expiry", token: func(t *testing.T) string {
			claims := valid
			claims.ExpiresAt = nil
			return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
		}},
		{name: "other issuer", token: func(t *testing.T) string {
			claims := valid
			claims.Issuer = "someone-else"
			return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
		}},
		{name: "non numeric subject", token: func(t *testing.T) string {
			claims := valid
			claims.Subject = "abc"
			return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := verifier.VerifyAccessToken(t.Context(), tc.token(t))
			if !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}

	t.Run("expires as the clock moves", func(t *testing.T) {
		laterClock := clockwork.NewFakeClockAt(now)
		later := NewVerifier(testSecret, nil, WithClock(laterClock))
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), valid)
		if _, err := later.VerifyAccessToken(t.Context(), token); err != nil {
			t.Fatalf("unexpected error before expiry: %v", err)
		}
		laterClock.Advance(2 * time.Hour)
		if _, err := later.VerifyAccessToken(t.Context(), token); !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}
