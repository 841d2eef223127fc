package jwtauth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/efantasy/league-service/internal/domain/user"
	"github.com/efantasy/league-service/internal/platform/logging"
	"github.com/efantasy/league-service/internal/usecase"
)

// Verifier validates HS256 access tokens whose subject is the numeric user id.
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
	clock  clockwork.Clock
	logger *logging.Logger
}

type Option func(*Verifier)

func WithIssuer(issuer string) Option {
	return func(v *Verifier) {
		v.issuer = strings.TrimSpace(issuer)
	}
}

func WithLeeway(leeway time.Duration) Option {
	return func(v *Verifier) {
		if leeway > 0 {
			v.leeway = leeway
		}
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(v *Verifier) {
		if clock != nil {
			v.clock = clock
		}
	}
}

func NewVerifier(secret string, logger *logging.Logger, opts ...Option) *Verifier {
	if logger == nil {
		logger = logging.Default()
	}
	v := &Verifier{
		secret: []byte(secret),
		clock:  clockwork.NewRealClock(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.clock.Now),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}

	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...); err != nil {
		v.logger.DebugContext(ctx, "access token rejected", "error", err)
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
	}

	userID, err := strconv.ParseInt(strings.TrimSpace(claims.Subject), 10, 64)
	if err != nil || userID <= 0 {
		return user.Principal{}, fmt.Errorf("%w: subject %q is not a user id", usecase.ErrUnauthorized, claims.Subject)
	}

	return user.Principal{UserID: userID}, nil
}
