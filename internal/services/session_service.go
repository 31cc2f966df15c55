package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stockops/adjustment-e2e/internal/config"
	"github.com/stockops/adjustment-e2e/internal/logger"
)

// expirySkew is the minimum remaining lifetime a token needs to outlast a suite
const expirySkew = 5 * time.Minute

// ErrTokenExpired is returned for a token that expires before the suite can finish
var ErrTokenExpired = errors.New("access token expired")

// SessionService acquires the access token a suite runs with
type SessionService interface {
	AcquireToken(ctx context.Context) (string, error)
}

// SessionServiceImpl implements SessionService
type SessionServiceImpl struct {
	authClient AuthClient
	config     *config.E2EConfig
	log        *logger.Logger
	now        func() time.Time
}

// NewSessionService creates a session service
func NewSessionService(authClient AuthClient, cfg *config.E2EConfig, log *logger.Logger) *SessionServiceImpl {
	return &SessionServiceImpl{
		authClient: authClient,
		config:     cfg,
		log:        log,
		now:        time.Now,
	}
}

// AcquireToken returns the configured token, or logs in with the suite credentials
func (s *SessionServiceImpl) AcquireToken(ctx context.Context) (string, error) {
	token := s.config.AuthToken
	if token != "" {
		s.log.Debug().Msg("using preconfigured access token")
	} else {
		resp, err := s.authClient.Login(ctx, s.config.Username, s.config.Password)
		if err != nil {
			return "", fmt.Errorf("failed to log in as %s: %w", s.config.Username, err)
		}
		token = resp.AccessTokenValue()
		s.log.Info().Str("user", s.config.Username).Msg("logged in")
	}

	if err := CheckTokenExpiry(token, s.now()); err != nil {
		return "", err
	}

	return token, nil
}

// CheckTokenExpiry rejects JWTs whose exp claim falls within expirySkew of now.
// The signature is not verified; opaque tokens pass unchecked.
func CheckTokenExpiry(token string, now time.Time) error {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	if claims.ExpiresAt.Time.Before(now.Add(expirySkew)) {
		return fmt.Errorf("%w at %s", ErrTokenExpired, claims.ExpiresAt.Time.UTC().Format(time.RFC3339))
	}
	return nil
}
