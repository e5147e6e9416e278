package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/nimbusworks/user-directory/internal/core/domain"
	"github.com/nimbusworks/user-directory/internal/core/ports"
)

// LoginThrottle limits failed login attempts per username. Implemented by
// the Redis adapter; nil disables throttling.
type LoginThrottle interface {
	// Allow reports whether another attempt is permitted for the username.
	Allow(ctx context.Context, username string) (bool, error)
	// Fail records a failed attempt.
	Fail(ctx context.Context, username string) error
	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, username string) error
}

// AuthService implements credential verification and token issuance.
type AuthService struct {
	repo     ports.UserRepository
	hasher   *PasswordHasher
	tokens   ports.TokenService
	throttle LoginThrottle
	audit    ports.AuditRecorder
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *PasswordHasher, tokens ports.TokenService, throttle LoginThrottle, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, throttle: throttle, audit: audit, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if !s.allowAttempt(ctx, username) {
		s.logger.Warn().Str("username", username).Msg("login throttled")
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Unknown user and wrong password are indistinguishable to
			// the caller.
			s.recordFailure(ctx, username)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, username)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("throttle reset failed")
		}
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	if s.audit != nil {
		s.audit.Record(domain.AuditEvent{
			Actor:     user.ID,
			Action:    "auth.login",
			Outcome:   "ok",
			Timestamp: time.Now().UTC(),
		})
	}
	return token, nil
}

// allowAttempt asks the throttle whether to proceed. A throttle backend
// failure does not block logins: availability wins over throttling.
func (s *AuthService) allowAttempt(ctx context.Context, username string) bool {
	if s.throttle == nil {
		return true
	}
	ok, err := s.throttle.Allow(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle unreachable, allowing attempt")
		return true
	}
	return ok
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Fail(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("throttle record failed")
	}
}
