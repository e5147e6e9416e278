package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nimbusworks/user-directory/internal/core/domain"
	"github.com/nimbusworks/user-directory/internal/core/ports"
)

// AuditService persists audit events delivered by the dispatcher workers.
type AuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Process writes one audit event. Failures are logged and swallowed: the
// audit trail is best-effort and must never fail a request after the fact.
func (s *AuditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, event); err != nil {
		s.logger.Error().Err(err).
			Str("action", event.Action).
			Str("actor", event.Actor).
			Msg("audit event lost")
		return err
	}
	return nil
}
