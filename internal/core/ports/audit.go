package ports

import (
	"context"

	"github.com/nimbusworks/user-directory/internal/core/domain"
)

// AuditRecorder accepts audit events without blocking the request path.
// Implementations must never return an error to the caller; a lost audit
// record is logged, not surfaced.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}
