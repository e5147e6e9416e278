package service

import (
	"github.com/nimbusworks/user-directory/internal/core/domain"
	"github.com/nimbusworks/user-directory/internal/core/ports"
)

// Operation names a users-resource action for authorization purposes.
type Operation string

const (
	OpList       Operation = "list"
	OpRead       Operation = "read"
	OpCreate     Operation = "create"
	OpUpdate     Operation = "update"
	OpUpdateSelf Operation = "update_self"
	OpDelete     Operation = "delete"
)

// Policy decides whether a caller may perform an operation. It is a pure
// function of (identity, operation, target): no store access, no side
// effects, evaluated after authentication.
//
// Two deployment toggles cover the access variants without duplicated
// route sets: PublicRead opens list/read to anonymous callers, OpenCreate
// lets anyone register.
type Policy struct {
	PublicRead bool
	OpenCreate bool
}

// Authorize returns nil when the operation is allowed, otherwise
// domain.ErrForbidden (insufficient privilege) or
// domain.ErrInvalidCredentials (authentication required but absent).
func (p Policy) Authorize(caller ports.Identity, op Operation, targetID string) error {
	switch op {
	case OpList, OpRead:
		if p.PublicRead || caller.Authenticated {
			return nil
		}
		return domain.ErrInvalidCredentials

	case OpCreate:
		if p.OpenCreate {
			return nil
		}
		if !caller.Authenticated {
			return domain.ErrInvalidCredentials
		}
		if caller.Role != domain.RoleAdmin {
			return domain.ErrForbidden
		}
		return nil

	case OpUpdateSelf:
		if !caller.Authenticated {
			return domain.ErrInvalidCredentials
		}
		return nil

	case OpUpdate:
		if !caller.Authenticated {
			return domain.ErrInvalidCredentials
		}
		if caller.Role == domain.RoleAdmin {
			return nil
		}
		// Non-admins may only reach their own record, and only through
		// the self-service path.
		if targetID != "" && targetID == caller.UserID {
			return nil
		}
		return domain.ErrForbidden

	case OpDelete:
		if !caller.Authenticated {
			return domain.ErrInvalidCredentials
		}
		if caller.Role != domain.RoleAdmin {
			return domain.ErrForbidden
		}
		return nil
	}

	return domain.ErrForbidden
}
