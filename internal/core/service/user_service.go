package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nimbusworks/user-directory/internal/core/domain"
	"github.com/nimbusworks/user-directory/internal/core/ports"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// UserService orchestrates the users resource: policy check, input
// validation, query building and persistence. It holds no state between
// requests.
type UserService struct {
	repo   ports.UserRepository
	hasher *PasswordHasher
	policy Policy
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher *PasswordHasher, policy Policy, audit ports.AuditRecorder, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, policy: policy, audit: audit, logger: logger}
}

func (s *UserService) Create(ctx context.Context, caller ports.Identity, in ports.CreateUserInput) (*domain.User, error) {
	if err := s.policy.Authorize(caller, OpCreate, ""); err != nil {
		return nil, err
	}

	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	// Uniqueness is checked up front for a clean 409; the unique index on
	// username closes the race window.
	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Age:          in.Age,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	s.record(caller, "user.create", created.ID)
	return created, nil
}

func (s *UserService) Get(ctx context.Context, caller ports.Identity, id string) (*domain.User, error) {
	if err := s.policy.Authorize(caller, OpRead, id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, caller ports.Identity, params ports.ListUsersParams) (*ports.ListUsersResult, error) {
	if err := s.policy.Authorize(caller, OpList, ""); err != nil {
		return nil, err
	}

	q, err := BuildListQuery(params)
	if err != nil {
		return nil, err
	}

	users, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ports.ListUsersResult{Users: users, Total: total}, nil
}

func (s *UserService) Update(ctx context.Context, caller ports.Identity, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := s.policy.Authorize(caller, OpUpdate, id); err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, caller, id, in)
}

func (s *UserService) UpdateSelf(ctx context.Context, caller ports.Identity, in ports.UpdateUserInput) (*domain.User, error) {
	if err := s.policy.Authorize(caller, OpUpdateSelf, caller.UserID); err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, caller, caller.UserID, in)
}

func (s *UserService) applyUpdate(ctx context.Context, caller ports.Identity, id string, in ports.UpdateUserInput) (*domain.User, error) {
	// Role elevation prevention: only admins may touch the role field.
	// A supplied role is dropped silently, the rest of the update still
	// applies.
	if in.Role != nil && caller.Role != domain.RoleAdmin {
		s.logger.Warn().Str("caller_id", caller.UserID).Str("target_id", id).Msg("role change attempt stripped from self-service update")
		in.Role = nil
	}

	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	upd := ports.UserUpdate{
		Username: in.Username,
		Age:      in.Age,
		Role:     in.Role,
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}

	if upd.Username == nil && upd.PasswordHash == nil && upd.Age == nil && upd.Role == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.record(caller, "user.update", id)
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, caller ports.Identity, id string) error {
	if err := s.policy.Authorize(caller, OpDelete, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Str("deleted_by", caller.UserID).Msg("user deleted")
	s.record(caller, "user.delete", id)
	return nil
}

func (s *UserService) record(caller ports.Identity, action, targetID string) {
	if s.audit == nil {
		return
	}
	actor := caller.UserID
	if actor == "" {
		actor = "anonymous"
	}
	s.audit.Record(domain.AuditEvent{
		Actor:     actor,
		Action:    action,
		TargetID:  targetID,
		Outcome:   "ok",
		Timestamp: time.Now().UTC(),
	})
}

func validateCreate(in ports.CreateUserInput) error {
	if len(in.Username) < minUsernameLen {
		return fmt.Errorf("%w: username must be at least %d characters", domain.ErrValidation, minUsernameLen)
	}
	if len(in.Password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	if in.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", domain.ErrValidation)
	}
	if !domain.ValidRole(in.Role) {
		return fmt.Errorf("%w: role must be %q or %q", domain.ErrValidation, domain.RoleUser, domain.RoleAdmin)
	}
	return nil
}

func validateUpdate(in ports.UpdateUserInput) error {
	if in.Username != nil && len(*in.Username) < minUsernameLen {
		return fmt.Errorf("%w: username must be at least %d characters", domain.ErrValidation, minUsernameLen)
	}
	if in.Password != nil && len(*in.Password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	if in.Age != nil && *in.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", domain.ErrValidation)
	}
	if in.Role != nil && !domain.ValidRole(*in.Role) {
		return fmt.Errorf("%w: role must be %q or %q", domain.ErrValidation, domain.RoleUser, domain.RoleAdmin)
	}
	return nil
}
