package ports

import (
	"context"

	"github.com/nimbusworks/user-directory/internal/core/domain"
)

// ListUsersQuery is the store-agnostic query produced by the query builder.
// All bounds have already been validated and clamped by the time a
// repository sees this value.
type ListUsersQuery struct {
	Username string // case-insensitive substring match; empty = no filter
	Age      *int   // exact match
	MinAge   *int   // inclusive lower bound
	MaxAge   *int   // inclusive upper bound
	Skip     int64
	Limit    int64
	SortBy   string // "username" or "age", pre-validated
	SortAsc  bool
}

// UserUpdate carries a partial update. Nil fields are left untouched so a
// caller can never accidentally overwrite a field with its zero value.
type UserUpdate struct {
	Username     *string
	PasswordHash *string
	Age          *int
	Role         *string
}

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns a page of users matching the query and the total count
	// of matching records (ignoring pagination).
	List(ctx context.Context, q ListUsersQuery) ([]*domain.User, int64, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
