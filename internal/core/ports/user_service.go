package ports

import (
	"context"

	"github.com/nimbusworks/user-directory/internal/core/domain"
)

// Identity describes the authenticated caller of an operation. The zero
// value is an anonymous caller.
type Identity struct {
	UserID        string
	Role          string
	Authenticated bool
}

// CreateUserInput carries the fields for a new user record.
type CreateUserInput struct {
	Username string
	Password string
	Age      int
	Role     string // defaults to "user" when empty
}

// UpdateUserInput is a partial update; nil fields are not touched.
type UpdateUserInput struct {
	Username *string
	Password *string
	Age      *int
	Role     *string
}

// ListUsersParams holds the raw, uncoerced query parameters as received on
// the wire. The query builder turns them into a ListUsersQuery.
type ListUsersParams struct {
	Username  string
	Age       string
	MinAge    string
	MaxAge    string
	Skip      string
	Limit     string
	SortBy    string
	SortOrder string
}

// ListUsersResult is a single page of users plus the total match count.
type ListUsersResult struct {
	Users []*domain.User
	Total int64
}

// UserService defines the use-case operations on the users resource.
type UserService interface {
	Create(ctx context.Context, caller Identity, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, caller Identity, id string) (*domain.User, error)
	List(ctx context.Context, caller Identity, params ListUsersParams) (*ListUsersResult, error)
	// Update applies a partial update to an arbitrary target (admin only).
	Update(ctx context.Context, caller Identity, id string, in UpdateUserInput) (*domain.User, error)
	// UpdateSelf applies a partial update to the caller's own record. Any
	// role supplied by a non-admin caller is discarded.
	UpdateSelf(ctx context.Context, caller Identity, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, caller Identity, id string) error
}
