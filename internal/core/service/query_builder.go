package service

import (
	"fmt"
	"strconv"

	"github.com/nimbusworks/user-directory/internal/core/domain"
	"github.com/nimbusworks/user-directory/internal/core/ports"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// sortableFields is the allow-list of fields a caller may sort by. Anything
// else is rejected instead of being passed through to the store.
var sortableFields = map[string]struct{}{
	"username": {},
	"age":      {},
}

// BuildListQuery coerces and bounds raw wire parameters into a
// store-agnostic query. Unknown parameters never reach this function;
// malformed values of known parameters fail with domain.ErrValidation.
func BuildListQuery(params ports.ListUsersParams) (ports.ListUsersQuery, error) {
	q := ports.ListUsersQuery{
		Username: params.Username,
		Skip:     0,
		Limit:    defaultListLimit,
		SortBy:   "username",
		SortAsc:  true,
	}

	var err error
	if q.Age, err = optionalInt("age", params.Age); err != nil {
		return ports.ListUsersQuery{}, err
	}
	if q.MinAge, err = optionalInt("min_age", params.MinAge); err != nil {
		return ports.ListUsersQuery{}, err
	}
	if q.MaxAge, err = optionalInt("max_age", params.MaxAge); err != nil {
		return ports.ListUsersQuery{}, err
	}

	if params.Skip != "" {
		skip, err := strconv.ParseInt(params.Skip, 10, 64)
		if err != nil || skip < 0 {
			return ports.ListUsersQuery{}, fmt.Errorf("%w: skip must be a non-negative integer", domain.ErrValidation)
		}
		q.Skip = skip
	}

	if params.Limit != "" {
		limit, err := strconv.ParseInt(params.Limit, 10, 64)
		if err != nil || limit < 1 {
			return ports.ListUsersQuery{}, fmt.Errorf("%w: limit must be a positive integer", domain.ErrValidation)
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}
		q.Limit = limit
	}

	if params.SortBy != "" {
		if _, ok := sortableFields[params.SortBy]; !ok {
			return ports.ListUsersQuery{}, fmt.Errorf("%w: %q", domain.ErrInvalidSortField, params.SortBy)
		}
		q.SortBy = params.SortBy
	}

	switch params.SortOrder {
	case "", "asc":
		q.SortAsc = true
	case "desc":
		q.SortAsc = false
	default:
		return ports.ListUsersQuery{}, fmt.Errorf("%w: sort_order must be asc or desc", domain.ErrValidation)
	}

	return q, nil
}

func optionalInt(name, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return &v, nil
}
