package handler

import (
	"github.com/nimbusworks/user-directory/internal/core/domain"
	"github.com/nimbusworks/user-directory/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createUserRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Age:      req.Age,
		Role:     req.Role,
	}
}

func toUpdateInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Username: req.Username,
		Password: req.Password,
		Age:      req.Age,
		Role:     req.Role,
	}
}

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Age:       u.Age,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func ok(message string, data any) envelope {
	return envelope{Message: message, ResponseStatus: true, ResponseData: data}
}

func okWithTotal(message string, data any, total int64) envelope {
	e := ok(message, data)
	e.Total = &total
	return e
}
