package handler

import "time"

// envelope is the uniform wrapper returned by every users endpoint.
type envelope struct {
	Message        string `json:"message"`
	ResponseStatus bool   `json:"response_status"`
	ResponseData   any    `json:"response_data"`
	Total          *int64 `json:"total"`
}

// --- Request types ---

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Age      int    `json:"age"      validate:"required,gt=0"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// updateUserRequest uses pointers so absent fields stay untouched: a field
// the caller did not send must never be overwritten with a default.
type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Age      *int    `json:"age"      validate:"omitempty,gt=0"`
	Role     *string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// --- Response types ---

// tokenResponse is the /login payload; deliberately not enveloped.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// userResponse is the sanitized outbound view of a user record. There is
// no password field here at all, so it cannot leak by omission.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Age       int       `json:"age"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
