package ports

import "context"

// AuthService verifies credentials and issues bearer tokens.
type AuthService interface {
	// Login returns a signed access token for valid credentials. Any
	// failure (unknown user, wrong password, throttled) surfaces as
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}
