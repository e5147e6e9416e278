package ports

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	Subject string // user id
	Role    string
}

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	Issue(subject, role string) (string, error)
	// Verify returns the claims of a valid token, or one of
	// domain.ErrTokenExpired, domain.ErrTokenSignature,
	// domain.ErrTokenMalformed. All three map to 401 at the API boundary;
	// the distinction exists for diagnostics.
	Verify(token string) (*TokenClaims, error)
}
