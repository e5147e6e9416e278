package domain

import "errors"

// Token verification failures. The API boundary collapses all three into a
// single 401; they stay distinct here for logging.
var ErrTokenExpired = errors.New("token expired")
var ErrTokenSignature = errors.New("token signature invalid")
var ErrTokenMalformed = errors.New("token malformed")
