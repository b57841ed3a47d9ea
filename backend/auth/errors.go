package auth

import "errors"

// The flow's whole error surface. ErrInvalidCode and ErrInvalidCredentials
// each deliberately cover several distinct failure causes so that callers
// cannot probe which emails exist or which check failed.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account not verified")
)
