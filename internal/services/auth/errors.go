package auth

import "errors"

// FieldError is a registration field-shape failure. The API surfaces it as
// 422 Unprocessable Entity with the message verbatim.
type FieldError struct {
	Msg string
}

func (e *FieldError) Error() string { return e.Msg }

// Ordered registration rules produce exactly one of these; the first failing
// rule wins.
var (
	ErrMissingUsername    = &FieldError{"Missing `username` in request body"}
	ErrMissingPassword    = &FieldError{"Missing `password` in request body"}
	ErrUsernameTooShort   = &FieldError{"Username must be at least 1 character long"}
	ErrPasswordLength     = &FieldError{"Password must be a minimum of 8 characters and a maximum of 72"}
	ErrUsernameWhitespace = &FieldError{"Username must not have any leading or trailing whitespace"}
	ErrPasswordWhitespace = &FieldError{"Password must not have any leading or trailing whitespace"}
)

// ErrDuplicateUsername is surfaced at persistence time from the unique index,
// never pre-checked.
var ErrDuplicateUsername = errors.New("The username already exists")

// ErrInvalidCredentials is returned for unknown username and wrong password
// alike so a caller cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("Unauthorized")

// ErrGenAccessToken is returned when we cannot sign a JWT.
var ErrGenAccessToken = errors.New("failed to generate access token")
