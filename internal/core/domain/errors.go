package domain

import "errors"

// Sentinel errors for the auth core. The API layer maps these to HTTP
// statuses centrally; services never return raw infrastructure errors.
var (
	// ErrInvalidCredentials covers unknown email, wrong password and the
	// losing side of a racing first login. One message for all three so the
	// response never reveals whether an email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDeactivated is returned before any credential logic runs.
	ErrAccountDeactivated = errors.New("account deactivated")

	// ErrActivationNotAllowed rejects a first login against an account whose
	// status does not permit activation.
	ErrActivationNotAllowed = errors.New("cannot activate")

	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account already exists")
	ErrInvalidToken     = errors.New("invalid token")
	ErrUnknownStatus    = errors.New("unrecognized account status")
	ErrUnknownRole      = errors.New("unrecognized role")

	// ErrTooManyAttempts is returned when the login throttle trips.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
