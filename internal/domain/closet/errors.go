package closet

import "errors"

var (
	// ErrUserNotFound is returned when the user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when a profile already claims the email.
	ErrEmailExists = errors.New("email already registered")
)
