// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrWeakPassword is returned when a new password is too short.
	ErrWeakPassword = errors.New("password is too short")
	// ErrIncorrectPassword is returned when the current password given for a change is wrong.
	ErrIncorrectPassword = errors.New("current password is incorrect")
	// ErrInvalidAvatar is returned when an uploaded profile picture is rejected by storage.
	ErrInvalidAvatar = errors.New("invalid profile picture")
	// ErrOAuthDisabled is returned when Google sign-in is not configured.
	ErrOAuthDisabled = errors.New("google sign-in is not configured")
	// ErrInvalidState is returned when the OAuth state is unknown, expired or already used.
	ErrInvalidState = errors.New("invalid oauth state")
	// ErrUnverifiedEmail is returned when Google reports an unverified email address.
	ErrUnverifiedEmail = errors.New("google email is not verified")
)
