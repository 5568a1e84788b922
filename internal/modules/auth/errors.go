package auth

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrAccountBanned         = errors.New("account banned")
	ErrAccountNotActive      = errors.New("account not activated")
	ErrInvalidVerifyToken    = errors.New("invalid or expired verification token")
	ErrInvalidGoogleToken    = errors.New("invalid google token")
)
