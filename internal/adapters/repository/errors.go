package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("student is already signed up")
	ErrNotRegistered    = errors.New("student is not registered for this activity")
)
