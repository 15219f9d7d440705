package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrInvalidSeed      = errors.New("invalid activity seed")
)
