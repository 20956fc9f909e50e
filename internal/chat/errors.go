package chat

import "errors"

var (
	// ErrNotFound is returned when the target session does not exist.
	ErrNotFound = errors.New("chat session not found")

	// ErrAccessDenied is returned when the session exists but belongs to a
	// different user.
	ErrAccessDenied = errors.New("chat session belongs to a different user")
)
