package repository

import "errors"

// Sentinel errors shared by the repositories. Handlers map these to 404s.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNoteNotFound      = errors.New("note not found")
	ErrNoteGroupNotFound = errors.New("note group not found")
	ErrSessionNotFound   = errors.New("session not found")
)
