// Package apperr defines the sentinel errors shared across layers.
package apperr

import "errors"

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrPostNotFound       = errors.New("post not found")
	ErrUnknownTopic       = errors.New("unknown topic")
	ErrMalformedToken     = errors.New("malformed callback token")
	ErrAlreadyExists      = errors.New("already exists")
)
