package api

import "errors"

var (
	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrServer covers 5xx responses.
	ErrServer = errors.New("server error")
)
