package files

import "errors"

var (
	// ErrInvalidPath is returned for paths escaping the sink root.
	ErrInvalidPath = errors.New("invalid path")

	// ErrUnknownBackend is returned by [NewSink] for an unsupported backend.
	ErrUnknownBackend = errors.New("unknown files backend")

	// ErrSinkUnavailable wraps filesystem and object storage failures.
	ErrSinkUnavailable = errors.New("files sink unavailable")
)
