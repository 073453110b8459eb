package registry

import "errors"

var (
	ErrUnknownHandler    = errors.New("unknown handler")
	ErrUnknownMiddleware = errors.New("unknown middleware")
	ErrInvalidManifest   = errors.New("invalid route manifest")
)
