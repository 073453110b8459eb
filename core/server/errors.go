package server

import "errors"

var (
	// Configuration errors
	ErrMissingAddress    = errors.New("server address is required")
	ErrInvalidHeaderSize = errors.New("invalid max header size")
	ErrFailedLoadCert    = errors.New("failed to load certificate")

	// Server lifecycle errors
	ErrServerAlreadyRunning = errors.New("server is already running")
)
