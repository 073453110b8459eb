package binder

import "errors"

// Error variables define the binding failures. All of them indicate a
// mismatch between a route's pattern and its handler declaration.
var (
	// ErrUnsupportedParameterKind indicates a parameter whose kind is not
	// request, int or string.
	ErrUnsupportedParameterKind = errors.New("unsupported parameter kind")

	// ErrInvalidCapture indicates a capture that cannot be coerced to the
	// declared kind, e.g. a non-numeric value for an int parameter.
	ErrInvalidCapture = errors.New("invalid capture value")

	// ErrMissingParameter indicates a capture that is absent from the match
	// and has no declared default.
	ErrMissingParameter = errors.New("missing parameter")

	// ErrInvalidDefault indicates a default value whose type does not fit
	// the declared kind.
	ErrInvalidDefault = errors.New("invalid parameter default")
)
