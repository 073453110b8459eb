package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/pathway/core/binder"
)

var (
	// Registration errors
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrInvalidPattern        = errors.New("invalid route path pattern")
	ErrInvalidMethod         = errors.New("invalid http method")
	ErrNilRouter             = errors.New("nil router")
	ErrAlreadyMounted        = errors.New("router already mounted")
	ErrCyclicMount           = errors.New("cyclic router mount")
	ErrTooManyMiddlewares    = errors.New("route accepts at most one middleware")

	// Dispatch errors
	ErrPatternMismatch   = errors.New("route pattern mismatch")
	ErrPrefixMismatch    = errors.New("fixed start does not prefix routing path")
	ErrContractViolation = errors.New("handler contract violation")

	// Binding errors, re-exported so callers only need this package.
	ErrUnsupportedParameterKind = binder.ErrUnsupportedParameterKind
	ErrInvalidCapture           = binder.ErrInvalidCapture
	ErrMissingParameter         = binder.ErrMissingParameter
)

// ErrorHandler handles errors returned by Resolve when the router serves HTTP.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// statusCode is an unexported interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// defaultErrorHandler provides default error handling.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	// Prevent double-writing responses which causes HTTP protocol errors
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	http.Error(w, err.Error(), status)
}

// PanicError interface allows external error handlers to detect and handle panics.
// When a panic is recovered by the router, it's wrapped in an error that implements
// this interface, providing access to the original panic value and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
