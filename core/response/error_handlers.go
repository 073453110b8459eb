package response

import (
	"errors"
	"net/http"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// AsHTTPError converts any error to an HTTPError.
// HTTPError values pass through; errors implementing StatusCode() are mapped
// to the matching predefined error; everything else becomes a 500.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = ErrInternalServerError
	}
	return base.WithError(err)
}

// ErrorHandler writes err as a plain text response.
func ErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := AsHTTPError(err)
	_ = Text(httpErr.Status, httpErr.Message).Render(w)
}

// JSONErrorHandler writes err as a JSON response.
func JSONErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := AsHTTPError(err)
	resp, encErr := JSON(httpErr.Status, httpErr)
	if encErr != nil {
		ErrorHandler(w, r, err)
		return
	}
	_ = resp.Render(w)
}
