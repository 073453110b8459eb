package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/pathway/core/handler"
)

// Response is the default handler.Response implementation: a status code,
// headers and a fully buffered body. The zero value is an empty 200 response.
type Response struct {
	status int
	header http.Header
	body   []byte
}

// New creates a response with the given status and body.
// A zero status is treated as 200 OK.
func New(status int, body []byte) *Response {
	if status == 0 {
		status = http.StatusOK
	}
	return &Response{
		status: status,
		header: make(http.Header),
		body:   body,
	}
}

// Text creates a text/plain response.
func Text(status int, content string) *Response {
	resp := New(status, []byte(content))
	resp.header.Set("Content-Type", "text/plain; charset=utf-8")
	return resp
}

// JSON creates an application/json response.
// Encoding happens eagerly so marshalling failures surface to the handler.
func JSON(status int, v any) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	resp := New(status, body)
	resp.header.Set("Content-Type", "application/json; charset=utf-8")
	return resp, nil
}

// NoContent creates an empty 204 response.
func NoContent() *Response {
	return New(http.StatusNoContent, nil)
}

// NotFound creates an empty 404 response. The router returns it when no
// route matches a request.
func NotFound() *Response {
	return New(http.StatusNotFound, nil)
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Header returns the response headers, allocating them on first use.
// Middleware may modify them before the response is rendered.
func (r *Response) Header() http.Header {
	if r.header == nil {
		r.header = make(http.Header)
	}
	return r.header
}

// Body returns the response body.
func (r *Response) Body() []byte {
	return r.body
}

// Render writes headers, status and body to w.
func (r *Response) Render(w http.ResponseWriter) error {
	for k, vs := range r.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	status := r.StatusCode()
	w.WriteHeader(status)

	// No body for 204 or 304
	switch status {
	case http.StatusNoContent, http.StatusNotModified:
		return nil
	}
	if len(r.body) == 0 {
		return nil
	}
	_, err := w.Write(r.body)
	return err
}

// Write renders any handler.Response to w. Responses that do not implement
// handler.Renderer are written as a bare status code.
func Write(w http.ResponseWriter, resp handler.Response) error {
	if rr, ok := resp.(handler.Renderer); ok {
		return rr.Render(w)
	}
	if hc, ok := resp.(handler.HeaderCarrier); ok {
		for k, vs := range hc.Header() {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
	}
	w.WriteHeader(resp.StatusCode())
	return nil
}
