package handler

import (
	"context"
	"net/http"
)

// Request defines the contract for incoming requests seen by the router.
// Implementations must be immutable: the With* methods return a modified copy
// and never touch the receiver.
type Request interface {
	Method() string
	Path() string
	Header(key string) string
	Context() context.Context
	WithContext(ctx context.Context) Request
	Attribute(key string, def any) any
	WithAttribute(key string, val any) Request
}

// RequestOption configures a request built with NewRequest.
type RequestOption func(*request)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *request) {
		if r.header == nil {
			r.header = make(http.Header)
		}
		r.header.Set(key, value)
	}
}

// WithRequestContext sets the request context. Nil is ignored.
func WithRequestContext(ctx context.Context) RequestOption {
	return func(r *request) {
		if ctx != nil {
			r.ctx = ctx
		}
	}
}

// request is the default Request implementation.
type request struct {
	method string
	path   string
	header http.Header
	ctx    context.Context
	attrs  *attribute
	raw    *http.Request
}

// attribute is a persistent singly linked list. Adding an attribute shares
// the tail with the parent request, so copies are cheap and never alias writes.
type attribute struct {
	key  string
	val  any
	next *attribute
}

// NewRequest creates a request with the given method and path.
func NewRequest(method, path string, opts ...RequestOption) Request {
	r := &request{
		method: method,
		path:   path,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromHTTP adapts a standard library request.
// RawPath is preferred when set so encoded segments survive routing.
func FromHTTP(hr *http.Request) Request {
	path := hr.URL.Path
	if hr.URL.RawPath != "" {
		path = hr.URL.RawPath
	}
	if path == "" {
		path = "/"
	}

	return &request{
		method: hr.Method,
		path:   path,
		header: hr.Header,
		ctx:    hr.Context(),
		raw:    hr,
	}
}

// HTTPRequest returns the underlying *http.Request for requests created by FromHTTP.
// The second result is false for requests built any other way.
func HTTPRequest(req Request) (*http.Request, bool) {
	r, ok := req.(*request)
	if !ok || r.raw == nil {
		return nil, false
	}
	if r.ctx != r.raw.Context() {
		return r.raw.WithContext(r.ctx), true
	}
	return r.raw, true
}

func (r *request) Method() string { return r.method }

func (r *request) Path() string { return r.path }

func (r *request) Header(key string) string {
	if r.header == nil {
		return ""
	}
	return r.header.Get(key)
}

func (r *request) Context() context.Context { return r.ctx }

func (r *request) WithContext(ctx context.Context) Request {
	if ctx == nil {
		panic("handler: nil context")
	}
	r2 := *r
	r2.ctx = ctx
	return &r2
}

func (r *request) Attribute(key string, def any) any {
	for a := r.attrs; a != nil; a = a.next {
		if a.key == key {
			return a.val
		}
	}
	return def
}

func (r *request) WithAttribute(key string, val any) Request {
	r2 := *r
	r2.attrs = &attribute{key: key, val: val, next: r.attrs}
	return &r2
}
