package registry

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/router"
)

// Manifest describes a router tree declaratively. Handlers and middleware
// are referenced by name and resolved against a Catalog.
//
//	middleware = "request_id"
//
//	[[routes]]
//	method  = "GET"
//	pattern = '^/$'
//	handler = "health"
//
//	[[routers]]
//	fixed_start = "/api/posts"
//
//	  [[routers.routes]]
//	  method  = "GET"
//	  pattern = '^/(?<postId>\d+)$'
//	  handler = "posts.show"
type Manifest struct {
	FixedStart string          `toml:"fixed_start"`
	Middleware string          `toml:"middleware"`
	Routes     []RouteManifest `toml:"routes"`
	Routers    []Manifest      `toml:"routers"`
}

// RouteManifest describes one route of a Manifest.
type RouteManifest struct {
	Method     string `toml:"method"`
	Pattern    string `toml:"pattern"`
	Handler    string `toml:"handler"`
	Middleware string `toml:"middleware"`
}

// Catalog maps names used in a manifest to their implementations.
type Catalog struct {
	Handlers    map[string]router.Handler
	Middlewares map[string]handler.Middleware
}

// ParseManifest decodes TOML data into a Manifest. Unknown keys are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return &m, nil
}

// LoadManifest parses data and builds the router tree it describes.
func LoadManifest(data []byte, catalog Catalog, opts ...router.Option) (*router.Router, error) {
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	return m.Build(catalog, opts...)
}

// LoadManifestFile reads a manifest from path and builds its router tree.
func LoadManifestFile(path string, catalog Catalog, opts ...router.Option) (*router.Router, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return LoadManifest(data, catalog, opts...)
}

// Build creates the router tree. Options apply to every router in the tree.
func (m *Manifest) Build(catalog Catalog, opts ...router.Option) (*router.Router, error) {
	r := router.New(opts...)
	r.SetFixedStart(m.FixedStart)

	if m.Middleware != "" {
		mw, err := catalog.middleware(m.Middleware)
		if err != nil {
			return nil, fmt.Errorf("router '%s': %w", m.FixedStart, err)
		}
		r.SetMiddleware(mw)
	}

	for i := range m.Routers {
		sub, err := m.Routers[i].Build(catalog, opts...)
		if err != nil {
			return nil, err
		}
		if err := r.AddSubRouter(sub); err != nil {
			return nil, fmt.Errorf("router '%s': %w", m.FixedStart, err)
		}
	}

	for _, rm := range m.Routes {
		rt, err := catalog.route(rm)
		if err != nil {
			return nil, fmt.Errorf("router '%s': %w", m.FixedStart, err)
		}
		if err := add(r, rt); err != nil {
			return nil, fmt.Errorf("router '%s': %w", m.FixedStart, err)
		}
	}

	return r, nil
}

func (c Catalog) route(rm RouteManifest) (Route, error) {
	h, ok := c.Handlers[rm.Handler]
	if !ok {
		return Route{}, fmt.Errorf("%w: '%s' for %s '%s'", ErrUnknownHandler, rm.Handler, rm.Method, rm.Pattern)
	}

	rt := Route{Method: rm.Method, Pattern: rm.Pattern, Handler: h}
	if rm.Middleware != "" {
		mw, err := c.middleware(rm.Middleware)
		if err != nil {
			return Route{}, err
		}
		rt.Middleware = mw
	}
	return rt, nil
}

func (c Catalog) middleware(name string) (handler.Middleware, error) {
	mw, ok := c.Middlewares[name]
	if !ok || mw == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownMiddleware, name)
	}
	return mw, nil
}
