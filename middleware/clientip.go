package middleware

import (
	"context"
	"net"
	"strings"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/response"
)

// ClientIPAttribute is the request attribute holding the client IP.
const ClientIPAttribute = "client_ip"

// clientIPContextKey is used as a key for storing the client IP in the request context.
type clientIPContextKey struct{}

// clientIPHeaders are checked in order before falling back to the remote address.
var clientIPHeaders = []string{
	"CF-Connecting-IP", // Cloudflare
	"DO-Connecting-IP", // DigitalOcean
	"X-Forwarded-For",
	"X-Real-IP",
}

// ClientIPConfig configures the client IP extraction middleware.
type ClientIPConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req handler.Request) bool
	// HeaderName specifies the response header name for the client IP (default: "X-Client-IP")
	HeaderName string
	// StoreInHeader determines whether to include the IP in response headers
	StoreInHeader bool
	// ValidateFunc rejects a request with 403 when it returns an error
	ValidateFunc func(req handler.Request, ip string) error
}

// ClientIP creates a client IP extraction middleware with default configuration.
func ClientIP() handler.Middleware {
	return ClientIPWithConfig(ClientIPConfig{})
}

// ClientIPWithConfig resolves the real client IP with RealIP and stores it as
// a request attribute and a context value. It can optionally validate the IP
// or echo it in a response header.
func ClientIPWithConfig(cfg ClientIPConfig) handler.Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Client-IP"
	}

	return handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req) {
			return next(req)
		}

		ip := RealIP(req)

		if cfg.ValidateFunc != nil {
			if err := cfg.ValidateFunc(req, ip); err != nil {
				return nil, response.ErrForbidden.WithError(err)
			}
		}

		req = req.WithAttribute(ClientIPAttribute, ip)
		req = req.WithContext(context.WithValue(req.Context(), clientIPContextKey{}, ip))

		resp, err := next(req)
		if err != nil {
			return nil, err
		}

		if cfg.StoreInHeader {
			if hc, ok := resp.(handler.HeaderCarrier); ok {
				hc.Header().Set(cfg.HeaderName, ip)
			}
		}
		return resp, nil
	})
}

// GetClientIP retrieves the client IP set by ClientIP.
// Returns the IP and a boolean indicating whether it was found.
func GetClientIP(req handler.Request) (string, bool) {
	ip, ok := req.Attribute(ClientIPAttribute, nil).(string)
	return ip, ok
}

// ClientIPFromContext retrieves the client IP from a context derived from a
// request that passed through ClientIP.
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

// RealIP extracts the client IP from proxy headers in priority order:
// CF-Connecting-IP, DO-Connecting-IP, X-Forwarded-For (leftmost entry),
// X-Real-IP, then the connection's remote address. Header values must parse
// as an IP other than 0.0.0.0 and are returned normalized. When the remote
// address has no port it is returned as is. Requests not built from an
// *http.Request have no remote address and yield "" when no header matches.
func RealIP(req handler.Request) string {
	for _, name := range clientIPHeaders {
		v := req.Header(name)
		if v == "" {
			continue
		}
		if name == "X-Forwarded-For" {
			v, _, _ = strings.Cut(v, ",")
		}
		if ip := parseIP(v); ip != "" {
			return ip
		}
	}

	raw, ok := handler.HTTPRequest(req)
	if !ok {
		return ""
	}
	host, _, err := net.SplitHostPort(raw.RemoteAddr)
	if err != nil {
		return raw.RemoteAddr
	}
	if ip := parseIP(host); ip != "" {
		return ip
	}
	return raw.RemoteAddr
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
