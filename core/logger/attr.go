package logger

import (
	"log/slog"
	"runtime"
	"strconv"
	"time"
)

// Helpers that take optional values return an empty slog.Attr when the value
// is missing. slog drops empty attributes, so callers never need a nil check:
//
//	log.Info("done", logger.Error(err), logger.RequestID(id))

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Routing

// Route groups the method and pattern of a matched route under "route".
func Route(method, pattern string) slog.Attr {
	return Group("route", slog.String("method", method), slog.String("pattern", pattern))
}

// Pattern records the pattern source of the route that served a request.
func Pattern(pattern string) slog.Attr {
	if pattern == "" {
		return slog.Attr{}
	}
	return slog.String("pattern", pattern)
}

// FixedStart records a router's fixed start.
func FixedStart(prefix string) slog.Attr {
	return slog.String("fixed_start", prefix)
}

// Errors

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", keyed by their position
// in the argument list.
func Errors(errs ...error) slog.Attr {
	var as []slog.Attr
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return Group("errors", as...)
}

// Stack records a stack trace. A nil trace captures the stack of the calling
// goroutine.
func Stack(trace []byte) slog.Attr {
	if trace == nil {
		buf := make([]byte, 64<<10)
		trace = buf[:runtime.Stack(buf, false)]
	}
	return slog.String("stack", string(trace))
}

// HTTP

// Method creates an attribute for HTTP methods.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path creates an attribute for URL paths.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// StatusCode creates an attribute for HTTP status codes.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// ClientIP records the resolved client address.
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// UserAgent records the User-Agent request header.
func UserAgent(ua string) slog.Attr {
	if ua == "" {
		return slog.Attr{}
	}
	return slog.String("user_agent", ua)
}

// BytesIn records the declared request body size. Unknown sizes are dropped.
func BytesIn(n int64) slog.Attr {
	if n <= 0 {
		return slog.Attr{}
	}
	return slog.Int64("bytes_in", n)
}

// BytesOut records the number of body bytes written.
func BytesOut(n int64) slog.Attr {
	return slog.Int64("bytes_out", n)
}

// Correlation

// RequestID creates an attribute for HTTP request IDs.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// TraceID creates an attribute for distributed tracing IDs.
func TraceID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("trace_id", id)
}

// Timing

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed records the time since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// Metadata

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event creates an attribute for event names.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Count creates a counter attribute under key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Version records a build version. Empty versions are dropped.
func Version(v string) slog.Attr {
	if v == "" {
		return slog.Attr{}
	}
	return slog.String("version", v)
}
