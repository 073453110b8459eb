package binder

import (
	"fmt"
	"strconv"

	"github.com/dmitrymomot/pathway/core/handler"
)

// Kind is the declared kind of a handler parameter.
type Kind int

const (
	// KindRequest binds the request itself and consumes no capture.
	KindRequest Kind = iota + 1
	// KindInt binds a named capture parsed as a decimal integer.
	KindInt
	// KindString binds a named capture verbatim.
	KindString
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Param describes one declared handler parameter.
type Param struct {
	// Name of the capture group to bind. Ignored for KindRequest.
	Name string
	Kind Kind
	// Default is used when the capture is absent and HasDefault is set.
	// Its dynamic type must be int for KindInt and string for KindString.
	Default    any
	HasDefault bool
}

// Request declares a parameter bound to the request.
func Request() Param {
	return Param{Kind: KindRequest}
}

// Int declares a required integer capture.
func Int(name string) Param {
	return Param{Name: name, Kind: KindInt}
}

// IntOr declares an integer capture that falls back to def when absent.
func IntOr(name string, def int) Param {
	return Param{Name: name, Kind: KindInt, Default: def, HasDefault: true}
}

// String declares a required string capture.
func String(name string) Param {
	return Param{Name: name, Kind: KindString}
}

// StringOr declares a string capture that falls back to def when absent.
func StringOr(name, def string) Param {
	return Param{Name: name, Kind: KindString, Default: def, HasDefault: true}
}

// Bind builds the positional argument list for params.
//
// Captures hold the named groups that participated in the match; a group
// that did not participate must be left out of the map, not set to "".
func Bind(params []Param, req handler.Request, captures map[string]string) (Args, error) {
	args := make(Args, 0, len(params))

	for i, p := range params {
		switch p.Kind {
		case KindRequest:
			args = append(args, req)
			continue
		case KindInt, KindString:
		default:
			return nil, fmt.Errorf("%w: parameter %d (%q) has kind %s", ErrUnsupportedParameterKind, i, p.Name, p.Kind)
		}

		raw, ok := captures[p.Name]
		if !ok {
			if !p.HasDefault {
				return nil, fmt.Errorf("%w: %q", ErrMissingParameter, p.Name)
			}
			if err := checkDefault(p); err != nil {
				return nil, err
			}
			args = append(args, p.Default)
			continue
		}

		v, err := coerce(p, raw)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	return args, nil
}

// Validate checks parameter declarations without binding anything.
// The router calls it when a route is registered so malformed descriptors
// fail early instead of on the first matching request.
func Validate(params []Param) error {
	for i, p := range params {
		switch p.Kind {
		case KindRequest:
		case KindInt, KindString:
			if p.Name == "" {
				return fmt.Errorf("%w: parameter %d has no capture name", ErrMissingParameter, i)
			}
			if p.HasDefault {
				if err := checkDefault(p); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%w: parameter %d (%q) has kind %s", ErrUnsupportedParameterKind, i, p.Name, p.Kind)
		}
	}
	return nil
}

func coerce(p Param, raw string) (any, error) {
	switch p.Kind {
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q=%q is not a decimal integer", ErrInvalidCapture, p.Name, raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

func checkDefault(p Param) error {
	var ok bool
	switch p.Kind {
	case KindInt:
		_, ok = p.Default.(int)
	case KindString:
		_, ok = p.Default.(string)
	}
	if !ok {
		return fmt.Errorf("%w: %q default %T does not fit kind %s", ErrInvalidDefault, p.Name, p.Default, p.Kind)
	}
	return nil
}
