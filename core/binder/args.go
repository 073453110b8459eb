package binder

import (
	"fmt"

	"github.com/dmitrymomot/pathway/core/handler"
)

// Args is the positional argument list produced by Bind.
// Accessors panic when the index or type does not match the declaration,
// which is a programming error in the handler, not a request error.
type Args []any

// Len returns the number of arguments.
func (a Args) Len() int {
	return len(a)
}

// Request returns argument i as the request.
func (a Args) Request(i int) handler.Request {
	req, ok := a[i].(handler.Request)
	if !ok {
		panic(fmt.Sprintf("binder: argument %d is %T, not a request", i, a[i]))
	}
	return req
}

// Int returns argument i as an int.
func (a Args) Int(i int) int {
	n, ok := a[i].(int)
	if !ok {
		panic(fmt.Sprintf("binder: argument %d is %T, not int", i, a[i]))
	}
	return n
}

// String returns argument i as a string.
func (a Args) String(i int) string {
	s, ok := a[i].(string)
	if !ok {
		panic(fmt.Sprintf("binder: argument %d is %T, not string", i, a[i]))
	}
	return s
}
