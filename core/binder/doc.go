// Package binder turns the named captures of a route pattern into the
// positional arguments of a handler.
//
// Each handler declares its parameters explicitly, once, at registration time:
//
//	params := []binder.Param{
//		binder.Request(),
//		binder.String("user"),
//		binder.IntOr("postId", 1),
//	}
//
// Bind walks the declaration in order. A request parameter binds the request
// and consumes no capture. A capture parameter looks up its name; present
// values are coerced (int via decimal parse, string verbatim), absent ones use
// the declared default or fail with ErrMissingParameter.
//
//	args, err := binder.Bind(params, req, map[string]string{"user": "ann"})
//	// args.Request(0) == req, args.String(1) == "ann", args.Int(2) == 1
//
// Capture names are case-sensitive and must equal the group names in the
// pattern exactly.
package binder
