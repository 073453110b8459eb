// Package registry registers routes on a router from outside the router
// itself, either from controllers in code or from a TOML manifest.
//
// Controllers return the routes they serve:
//
//	posts := registry.ControllerFunc(func() []registry.Route {
//		return []registry.Route{
//			{Method: http.MethodGet, Pattern: `^/?$`, Handler: listPosts},
//			{Method: http.MethodGet, Pattern: `^/(?<postId>\d+)$`, Handler: showPost},
//		}
//	})
//
//	api := router.New()
//	if err := registry.Register(api, posts); err != nil {
//		return err
//	}
//
// A manifest describes a whole tree and names handlers from a Catalog:
//
//	r, err := registry.LoadManifestFile("routes.toml", registry.Catalog{
//		Handlers:    map[string]router.Handler{"posts.show": showPost},
//		Middlewares: map[string]handler.Middleware{"request_id": middleware.RequestID()},
//	})
package registry
