package main

import (
	"net/http"
	"slices"
	"sync"

	"github.com/dmitrymomot/pathway/core/binder"
	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/registry"
	"github.com/dmitrymomot/pathway/core/response"
	"github.com/dmitrymomot/pathway/core/router"
)

type post struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// postStore is an in-memory post collection.
type postStore struct {
	mu    sync.RWMutex
	posts []post
}

func newPostStore() *postStore {
	return &postStore{posts: []post{
		{ID: 1, Title: "Hello, world"},
		{ID: 2, Title: "Routing with fixed starts"},
	}}
}

func (s *postStore) list() []post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

func (s *postStore) get(id int) (post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.posts, func(p post) bool { return p.ID == id })
	if i < 0 {
		return post{}, false
	}
	return s.posts[i], true
}

// postsController serves the posts collection.
type postsController struct {
	store *postStore
}

func (c postsController) Routes() []registry.Route {
	return []registry.Route{
		{Method: http.MethodGet, Pattern: `^/?$`, Handler: router.RequestHandler(c.list)},
		{
			Method:  http.MethodGet,
			Pattern: `^/(?<postId>\d+)$`,
			Handler: router.NewHandler(c.show, binder.Int("postId")),
		},
	}
}

func (c postsController) list(handler.Request) (handler.Response, error) {
	return response.JSON(http.StatusOK, c.store.list())
}

func (c postsController) show(args binder.Args) (handler.Response, error) {
	p, ok := c.store.get(args.Int(0))
	if !ok {
		return nil, response.ErrNotFound.WithMessage("post not found")
	}
	return response.JSON(http.StatusOK, p)
}

// usersController greets users by name.
type usersController struct{}

func (usersController) Routes() []registry.Route {
	return []registry.Route{
		{
			Method:  http.MethodGet,
			Pattern: `^/(?<name>[a-z]+)$`,
			Handler: router.NewHandler(
				func(args binder.Args) (handler.Response, error) {
					return response.JSON(http.StatusOK, map[string]string{"name": args.String(0)})
				},
				binder.String("name"),
			),
		},
	}
}
