package router

import "github.com/dmitrymomot/pathway/core/handler"

// chain is a middleware queue ending in a terminal handler.
// The queue is never mutated; the position travels with each Next closure,
// so a chain can run any number of times, concurrently.
type chain struct {
	queue    []handler.Middleware
	terminal handler.Next
}

// run processes req through the whole queue.
func (c chain) run(req handler.Request) (handler.Response, error) {
	return c.at(0)(req)
}

// at returns the continuation that runs the queue from position i.
func (c chain) at(i int) handler.Next {
	if i >= len(c.queue) {
		return c.terminal
	}
	return func(req handler.Request) (handler.Response, error) {
		return c.queue[i].Process(req, c.at(i+1))
	}
}
