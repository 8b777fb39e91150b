package hashrouter

import (
	"github.com/pedia/hashrouter/pattern"
)

// Handler handles a matched fragment. Calling next runs the following
// handler of the route; not calling it ends the chain.
//
// next shares one cursor per dispatch: calling it a second time resumes
// after the handlers already reached instead of starting over.
type Handler func(ctx *Context, next func())

// Route binds a compiled pattern to an ordered list of handlers.
type Route struct {
	router   *Router
	pattern  *pattern.Pattern
	handlers []Handler
}

// Pattern returns the compiled pattern of the route.
func (r *Route) Pattern() *pattern.Pattern {
	return r.pattern
}

// Spec returns the specifier the route was registered with.
func (r *Route) Spec() string {
	return r.pattern.Source()
}

// Use appends handlers to the route.
func (r *Route) Use(handlers ...Handler) *Route {
	validateHandlers(r.Spec(), handlers)

	r.router.mu.Lock()
	r.handlers = append(r.handlers, handlers...)
	r.router.mu.Unlock()

	return r
}

// Len returns the number of handlers bound to the route.
func (r *Route) Len() int {
	r.router.mu.RLock()
	defer r.router.mu.RUnlock()

	return len(r.handlers)
}

// Match tests fragment against the route and builds the dispatch context.
func (r *Route) Match(fragment string) (*Context, bool) {
	captures, ok := r.pattern.Match(fragment)
	if !ok {
		return nil, false
	}

	return &Context{
		Path:   fragment,
		Params: newParams(captures),
		route:  r,
	}, true
}

// removeHandler drops the first occurrence of h. Callers hold the lock.
func (r *Route) removeHandler(h Handler) bool {
	for i := range r.handlers {
		if sameHandler(r.handlers[i], h) {
			r.handlers = append(r.handlers[:i], r.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// run walks handlers with a single cursor shared by every next.
func run(ctx *Context, handlers []Handler) {
	i := 0

	var next func()
	next = func() {
		if i >= len(handlers) {
			return // unhandled
		}
		h := handlers[i]
		i++
		h(ctx, next)
	}

	next()
}
