package hashrouter

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/pedia/hashrouter/location"
	"github.com/pedia/hashrouter/pattern"
	"github.com/savsgio/gotils/bytes"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MatchedRoutePathParam is the param name under which the specifier of the
// matched route is stored, if Router.SaveMatchedRoutePath is set.
var MatchedRoutePathParam = fmt.Sprintf("__matchedRoutePath::%s__", bytes.Rand(make([]byte, 15)))

// Router dispatches fragments to the first registered route that matches.
type Router struct {
	// Sensitive makes patterns registered afterwards case-sensitive.
	Sensitive bool

	// Strict disables the optional trailing slash for patterns registered
	// afterwards.
	Strict bool

	// SaveMatchedRoutePath stores the specifier of the matched route in
	// Params under MatchedRoutePathParam.
	SaveMatchedRoutePath bool

	// NotFound is called when no route matches. Dispatch still reports
	// false. The next argument is a no-op.
	NotFound Handler

	// Logger receives debug records for registrations and unhandled
	// fragments. Nil discards them.
	Logger *slog.Logger

	// Tracer, if set, starts a span for each dispatch.
	Tracer trace.Tracer

	// Metrics, if set, counts dispatches.
	Metrics *Metrics

	mu     sync.RWMutex
	routes []*Route
	index  map[string][]*Route
}

// New returns a new router with permissive, case-insensitive matching.
func New() *Router {
	return &Router{
		index: make(map[string][]*Route),
	}
}

// Entry is one specifier and its handlers, see HandleMap.
type Entry struct {
	Spec     string
	Handlers []Handler
}

// Map is an ordered set of routes. Order decides precedence.
type Map []Entry

func (router *Router) options() pattern.Options {
	return pattern.Options{
		Sensitive: router.Sensitive,
		Strict:    router.Strict,
	}
}

func (router *Router) logger() *slog.Logger {
	if router.Logger != nil {
		return router.Logger
	}
	return discardLogger
}

// Handle registers handlers for a path specifier such as "/user/:id?" or
// "/files/*". It panics if the specifier does not compile.
func (router *Router) Handle(spec string, handlers ...Handler) *Route {
	p, err := pattern.Compile(spec, router.options())
	if err != nil {
		panic("hashrouter: " + err.Error())
	}

	return router.HandlePattern(p, handlers...)
}

// HandleAlternatives registers handlers for any of the given literal paths.
// The matched alternative is available as positional parameter 0.
func (router *Router) HandleAlternatives(paths []string, handlers ...Handler) *Route {
	p, err := pattern.CompileAlternatives(paths, router.options())
	if err != nil {
		panic("hashrouter: " + err.Error())
	}

	return router.HandlePattern(p, handlers...)
}

// HandleRegexp registers handlers for a caller-built expression. The
// expression is used as is; anchor it if a full match is wanted.
func (router *Router) HandleRegexp(re *regexp.Regexp, handlers ...Handler) *Route {
	if re == nil {
		panic("hashrouter: nil regexp")
	}

	return router.HandlePattern(pattern.FromRegexp(re), handlers...)
}

// HandlePattern registers handlers for a compiled pattern.
func (router *Router) HandlePattern(p *pattern.Pattern, handlers ...Handler) *Route {
	if p == nil {
		panic("hashrouter: nil pattern")
	}
	validateHandlers(p.Source(), handlers)

	route := &Route{
		router:   router,
		pattern:  p,
		handlers: append([]Handler(nil), handlers...),
	}

	router.mu.Lock()
	if router.index == nil {
		router.index = make(map[string][]*Route)
	}
	router.routes = append(router.routes, route)
	router.index[p.Source()] = append(router.index[p.Source()], route)
	count := len(router.routes)
	router.mu.Unlock()

	router.Metrics.setRoutes(count)
	router.logger().Debug("route registered",
		"spec", p.Source(),
		"handlers", len(handlers),
	)

	return route
}

// HandleMap registers every entry in order.
func (router *Router) HandleMap(m Map) *Router {
	for _, e := range m {
		router.Handle(e.Spec, e.Handlers...)
	}
	return router
}

// Remove unregisters every route registered with spec. Unknown specifiers
// are ignored.
func (router *Router) Remove(spec string) *Router {
	router.mu.Lock()
	if _, ok := router.index[spec]; ok {
		kept := router.routes[:0]
		for _, r := range router.routes {
			if r.Spec() != spec {
				kept = append(kept, r)
			}
		}
		clear(router.routes[len(kept):])
		router.routes = kept
		delete(router.index, spec)
	}
	count := len(router.routes)
	router.mu.Unlock()

	router.Metrics.setRoutes(count)
	return router
}

// RemoveHandler removes the first occurrence of h from the routes
// registered with spec. A route left without handlers is unregistered.
func (router *Router) RemoveHandler(spec string, h Handler) *Router {
	if h == nil {
		return router.Remove(spec)
	}

	router.mu.Lock()
	for _, r := range router.index[spec] {
		if !r.removeHandler(h) {
			continue
		}
		if len(r.handlers) == 0 {
			router.drop(r)
		}
		break
	}
	count := len(router.routes)
	router.mu.Unlock()

	router.Metrics.setRoutes(count)
	return router
}

// drop removes r from both the ordered table and the index.
func (router *Router) drop(r *Route) {
	for i, candidate := range router.routes {
		if candidate == r {
			router.routes = append(router.routes[:i], router.routes[i+1:]...)
			break
		}
	}

	spec := r.Spec()
	routes := router.index[spec]
	for i, candidate := range routes {
		if candidate == r {
			routes = append(routes[:i], routes[i+1:]...)
			break
		}
	}
	if len(routes) == 0 {
		delete(router.index, spec)
	} else {
		router.index[spec] = routes
	}
}

// Routes returns the registered routes in dispatch order.
func (router *Router) Routes() []*Route {
	router.mu.RLock()
	defer router.mu.RUnlock()

	return append([]*Route(nil), router.routes...)
}

// List returns the registered specifiers in dispatch order.
func (router *Router) List() []string {
	router.mu.RLock()
	defer router.mu.RUnlock()

	specs := make([]string, len(router.routes))
	for i, r := range router.routes {
		specs[i] = r.Spec()
	}
	return specs
}

// lookup finds the first matching route and snapshots its handlers.
func (router *Router) lookup(fragment string) (*Context, []Handler) {
	router.mu.RLock()
	defer router.mu.RUnlock()

	for _, r := range router.routes {
		if ctx, ok := r.Match(fragment); ok {
			return ctx, append([]Handler(nil), r.handlers...)
		}
	}
	return nil, nil
}

// Dispatch runs the handler chain of the first route matching fragment and
// reports whether a route matched. Panics raised by handlers are not
// recovered.
func (router *Router) Dispatch(fragment string) bool {
	return router.DispatchContext(context.Background(), fragment)
}

// DispatchContext is like Dispatch with a caller supplied context, which
// handlers can read through Context.Context.
func (router *Router) DispatchContext(ctx context.Context, fragment string) bool {
	if router.Tracer != nil {
		var span trace.Span
		ctx, span = router.Tracer.Start(ctx, "hashrouter.Dispatch",
			trace.WithAttributes(attribute.String("hashrouter.fragment", fragment)),
		)
		defer span.End()
	}

	c, handlers := router.lookup(fragment)
	if c == nil {
		router.Metrics.observe("", false)
		router.logger().Debug("unhandled fragment", "fragment", fragment)

		if router.NotFound != nil {
			router.NotFound(&Context{Path: fragment, Params: &Params{}, ctx: ctx}, func() {})
		}
		return false
	}

	spec := c.route.Spec()
	c.ctx = ctx
	if router.SaveMatchedRoutePath {
		c.Params.set(MatchedRoutePathParam, spec)
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.String("hashrouter.route", spec))
	router.Metrics.observe(spec, true)

	run(c, handlers)

	return true
}

// Listen dispatches the current fragment of src, then every fragment src
// reports until the returned function is called.
func (router *Router) Listen(src location.Source) (stop func()) {
	return src.Subscribe(func(fragment string) {
		router.Dispatch(fragment)
	})
}
