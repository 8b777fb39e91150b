package hashrouter

import (
	"context"
	"net/url"
	"unicode/utf8"

	"github.com/pedia/hashrouter/pattern"
)

// Context is passed through a route's handler chain for one dispatch.
type Context struct {
	// Path is the fragment that matched.
	Path string
	// Params holds the decoded parameters captured from Path.
	Params *Params

	ctx   context.Context
	route *Route
}

// Context returns the context.Context of the dispatch.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Route returns the matched route, or nil when the context was built for
// the NotFound handler.
func (c *Context) Route() *Route {
	return c.route
}

type positional struct {
	value string
	ok    bool
}

// Params holds named parameters by name and unnamed parameters (wildcards,
// plain groups) by position. Both views live side by side and never collide.
//
// Absent optional segments are not stored: Get reports false for them.
type Params struct {
	named map[string]string
	names []string
	list  []positional
}

// Get returns the value of the named parameter.
func (p *Params) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.named[name]
	return v, ok
}

// ByName returns the value of the named parameter, or "" if absent.
func (p *Params) ByName(name string) string {
	v, _ := p.Get(name)
	return v
}

// At returns the i-th positional parameter.
func (p *Params) At(i int) (string, bool) {
	if p == nil || i < 0 || i >= len(p.list) {
		return "", false
	}
	return p.list[i].value, p.list[i].ok
}

// Len returns the number of positional parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.list)
}

// Names returns the names of the parameters that have a value, in the order
// they were captured.
func (p *Params) Names() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.names...)
}

func (p *Params) set(name, value string) {
	if _, ok := p.named[name]; ok {
		return
	}
	if p.named == nil {
		p.named = make(map[string]string)
	}
	p.named[name] = value
	p.names = append(p.names, name)
}

// newParams decodes captures. For a name seen twice the first value that
// was present wins.
func newParams(captures []pattern.Capture) *Params {
	p := &Params{}

	for _, c := range captures {
		value := c.Value
		if c.Matched {
			value = decode(value)
		}

		if c.Key.Name == "" {
			p.list = append(p.list, positional{value: value, ok: c.Matched})
			continue
		}
		if c.Matched {
			p.set(c.Key.Name, value)
		}
	}

	return p
}

// decode undoes percent-encoding; '+' is kept as is. Malformed escapes
// and escapes that do not form valid UTF-8 leave the value untouched.
func decode(s string) string {
	if v, err := url.PathUnescape(s); err == nil && utf8.ValidString(v) {
		return v
	}
	return s
}
