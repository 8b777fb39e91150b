package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pedia/hashrouter"
	"github.com/pedia/hashrouter/pattern"
)

var errNoRoutes = errors.New("no routes defined")

// routeDef is one entry of the route file.
type routeDef struct {
	Spec  string
	Label string
}

// result is printed for every dispatched address.
type result struct {
	Href       string            `yaml:"href,omitempty"`
	Fragment   string            `yaml:"fragment"`
	Matched    bool              `yaml:"matched"`
	Route      string            `yaml:"route,omitempty"`
	Label      string            `yaml:"label,omitempty"`
	Params     map[string]string `yaml:"params,omitempty"`
	Positional []string          `yaml:"positional,omitempty"`
}

func loadRoutes(path string) ([]routeDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading routes: %w", err)
	}

	defs, err := parseRoutes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// parseRoutes decodes an ordered YAML mapping of specifier to label.
func parseRoutes(data []byte) ([]routeDef, error) {
	var items yaml.MapSlice
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing routes: %w", err)
	}
	if len(items) == 0 {
		return nil, errNoRoutes
	}

	defs := make([]routeDef, 0, len(items))
	for _, item := range items {
		label := ""
		if item.Value != nil {
			label = fmt.Sprint(item.Value)
		}
		defs = append(defs, routeDef{
			Spec:  fmt.Sprint(item.Key),
			Label: label,
		})
	}
	return defs, nil
}

// table is a router whose handlers record the last match.
type table struct {
	router *hashrouter.Router
	last   *result
}

func newTable(defs []routeDef, flags *globalFlags, logger *slog.Logger) (*table, error) {
	t := &table{router: hashrouter.New()}
	t.router.Strict = flags.strict
	t.router.Sensitive = flags.sensitive
	t.router.Logger = logger

	opts := pattern.Options{Strict: flags.strict, Sensitive: flags.sensitive}
	for _, def := range defs {
		p, err := pattern.Compile(def.Spec, opts)
		if err != nil {
			return nil, err
		}
		t.router.HandlePattern(p, t.record(def.Label))
	}

	return t, nil
}

func (t *table) record(label string) hashrouter.Handler {
	return func(ctx *hashrouter.Context, next func()) {
		r := t.last
		r.Matched = true
		r.Route = ctx.Route().Spec()
		r.Label = label

		for _, name := range ctx.Params.Names() {
			if r.Params == nil {
				r.Params = make(map[string]string)
			}
			r.Params[name] = ctx.Params.ByName(name)
		}
		for i := 0; i < ctx.Params.Len(); i++ {
			v, _ := ctx.Params.At(i)
			r.Positional = append(r.Positional, v)
		}

		next()
	}
}

// dispatch routes fragment and returns what matched.
func (t *table) dispatch(href, fragment string) *result {
	t.last = &result{Href: href, Fragment: fragment}
	t.router.Dispatch(fragment)
	return t.last
}

func writeResult(w io.Writer, r *result) error {
	out, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if _, err := fmt.Fprintf(w, "---\n%s", out); err != nil {
		return err
	}
	return nil
}
