package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// ErrInvalidPattern is wrapped by every compile failure.
var ErrInvalidPattern = errors.New("invalid route pattern")

// placeholder matches an optional slash, an optional format dot, the
// parameter name, an optional custom capture and the optional marker.
var placeholder = regexp.MustCompile(`(/)?(\.)?:(\w+)(\(.*?\))?(\?)?`)

// keyPrefix names the capture groups emitted for placeholders so the
// schedule can be rebuilt from the compiled expression.
const keyPrefix = "__hrk"

// Options controls how specifiers are compiled.
type Options struct {
	// Sensitive makes matching case-sensitive.
	Sensitive bool
	// Strict disables the implicit optional trailing slash.
	Strict bool
}

// Key describes one capture group of a compiled pattern.
// Name is empty for positional groups such as wildcards.
type Key struct {
	Name     string
	Optional bool
}

// Capture is the value of one capture group after a match.
// Matched is false when the group did not take part in the match.
type Capture struct {
	Key     Key
	Value   string
	Matched bool
}

// Pattern is a compiled route specifier. It is immutable.
type Pattern struct {
	source string
	keys   []Key
	re     *regexp.Regexp
}

// Compile turns a path specifier into a Pattern.
func Compile(spec string, opts Options) (*Pattern, error) {
	var keys []Key

	path := spec
	if !opts.Strict {
		path += "/?"
	}
	path = strings.ReplaceAll(path, "/(", "(?:/")

	var expanded strings.Builder
	last := 0
	for _, m := range placeholder.FindAllStringSubmatchIndex(path, -1) {
		expanded.WriteString(path[last:m[0]])
		last = m[1]

		slash := group(path, m, 1)
		format := group(path, m, 2)
		name := group(path, m, 3)
		capture := group(path, m, 4)
		optional := group(path, m, 5) != ""

		groupName := keyPrefix + strconv.Itoa(len(keys))
		keys = append(keys, Key{Name: name, Optional: optional})

		switch {
		case capture == "" && format != "":
			capture = "(?P<" + groupName + ">[^/.]+?)"
		case capture == "":
			capture = "(?P<" + groupName + ">[^/]+?)"
		case strings.HasPrefix(capture, "(?"):
			capture = "(?P<" + groupName + ">" + capture + ")"
		default:
			capture = "(?P<" + groupName + ">" + capture[1:]
		}

		if !optional {
			expanded.WriteString(slash)
		}
		expanded.WriteString("(?:")
		if optional {
			expanded.WriteString(slash)
		}
		expanded.WriteString(format)
		expanded.WriteString(capture)
		expanded.WriteString(")")
		if optional {
			expanded.WriteString("?")
		}
	}
	expanded.WriteString(path[last:])

	return build(spec, expanded.String(), keys, opts)
}

// MustCompile is like Compile but panics if the specifier is malformed.
func MustCompile(spec string, opts Options) *Pattern {
	p, err := Compile(spec, opts)
	if err != nil {
		panic(err)
	}
	return p
}

// CompileAlternatives compiles a list of literal paths into a single
// alternation group. Placeholders are not expanded; the group captures the
// alternative that matched as a positional parameter.
func CompileAlternatives(paths []string, opts Options) (*Pattern, error) {
	path := "(" + strings.Join(paths, "|") + ")"
	if !opts.Strict {
		path += "/?"
	}
	path = strings.ReplaceAll(path, "/(", "(?:/")

	return build(strings.Join(paths, ","), path, nil, opts)
}

// FromRegexp wraps a caller-built expression. Named groups become named
// parameters and unnamed groups positional ones.
func FromRegexp(re *regexp.Regexp) *Pattern {
	return &Pattern{
		source: re.String(),
		keys:   schedule(re, nil),
		re:     re,
	}
}

// build escapes slashes and dots, expands wildcards and anchors expr.
func build(source, expr string, keys []Key, opts Options) (*Pattern, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if !opts.Sensitive {
		buf.WriteString("(?i)")
	}
	buf.WriteByte('^')
	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; c {
		case '/', '.':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case '*':
			buf.WriteString("(.*)")
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('$')

	re, err := regexp.Compile(buf.String())
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, source, err)
	}

	return &Pattern{
		source: source,
		keys:   schedule(re, keys),
		re:     re,
	}, nil
}

// schedule lists one Key per capture group of re, in group order.
func schedule(re *regexp.Regexp, keys []Key) []Key {
	names := re.SubexpNames()
	out := make([]Key, 0, len(names)-1)

	for _, name := range names[1:] {
		if idx, ok := strings.CutPrefix(name, keyPrefix); ok {
			if i, err := strconv.Atoi(idx); err == nil && i < len(keys) {
				out = append(out, keys[i])
				continue
			}
		}
		out = append(out, Key{Name: name})
	}

	return out
}

func group(s string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return s[m[2*i]:m[2*i+1]]
}

// Source returns the specifier the pattern was built from. Alternatives
// are joined with commas; wrapped expressions return their source text.
func (p *Pattern) Source() string {
	return p.source
}

// Keys returns the parameter schedule, one entry per capture group.
func (p *Pattern) Keys() []Key {
	return append([]Key(nil), p.keys...)
}

// Regexp returns the compiled expression.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.re
}

func (p *Pattern) String() string {
	return p.re.String()
}

// MatchString reports whether fragment satisfies the pattern.
func (p *Pattern) MatchString(fragment string) bool {
	return p.re.MatchString(fragment)
}

// Match tests fragment and returns one Capture per Key on success.
func (p *Pattern) Match(fragment string) ([]Capture, bool) {
	loc := p.re.FindStringSubmatchIndex(fragment)
	if loc == nil {
		return nil, false
	}

	captures := make([]Capture, len(p.keys))
	for i, key := range p.keys {
		captures[i].Key = key
		if start, end := loc[2*i+2], loc[2*i+3]; start >= 0 {
			captures[i].Value = fragment[start:end]
			captures[i].Matched = true
		}
	}

	return captures, true
}
