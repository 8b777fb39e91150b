package pattern

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(t *testing.T, p *Pattern, fragment string) map[string]string {
	t.Helper()

	captures, ok := p.Match(fragment)
	require.True(t, ok, "expected %q to match %s", fragment, p)

	out := make(map[string]string)
	for i, c := range captures {
		if !c.Matched {
			continue
		}
		name := c.Key.Name
		if name == "" {
			name = "#" + string(rune('0'+i))
		}
		out[name] = c.Value
	}
	return out
}

func TestCompileLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec    string
		opts    Options
		match   []string
		noMatch []string
	}{
		{
			spec:    "/about",
			match:   []string{"/about", "/about/", "/ABOUT"},
			noMatch: []string{"/about/team", "/abou", "about", "/about//"},
		},
		{
			spec:    "/about",
			opts:    Options{Strict: true},
			match:   []string{"/about"},
			noMatch: []string{"/about/"},
		},
		{
			spec:    "/about",
			opts:    Options{Sensitive: true},
			match:   []string{"/about"},
			noMatch: []string{"/ABOUT"},
		},
		{
			spec:    "/v1.0/index.html",
			match:   []string{"/v1.0/index.html"},
			noMatch: []string{"/v1x0/indexxhtml"},
		},
		{
			spec:  "/",
			match: []string{"/", "//"},
		},
	}

	for _, tt := range tests {
		p, err := Compile(tt.spec, tt.opts)
		require.NoError(t, err)
		assert.Empty(t, p.Keys())

		for _, s := range tt.match {
			assert.True(t, p.MatchString(s), "%s %+v should match %q", tt.spec, tt.opts, s)
		}
		for _, s := range tt.noMatch {
			assert.False(t, p.MatchString(s), "%s %+v should not match %q", tt.spec, tt.opts, s)
		}
	}
}

func TestCompilePlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spec     string
		fragment string
		want     map[string]string
	}{
		{"named", "/user/:id", "/user/42", map[string]string{"id": "42"}},
		{"named trailing slash", "/user/:id", "/user/42/", map[string]string{"id": "42"}},
		{"optional present", "/user/:id?", "/user/7", map[string]string{"id": "7"}},
		{"optional absent", "/user/:id?", "/user", map[string]string{}},
		{"two params", "/blog/:category/:post", "/blog/go/routers", map[string]string{"category": "go", "post": "routers"}},
		{"custom capture", "/user/:id(\\d+)", "/user/123", map[string]string{"id": "123"}},
		{"format", "/report/:name.:ext", "/report/q3.pdf", map[string]string{"name": "q3", "ext": "pdf"}},
		{"optional format absent", "/report/:name.:ext?", "/report/q3", map[string]string{"name": "q3"}},
		{"wildcard", "/files/*", "/files/a/b/c", map[string]string{"#0": "a/b/c"}},
		{"named then wildcard", "/u/:id/*", "/u/9/x/y", map[string]string{"id": "9", "#1": "x/y"}},
		{"wildcard then named", "/*/edit/:id", "/a/b/edit/5", map[string]string{"#0": "a/b", "id": "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.spec, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(t, p, tt.fragment))
		})
	}
}

func TestCompileRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec     string
		fragment string
	}{
		{"/user/:id", "/user"},
		{"/user/:id", "/user/1/2"},
		{"/user/:id(\\d+)", "/user/abc"},
		{"/report/:name.:ext", "/report/q3"},
	}

	for _, tt := range tests {
		p := MustCompile(tt.spec, Options{})
		assert.False(t, p.MatchString(tt.fragment), "%s should not match %q", tt.spec, tt.fragment)
	}
}

func TestScheduleAlignsWithGroups(t *testing.T) {
	t.Parallel()

	specs := []string{
		"/",
		"/user/:id",
		"/user/:id?",
		"/files/*",
		"/*/edit/:id/:rev?",
		"/report/:name.:ext",
		"/user/:id(\\d+)/*",
	}

	for _, spec := range specs {
		p := MustCompile(spec, Options{})
		assert.Len(t, p.Keys(), p.Regexp().NumSubexp(), spec)
	}

	p := MustCompile("/*/edit/:id/:rev?", Options{})
	assert.Equal(t, []Key{{}, {Name: "id"}, {Name: "rev", Optional: true}}, p.Keys())
}

func TestOptionalCaptureIsAbsent(t *testing.T) {
	t.Parallel()

	p := MustCompile("/user/:id?", Options{})

	captures, ok := p.Match("/user")
	require.True(t, ok)
	require.Len(t, captures, 1)
	assert.False(t, captures[0].Matched)
	assert.Equal(t, "id", captures[0].Key.Name)
	assert.True(t, captures[0].Key.Optional)
}

func TestCompileAlternatives(t *testing.T) {
	t.Parallel()

	p, err := CompileAlternatives([]string{"/home", "/index"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "/home,/index", p.Source())
	assert.Equal(t, []Key{{}}, p.Keys())
	assert.Equal(t, map[string]string{"#0": "/index"}, values(t, p, "/index/"))
	assert.False(t, p.MatchString("/other"))

	literal, err := CompileAlternatives([]string{"/:id"}, Options{})
	require.NoError(t, err)
	assert.True(t, literal.MatchString("/:id"))
	assert.False(t, literal.MatchString("/42"))
}

func TestFromRegexp(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^/archive/(?P<year>\d{4})/(\d{2})$`)
	p := FromRegexp(re)

	assert.Same(t, re, p.Regexp())
	assert.Equal(t, re.String(), p.Source())
	assert.Equal(t, []Key{{Name: "year"}, {}}, p.Keys())
	assert.Equal(t, map[string]string{"year": "2024", "#1": "05"}, values(t, p, "/archive/2024/05"))
}

func TestCompileInvalid(t *testing.T) {
	t.Parallel()

	_, err := Compile("/user/:id(\\d+", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)

	assert.Panics(t, func() { MustCompile("/broken/[", Options{}) })
}

func BenchmarkCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Compile("/blog/:category/:post?/*", Options{})
	}
}

func BenchmarkMatch(b *testing.B) {
	p := MustCompile("/blog/:category/:post", Options{})

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		p.Match("/blog/go/request-routers")
	}
}
