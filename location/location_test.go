package location

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href string
		want string
	}{
		{"http://example.com/#/users/1", "/users/1"},
		{"http://example.com/#!/users/1", "/users/1"},
		{"http://example.com/app#/q/hello%20world", "/q/hello%20world"},
		{"http://example.com/", Home},
		{"http://example.com", Home},
		{"http://example.com/#", Home},
		{"http://example.com/page", ""},
		{"/app#!/settings", "/settings"},
		{"#/inbox", "/inbox"},
		{"/#!", "!"},
		{"/#/a#b", "/a"},
		{"/#!/a#!/b", "/a"},
		{"/?tab=2#/list", "/list"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Fragment(tt.href), tt.href)
	}
}

type staticHost struct {
	mu   sync.Mutex
	href string
}

func (h *staticHost) Href() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.href
}

func (h *staticHost) set(href string) {
	h.mu.Lock()
	h.href = href
	h.mu.Unlock()
}

func TestDetect(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &Events{}, Detect(NewEmitter("/")))
	assert.IsType(t, &Poller{}, Detect(&staticHost{href: "/"}))
}

func TestEventsSource(t *testing.T) {
	t.Parallel()

	em := NewEmitter("http://example.com/")
	src := Detect(em)
	assert.Equal(t, Home, src.Current())

	var got []string
	stop := src.Subscribe(func(fragment string) {
		got = append(got, fragment)
	})

	em.Navigate("http://example.com/#/a")
	em.Navigate("http://example.com/#!/b")
	stop()
	em.Navigate("http://example.com/#/c")

	assert.Equal(t, []string{Home, "/a", "/b"}, got)
	assert.Equal(t, "/c", src.Current())
}

func TestEventsQueuesNestedNavigation(t *testing.T) {
	t.Parallel()

	em := NewEmitter("/#/start")
	src := Detect(em)

	var got []string
	stop := src.Subscribe(func(fragment string) {
		got = append(got, fragment)
		if fragment == "/admin" {
			em.Navigate("/#/login")
			got = append(got, "navigated")
		}
	})
	defer stop()

	em.Navigate("/#/admin")

	assert.Equal(t, []string{"/start", "/admin", "navigated", "/login"}, got)
}

func TestEmitterOrder(t *testing.T) {
	t.Parallel()

	em := NewEmitter("")

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		em.OnChange(func() { order = append(order, i) })
	}
	em.Navigate("#/x")

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, "#/x", em.Href())
}

func TestPoller(t *testing.T) {
	t.Parallel()

	host := &staticHost{href: "/#/start"}
	src := Detect(host, WithInterval(5*time.Millisecond))
	require.Equal(t, "/start", src.Current())

	var (
		mu  sync.Mutex
		got []string
	)
	stop := src.Subscribe(func(fragment string) {
		mu.Lock()
		got = append(got, fragment)
		mu.Unlock()
	})
	defer stop()

	host.set("/#/next")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"/start", "/next"}, got)
	mu.Unlock()
}

func TestPollerStop(t *testing.T) {
	t.Parallel()

	host := &staticHost{href: "/#/a"}
	p := NewPoller(host.Href, WithInterval(2*time.Millisecond))

	var calls atomic.Int32
	stop := p.Subscribe(func(string) { calls.Add(1) })
	stop()

	host.set("/#/b")
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
}

func TestPollerSubscribeUsesInitialSample(t *testing.T) {
	t.Parallel()

	host := &staticHost{href: "/#/first"}
	p := NewPoller(host.Href, WithInterval(2*time.Millisecond))

	var (
		mu  sync.Mutex
		got []string
	)
	stop := p.Subscribe(func(fragment string) {
		mu.Lock()
		got = append(got, fragment)
		mu.Unlock()
		if fragment == "/first" {
			host.set("/#/second")
		}
	})
	defer stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 2*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"/first", "/second"}, got)
	mu.Unlock()
}
