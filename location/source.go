package location

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the polling period used when none is configured.
const DefaultInterval = 100 * time.Millisecond

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Source delivers the current fragment whenever the location changes.
// Deliveries to one subscriber never overlap.
type Source interface {
	// Current returns the fragment of the current location.
	Current() string
	// Subscribe calls fn with the current fragment, then with the new
	// fragment after every change until the returned function is called.
	Subscribe(fn func(fragment string)) (unsubscribe func())
}

// Host exposes the current address.
type Host interface {
	Href() string
}

// Notifier is a Host that announces address changes.
type Notifier interface {
	Host
	OnChange(fn func()) (cancel func())
}

type options struct {
	interval time.Duration
	logger   *slog.Logger
}

// Option configures a Source.
type Option func(*options)

// WithInterval sets the polling period of sources that poll.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithLogger sets the logger used for change records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		interval: DefaultInterval,
		logger:   discardLogger,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Detect returns an event driven Source if h implements Notifier and a
// polling one otherwise.
func Detect(h Host, opts ...Option) Source {
	if n, ok := h.(Notifier); ok {
		return NewEvents(n, opts...)
	}
	return NewPoller(h.Href, opts...)
}

// Events is a Source fed by a Notifier.
type Events struct {
	host   Notifier
	logger *slog.Logger
}

// NewEvents returns a Source that forwards the notifications of host.
func NewEvents(host Notifier, opts ...Option) *Events {
	o := newOptions(opts)
	return &Events{host: host, logger: o.logger}
}

// Current returns the fragment of the host's address.
func (e *Events) Current() string {
	return Fragment(e.host.Href())
}

// Subscribe forwards every notification of the host to fn. A change
// announced while fn is running, for example a handler that navigates, is
// queued and delivered after fn returns.
func (e *Events) Subscribe(fn func(fragment string)) func() {
	var (
		mu         sync.Mutex
		delivering bool
		pending    []string
	)

	deliver := func(fragment string) {
		mu.Lock()
		if delivering {
			pending = append(pending, fragment)
			mu.Unlock()
			return
		}
		delivering = true
		mu.Unlock()

		defer func() {
			mu.Lock()
			delivering = false
			pending = nil
			mu.Unlock()
		}()

		for {
			e.logger.Debug("location changed", "fragment", fragment)
			fn(fragment)

			mu.Lock()
			if len(pending) == 0 {
				mu.Unlock()
				return
			}
			fragment = pending[0]
			pending = pending[1:]
			mu.Unlock()
		}
	}

	cancel := e.host.OnChange(func() {
		deliver(e.Current())
	})
	deliver(e.Current())

	return cancel
}

// Poller is a Source that samples an address at a fixed interval and
// reports when it differs from the previous sample.
type Poller struct {
	href     func() string
	interval time.Duration
	logger   *slog.Logger
}

// NewPoller returns a Poller reading the address from href.
func NewPoller(href func() string, opts ...Option) *Poller {
	o := newOptions(opts)
	return &Poller{
		href:     href,
		interval: o.interval,
		logger:   o.logger,
	}
}

// Current returns the fragment of the sampled address.
func (p *Poller) Current() string {
	return Fragment(p.href())
}

// Subscribe calls fn with the sampled fragment, then starts a polling
// goroutine that compares against that same sample. Later calls of fn run
// on the goroutine; the returned function stops it and may be called from
// within fn.
func (p *Poller) Subscribe(fn func(fragment string)) func() {
	ctx, cancel := context.WithCancel(context.Background())

	last := p.href()
	fn(Fragment(last))

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if ctx.Err() != nil {
				return
			}

			href := p.href()
			if href == last {
				continue
			}
			last = href

			fragment := Fragment(href)
			p.logger.Debug("location changed", "href", href, "fragment", fragment)
			fn(fragment)
		}
	}()

	return cancel
}
