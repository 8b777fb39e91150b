package location

import (
	"slices"
	"sync"
)

// Emitter is an in-process Notifier. Navigate updates the address and
// synchronously notifies every subscriber.
type Emitter struct {
	mu     sync.Mutex
	href   string
	nextID int
	subs   map[int]func()
}

// NewEmitter returns an Emitter positioned at href.
func NewEmitter(href string) *Emitter {
	return &Emitter{
		href: href,
		subs: make(map[int]func()),
	}
}

// Href returns the current address.
func (e *Emitter) Href() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.href
}

// OnChange registers fn for every subsequent Navigate.
func (e *Emitter) OnChange(fn func()) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

// Navigate moves to href and notifies subscribers in subscription order.
func (e *Emitter) Navigate(href string) {
	e.mu.Lock()
	e.href = href
	ids := make([]int, 0, len(e.subs))
	for id := range e.subs {
		ids = append(ids, id)
	}
	e.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		e.mu.Lock()
		fn, ok := e.subs[id]
		e.mu.Unlock()

		if ok {
			fn()
		}
	}
}
