package hashrouter

import (
	"io"
	"log/slog"
	"unsafe"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func validateHandlers(spec string, handlers []Handler) {
	for _, h := range handlers {
		if h == nil {
			panic("hashrouter: nil handler in route '" + spec + "'")
		}
	}
}

// sameHandler compares the closure words of two func values, which are
// distinct for every closure instance even when built by one factory.
func sameHandler(a, b Handler) bool {
	return *(*unsafe.Pointer)(unsafe.Pointer(&a)) == *(*unsafe.Pointer)(unsafe.Pointer(&b))
}
