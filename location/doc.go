// Package location turns a navigable host into a stream of fragments.
//
// A host that pushes change notifications implements Notifier; any other
// Host is polled. Detect probes the host once and returns the matching
// Source, so consumers never branch on the delivery mechanism:
//
//	src := location.Detect(host, location.WithInterval(50*time.Millisecond))
//	stop := router.Listen(src)
//	defer stop()
package location
