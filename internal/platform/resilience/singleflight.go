package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight deduplicates concurrent calls for the same key. The zero value
// is ready to use.
type SingleFlight struct {
	group singleflight.Group
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	return g.group.Do(key, fn)
}

// Forget drops an in-flight key so the next caller starts a fresh call.
func (g *SingleFlight) Forget(key string) {
	g.group.Forget(key)
}
