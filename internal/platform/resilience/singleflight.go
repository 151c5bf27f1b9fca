package resilience

import "golang.org/x/sync/singleflight"

// Group collapses concurrent calls that share a key into one execution.
// Typed wrapper over x/sync/singleflight.
type Group[T any] struct {
	g singleflight.Group
}

func (g *Group[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	v, err, shared := g.g.Do(key, func() (any, error) {
		return fn()
	})
	out, _ := v.(T)
	return out, err, shared
}

func (g *Group[T]) Forget(key string) {
	g.g.Forget(key)
}
