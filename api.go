package geocache

import (
	"context"

	"github.com/unkn0wn-root/geocache/geo"
)

// ComputeFunc is the wrapped computation. It returns the payload for
// the query together with the footprint the payload is valid over.
// An empty footprint means "do not cache": the payload is returned to
// the caller but no entry is created, and an equivalent future query
// computes again.
type ComputeFunc[V any] func(ctx context.Context, query geo.Geometry) (V, geo.Geometry, error)

// Stats is a read-only snapshot of cache counters.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Options tune the cache. Only Compute is required.
type Options[V any] struct {
	// Required
	Compute ComputeFunc[V]

	Capacity int    // max entries; 0 => DefaultCapacity, negative => CapacityError
	Logger   Logger // if nil, NopLogger is used
	Hooks    Hooks  // if nil, NopHooks is used
}

// New builds a Cache wrapping opts.Compute.
func New[V any](opts Options[V]) (*Cache[V], error) {
	return newCache[V](opts)
}
