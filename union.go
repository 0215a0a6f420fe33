package geocache

import (
	"context"
	"sort"
	"sync"

	"github.com/unkn0wn-root/geocache/geo"
)

// Spatial is anything with a geometry, e.g. a dataset feature.
type Spatial interface {
	Geometry() geo.Geometry
}

// UnionFunc loads the items found inside region.
type UnionFunc[T Spatial] func(ctx context.Context, region geo.Geometry) ([]T, error)

// UnionOptions tune a UnionCache.
type UnionOptions struct {
	MaxSize int    // max cached regions; 0 => DefaultUnionSize, negative => CapacityError
	Logger  Logger // if nil, NopLogger is used
}

type unionEntry[T Spatial] struct {
	region geo.Geometry
	items  []T
}

// UnionCache caches by area coverage rather than containment: a call
// composes its result from every cached region overlapping the query,
// then invokes the wrapped function only on the still-uncovered
// remainder. Useful when the wrapped function returns the items found
// inside a region, so previous loads shrink the area later loads must
// touch.
//
// The mutex is held across the wrapped call: concurrent callers of one
// UnionCache serialize. Entries are ordered most recent first.
type UnionCache[T Spatial] struct {
	fn      UnionFunc[T]
	maxSize int
	log     Logger

	mu      sync.Mutex
	entries []*unionEntry[T]
}

// NewUnion builds a UnionCache wrapping fn.
func NewUnion[T Spatial](fn UnionFunc[T], opts UnionOptions) (*UnionCache[T], error) {
	if fn == nil {
		return nil, errComputeRequired
	}
	if opts.MaxSize < 0 {
		return nil, &CapacityError{Capacity: opts.MaxSize}
	}
	return &UnionCache[T]{
		fn:      fn,
		maxSize: coalesce(opts.MaxSize, DefaultUnionSize),
		log:     coalesce[Logger](opts.Logger, NopLogger{}),
	}, nil
}

// Do returns the items inside region, reusing cached loads for covered
// sub-areas. An empty region bypasses the cache entirely (the load-all
// passthrough).
func (u *UnionCache[T]) Do(ctx context.Context, region geo.Geometry) ([]T, error) {
	if region.IsEmpty() {
		return u.fn(ctx, region)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	// Overlapping cached regions, biggest first: large regions knock out
	// the most remaining area per containment check.
	overlapping := make([]*unionEntry[T], 0, len(u.entries))
	for _, e := range u.entries {
		if e.region.Intersects(region) {
			overlapping = append(overlapping, e)
		}
	}
	sort.SliceStable(overlapping, func(i, j int) bool {
		return overlapping[i].region.Area() > overlapping[j].region.Area()
	})

	remaining := region
	var out []T
	for _, e := range overlapping {
		covered, err := remaining.Covers(e.region)
		if err != nil {
			return nil, err
		}
		if covered {
			// whole cached slice is relevant, skip the per-item filter
			out = append(out, e.items...)
		} else {
			overlap, err := e.region.Intersection(remaining)
			if err != nil {
				return nil, err
			}
			if overlap.Area() == 0 {
				continue
			}
			for _, item := range e.items {
				if item.Geometry().Intersects(overlap) {
					out = append(out, item)
				}
			}
		}

		remaining, err = remaining.Difference(e.region)
		if err != nil {
			return nil, err
		}
		if remaining.IsEmpty() {
			break
		}
	}

	if !remaining.IsEmpty() && remaining.Area() > 0 {
		fresh, err := u.fn(ctx, remaining)
		if err != nil {
			return nil, err
		}
		out = append(out, fresh...)

		// Record the load under the full query region and move it to the
		// front, trimming the least recent region past MaxSize.
		u.entries = append([]*unionEntry[T]{{region: region, items: fresh}}, u.entries...)
		if len(u.entries) > u.maxSize {
			u.entries = u.entries[:u.maxSize]
		}
		u.log.Debug("union cache computed remainder", Fields{"remainderArea": remaining.Area(), "regions": len(u.entries)})
	}

	return out, nil
}

// Len reports the number of cached regions.
func (u *UnionCache[T]) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.entries)
}
