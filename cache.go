package geocache

import (
	"context"
	"sync"

	"github.com/unkn0wn-root/geocache/geo"
)

// Cache is the controller wrapping a ComputeFunc behind footprint
// lookups with LRU bounding. Safe for concurrent use: one mutex spans
// lookup, hit/miss decision, installation and eviction, while the
// wrapped computation itself runs outside the lock. Two concurrent
// misses for equivalent work may therefore both compute and both
// insert; the index's most-recent-match policy resolves future lookups
// deterministically, and nothing is corrupted.
type Cache[V any] struct {
	compute  ComputeFunc[V]
	capacity int
	log      Logger
	hooks    Hooks

	mu     sync.Mutex
	idx    *footprintIndex[V]
	lru    *recencyList[V]
	seq    uint64
	hits   uint64
	misses uint64
}

func newCache[V any](opts Options[V]) (*Cache[V], error) {
	if opts.Compute == nil {
		return nil, errComputeRequired
	}
	if opts.Capacity < 0 {
		return nil, &CapacityError{Capacity: opts.Capacity}
	}

	c := &Cache[V]{
		compute:  opts.Compute,
		capacity: coalesce(opts.Capacity, DefaultCapacity),
		log:      coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:    coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
	c.idx = newFootprintIndex[V]()
	c.lru = newRecencyList[V]()
	return c, nil
}

// Do resolves query from a stored footprint, or invokes the wrapped
// computation on a miss. Computation errors propagate as-is; the miss
// has already been counted and no entry is inserted.
func (c *Cache[V]) Do(ctx context.Context, query geo.Geometry) (V, error) {
	var zero V

	c.mu.Lock()
	e, err := c.idx.lookup(query)
	repairs := c.idx.drainRepairs()
	if err != nil {
		c.mu.Unlock()
		c.reportRepairs(repairs)
		return zero, err
	}
	if e != nil {
		c.hits++
		c.lru.touch(e)
		v := e.payload
		seq := e.seq
		c.mu.Unlock()
		c.reportRepairs(repairs)
		c.hooks.Hit(seq)
		return v, nil
	}
	c.misses++
	c.mu.Unlock()
	c.reportRepairs(repairs)
	c.hooks.Miss()

	v, footprint, err := c.compute(ctx, query)
	if err != nil {
		return zero, err
	}
	c.install(v, footprint)
	return v, nil
}

// reportRepairs emits one Repaired event per predicate failure that
// lookup recovered from.
func (c *Cache[V]) reportRepairs(errs []error) {
	for _, err := range errs {
		c.hooks.Repaired("contains")
		c.log.Warn("containment predicate failed; retried with repaired geometries", Fields{"err": err})
	}
}

// install admits the footprint and creates the entry, evicting the
// least-recently-used entry when the store would exceed capacity.
// Rejected footprints leave the store untouched; the payload has
// already been handed to the caller.
func (c *Cache[V]) install(payload V, footprint geo.Geometry) {
	footprint, bounds, ok := c.admit(footprint)
	if !ok {
		return
	}

	c.mu.Lock()
	c.seq++
	e := &entry[V]{
		footprint: footprint,
		bounds:    bounds,
		payload:   payload,
		seq:       c.seq,
	}
	c.lru.push(e)
	c.idx.insert(e)

	var evicted []*entry[V]
	for c.lru.len() > c.capacity {
		victim := c.lru.victim()
		c.lru.remove(victim)
		c.idx.remove(victim)
		evicted = append(evicted, victim)
	}
	c.mu.Unlock()

	for _, victim := range evicted {
		c.hooks.Evicted(victim.seq, victim.recency)
		c.log.Debug("evicted least-recently-used entry", Fields{"seq": victim.seq, "recency": victim.recency})
	}
}

// admit normalizes a returned footprint. Empty footprints are the
// do-not-cache escape hatch; degenerate regions (zero area) and
// unrepairable invalid geometries must not create entries either.
//
// Repair is not point-set-preserving: a self-intersecting footprint
// may be admitted as a smaller valid region, and queries falling in
// the dropped portion will recompute rather than hit. The entry is
// still sound, it just covers less than the raw ring traced.
func (c *Cache[V]) admit(footprint geo.Geometry) (geo.Geometry, geo.Rect, bool) {
	if footprint.IsEmpty() {
		c.hooks.Uncacheable("empty_footprint")
		return footprint, geo.Rect{}, false
	}
	if err := footprint.Validate(); err != nil {
		repaired, rerr := footprint.Repair()
		if rerr != nil || repaired.IsEmpty() || repaired.Validate() != nil {
			c.hooks.Uncacheable("invalid_footprint")
			c.log.Warn("computed footprint is invalid and unrepairable; result not cached", Fields{"err": err})
			return footprint, geo.Rect{}, false
		}
		c.hooks.Repaired("insert")
		c.log.Debug("repaired computed footprint before insert", Fields{"err": err})
		footprint = repaired
	}
	if footprint.Area() == 0 {
		c.hooks.Uncacheable("degenerate_footprint")
		c.log.Warn("computed footprint has zero area; result not cached", nil)
		return footprint, geo.Rect{}, false
	}
	bounds, ok := footprint.Bounds()
	if !ok {
		c.hooks.Uncacheable("empty_footprint")
		return footprint, geo.Rect{}, false
	}
	return footprint, bounds, true
}

// Info returns a snapshot of the hit/miss counters.
func (c *Cache[V]) Info() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses}
}

// Len reports the number of live entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.len()
}

// Clear empties the store and resets both counters to zero.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx = newFootprintIndex[V]()
	c.lru = newRecencyList[V]()
	c.seq = 0
	c.hits = 0
	c.misses = 0
}
