package geocache

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths, outside its mutex, so a hook may
// call back into the cache.
type Hooks interface {
	// A query resolved from a stored footprint. seq identifies the entry.
	Hit(seq uint64)

	// A query required invoking the wrapped computation.
	Miss()

	// The least-recently-used entry was removed under capacity pressure.
	Evicted(seq, recency uint64)

	// A computed result was returned uncached.
	// reason ∈ {"empty_footprint", "degenerate_footprint", "invalid_footprint"}
	Uncacheable(reason string)

	// A geometry was repaired during a predicate retry or an insert.
	// op ∈ {"contains", "insert"}
	Repaired(op string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(uint64)             {}
func (NopHooks) Miss()                  {}
func (NopHooks) Evicted(uint64, uint64) {}
func (NopHooks) Uncacheable(string)     {}
func (NopHooks) Repaired(string)        {}
