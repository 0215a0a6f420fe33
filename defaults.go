package geocache

// DefaultCapacity is the entry bound used when Options.Capacity is
// unset, matching the conventional LRU default.
const DefaultCapacity = 128

// DefaultUnionSize bounds UnionCache when UnionOptions.MaxSize is unset.
const DefaultUnionSize = 128

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
