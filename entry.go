package geocache

import "github.com/unkn0wn-root/geocache/geo"

// entry is a single cached (footprint, payload) pair.
//
// footprint, bounds, payload and seq are immutable after creation.
// recency and the list links are owned by recencyList and mutate only
// under the controller mutex.
type entry[V any] struct {
	footprint geo.Geometry
	bounds    geo.Rect
	payload   V

	// seq is the insertion-order tie-break, assigned once.
	seq uint64
	// recency is the monotonic access token, restamped on every hit.
	recency uint64

	prev, next *entry[V]
}
