// Package geocache implements an in-process cache keyed by spatial
// region containment rather than by hashable equality. A computation
// returns, together with its result, its footprint: the maximal region
// over which that result is guaranteed constant. Later queries that
// fall entirely inside a stored footprint are served from the cache
// without recomputation.
//
// Components:
//   - Footprint Index: R-tree bounding-box prefilter plus exact
//     containment refinement over stored (footprint, payload) entries.
//   - Eviction Tracker: recency list bounding the store to a fixed
//     capacity with least-recently-used eviction.
//   - Cache Controller: wraps a ComputeFunc and orchestrates the
//     get-or-compute protocol.
//
// Overlapping footprints are possible (independent computations may
// return overlapping regions); lookups resolve overlap deterministically
// in favor of the most recently inserted match.
//
// Usage:
//
//	c, err := geocache.New[string](geocache.Options[string]{
//		Compute: func(ctx context.Context, q geo.Geometry) (string, geo.Geometry, error) {
//			country := lookupCountry(q)
//			return country.Name, country.Polygon, nil
//		},
//	})
//	name, err := c.Do(ctx, geo.PointXY(13.4, 52.5))
//
// Returning an empty footprint from the ComputeFunc is the explicit
// do-not-cache escape hatch for results with no validity region.
package geocache
