// Package geo is the geometry capability set consumed by geocache.
//
// Geometry is a closed variant over the OGC simple-feature types
// (Point, LineString, Polygon, MultiPolygon, ...) backed by
// simplefeatures. Construction is lenient: invalid geometries (e.g.
// self-intersecting rings) are representable, and validity is handled
// explicitly through Validate and Repair. Exact predicates that hit a
// topology failure report it as *InvalidGeometryError so callers can
// run the repair-and-retry policy.
package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peterstace/simplefeatures/geom"
)

// Geometry is an immutable 2-D geometry in a fixed coordinate reference.
// The zero value is an empty geometry.
type Geometry struct {
	g geom.Geometry
}

// InvalidGeometryError reports a topology failure during an exact
// predicate or set operation.
type InvalidGeometryError struct {
	Op  string
	Err error
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("geo: %s on invalid geometry: %v", e.Op, e.Err)
}

func (e *InvalidGeometryError) Unwrap() error { return e.Err }

func invalid(op string, err error) *InvalidGeometryError {
	return &InvalidGeometryError{Op: op, Err: err}
}

// FromWKT parses a WKT string. The geometry is not checked for
// validity; use Validate or Repair if the source is untrusted.
func FromWKT(wkt string) (Geometry, error) {
	g, err := geom.UnmarshalWKT(wkt, geom.NoValidate{})
	if err != nil {
		return Geometry{}, fmt.Errorf("geo: parse wkt: %w", err)
	}
	return Geometry{g: g}, nil
}

// MustWKT is FromWKT that panics on parse failure. Handy for tests and
// package-level fixtures.
func MustWKT(wkt string) Geometry {
	g, err := FromWKT(wkt)
	if err != nil {
		panic(err)
	}
	return g
}

// FromGeoJSON parses a single GeoJSON geometry object.
func FromGeoJSON(data []byte) (Geometry, error) {
	var g geom.Geometry
	if err := g.UnmarshalJSON(data); err != nil {
		return Geometry{}, fmt.Errorf("geo: parse geojson: %w", err)
	}
	return Geometry{g: g}, nil
}

// PointXY builds a point geometry.
func PointXY(x, y float64) Geometry {
	return MustWKT("POINT(" + fmtFloat(x) + " " + fmtFloat(y) + ")")
}

// Box builds an axis-aligned rectangle polygon.
func Box(minX, minY, maxX, maxY float64) Geometry {
	var sb strings.Builder
	sb.WriteString("POLYGON((")
	corner := func(x, y float64) {
		sb.WriteString(fmtFloat(x))
		sb.WriteByte(' ')
		sb.WriteString(fmtFloat(y))
	}
	corner(minX, minY)
	sb.WriteByte(',')
	corner(maxX, minY)
	sb.WriteByte(',')
	corner(maxX, maxY)
	sb.WriteByte(',')
	corner(minX, maxY)
	sb.WriteByte(',')
	corner(minX, minY)
	sb.WriteString("))")
	return MustWKT(sb.String())
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WKT returns the geometry in WKT form.
func (a Geometry) WKT() string { return a.g.AsText() }

// MarshalJSON encodes the geometry as a GeoJSON geometry object.
func (a Geometry) MarshalJSON() ([]byte, error) { return a.g.MarshalJSON() }

// UnmarshalJSON decodes a GeoJSON geometry object.
func (a *Geometry) UnmarshalJSON(data []byte) error {
	g, err := FromGeoJSON(data)
	if err != nil {
		return err
	}
	*a = g
	return nil
}

// IsEmpty reports whether the geometry has no points.
func (a Geometry) IsEmpty() bool { return a.g.IsEmpty() }

// Area returns the planar area. Zero for points and lines.
func (a Geometry) Area() float64 { return a.g.Area() }

// Validate checks the geometry against the OGC validity rules.
func (a Geometry) Validate() error { return a.g.Validate() }

// Bounds returns the bounding box. ok is false for empty geometries.
func (a Geometry) Bounds() (Rect, bool) {
	mn, mx, ok := a.g.Envelope().MinMaxXYs()
	if !ok {
		return Rect{}, false
	}
	return Rect{MinX: mn.X, MinY: mn.Y, MaxX: mx.X, MaxY: mx.Y}, true
}

// Contains reports whether b lies entirely in the interior and boundary
// of a, with at least one interior point in common.
func (a Geometry) Contains(b Geometry) (bool, error) {
	ok, err := geom.Contains(a.g, b.g)
	if err != nil {
		return false, invalid("contains", err)
	}
	return ok, nil
}

// Covers is Contains without the interior-point requirement.
func (a Geometry) Covers(b Geometry) (bool, error) {
	ok, err := geom.Covers(a.g, b.g)
	if err != nil {
		return false, invalid("covers", err)
	}
	return ok, nil
}

// Intersects reports whether a and b share any point.
func (a Geometry) Intersects(b Geometry) bool {
	return geom.Intersects(a.g, b.g)
}

// Intersection returns the pointwise intersection of a and b.
func (a Geometry) Intersection(b Geometry) (Geometry, error) {
	g, err := geom.Intersection(a.g, b.g)
	if err != nil {
		return Geometry{}, invalid("intersection", err)
	}
	return Geometry{g: g}, nil
}

// Difference returns the part of a not covered by b.
func (a Geometry) Difference(b Geometry) (Geometry, error) {
	g, err := geom.Difference(a.g, b.g)
	if err != nil {
		return Geometry{}, invalid("difference", err)
	}
	return Geometry{g: g}, nil
}

// Union returns the pointwise union of a and b.
func (a Geometry) Union(b Geometry) (Geometry, error) {
	g, err := geom.Union(a.g, b.g)
	if err != nil {
		return Geometry{}, invalid("union", err)
	}
	return Geometry{g: g}, nil
}

// Distance returns the shortest planar distance between a and b.
// ok is false when either geometry is empty.
func (a Geometry) Distance(b Geometry) (float64, bool) {
	return geom.Distance(a.g, b.g)
}

// Repair applies the canonical validity-repair transform (union of the
// geometry with itself, the buffer-zero analog). The result satisfies
// Validate when repair succeeds, but the transform is not
// point-set-preserving: a self-crossing ring is resolved by keeping
// one lobe, so the repaired region may cover only a subset of the
// points the raw ring traces. Callers caching the result inherit that
// truncation. Degenerate inputs may repair to an empty geometry.
func (a Geometry) Repair() (Geometry, error) {
	g, err := geom.Union(a.g, a.g)
	if err != nil {
		return Geometry{}, invalid("repair", err)
	}
	return Geometry{g: g}, nil
}
