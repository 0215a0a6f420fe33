package geo

// Rect is an axis-aligned bounding box in the same coordinate
// reference as the geometries it was derived from.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Min returns the lower-left corner as an R-tree coordinate pair.
func (r Rect) Min() [2]float64 { return [2]float64{r.MinX, r.MinY} }

// Max returns the upper-right corner as an R-tree coordinate pair.
func (r Rect) Max() [2]float64 { return [2]float64{r.MaxX, r.MaxY} }

// Pad grows the box by d on every side.
func (r Rect) Pad(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Intersects reports whether r and o overlap, boundaries included.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX &&
		r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// AsGeometry returns the box as a rectangle polygon.
func (r Rect) AsGeometry() Geometry {
	return Box(r.MinX, r.MinY, r.MaxX, r.MaxY)
}
