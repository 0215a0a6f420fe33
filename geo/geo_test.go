package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromWKT(t *testing.T) {
	g, err := FromWKT("POLYGON((0 0,10 0,10 10,0 10,0 0))")
	require.NoError(t, err)
	assert.False(t, g.IsEmpty())
	assert.InDelta(t, 100.0, g.Area(), 1e-9)

	_, err = FromWKT("POLYGONE((yes))")
	assert.Error(t, err)
}

func TestBoxAndBounds(t *testing.T) {
	g := Box(-2, -3, 4, 5)
	assert.InDelta(t, 48.0, g.Area(), 1e-9)

	b, ok := g.Bounds()
	require.True(t, ok)
	assert.Equal(t, Rect{MinX: -2, MinY: -3, MaxX: 4, MaxY: 5}, b)

	_, ok = MustWKT("POLYGON EMPTY").Bounds()
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	a := Box(0, 0, 10, 10)

	ok, err := a.Contains(PointXY(5, 5))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Contains(Box(2, 2, 8, 8))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Contains(Box(8, 8, 12, 12))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = a.Contains(PointXY(20, 20))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIntersectsAndSetOps(t *testing.T) {
	a := Box(0, 0, 10, 10)
	b := Box(5, 5, 15, 15)
	c := Box(20, 20, 30, 30)

	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))

	inter, err := a.Intersection(b)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, inter.Area(), 1e-9)

	diff, err := b.Difference(a)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, diff.Area(), 1e-9)

	uni, err := a.Union(b)
	require.NoError(t, err)
	assert.InDelta(t, 175.0, uni.Area(), 1e-9)
}

func TestCovers(t *testing.T) {
	a := Box(0, 0, 10, 10)

	// Covers admits shared boundaries, unlike Contains' interior rule.
	ok, err := a.Covers(Box(0, 0, 10, 10))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Covers(Box(5, 5, 15, 15))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDistance(t *testing.T) {
	a := Box(0, 0, 10, 10)

	d, ok := a.Distance(Box(20, 0, 30, 10))
	require.True(t, ok)
	assert.InDelta(t, 10.0, d, 1e-9)

	d, ok = a.Distance(PointXY(5, 5))
	require.True(t, ok)
	assert.Zero(t, d)

	_, ok = a.Distance(MustWKT("POLYGON EMPTY"))
	assert.False(t, ok)
}

func TestGeoJSONRoundtrip(t *testing.T) {
	g := Box(0, 0, 10, 10)

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var back Geometry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.InDelta(t, g.Area(), back.Area(), 1e-9)

	gb, _ := g.Bounds()
	bb, ok := back.Bounds()
	require.True(t, ok)
	assert.Equal(t, gb, bb)
}

func TestRepairKeepsValidGeometry(t *testing.T) {
	g := Box(0, 0, 10, 10)
	require.NoError(t, g.Validate())

	repaired, err := g.Repair()
	require.NoError(t, err)
	assert.NoError(t, repaired.Validate())
	assert.InDelta(t, g.Area(), repaired.Area(), 1e-9)
}

func TestRepairSelfIntersection(t *testing.T) {
	// Bowtie: the ring crosses itself at (5,5), splitting into two
	// 25-area lobes.
	bow := MustWKT("POLYGON((0 0,10 10,10 0,0 10,0 0))")
	require.Error(t, bow.Validate())

	rep, err := bow.Repair()
	require.NoError(t, err)
	assert.NoError(t, rep.Validate())

	// Repair is not point-set-preserving: one lobe survives, the other
	// is dropped.
	assert.InDelta(t, 25.0, rep.Area(), 1e-9)
	left, err := rep.Contains(PointXY(2, 5))
	require.NoError(t, err)
	right, err := rep.Contains(PointXY(8, 5))
	require.NoError(t, err)
	assert.True(t, left != right, "exactly one lobe should survive repair")
}

func TestRect(t *testing.T) {
	r := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}

	assert.Equal(t, [2]float64{0, 0}, r.Min())
	assert.Equal(t, [2]float64{10, 10}, r.Max())
	assert.Equal(t, Rect{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11}, r.Pad(1))

	assert.True(t, r.Intersects(Rect{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15}))
	assert.True(t, r.Intersects(Rect{MinX: 10, MinY: 10, MaxX: 20, MaxY: 20})) // touching counts
	assert.False(t, r.Intersects(Rect{MinX: 11, MinY: 11, MaxX: 20, MaxY: 20}))

	assert.InDelta(t, 100.0, r.AsGeometry().Area(), 1e-9)
}
