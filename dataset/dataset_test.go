package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/geocache/geo"
)

func testFeatures() []Feature {
	return []Feature{
		{Geom: geo.PointXY(1, 1), Props: map[string]any{"name": "p1"}},
		{Geom: geo.PointXY(50, 50), Props: map[string]any{"name": "p2"}},
		{Geom: geo.Box(0, 0, 10, 10), Props: map[string]any{"name": "square"}},
		{Geom: geo.Box(100, 100, 110, 110), Props: map[string]any{"name": "far"}},
	}
}

func names(feats []Feature) []string {
	out := make([]string, 0, len(feats))
	for _, f := range feats {
		n, _ := f.Prop("name")
		out = append(out, n.(string))
	}
	return out
}

// countingSource wraps a Source and counts reads, to observe the
// coverage cache absorbing repeated loads.
type countingSource struct {
	inner      Source
	boundReads int64
}

func (s *countingSource) ReadAll(ctx context.Context) ([]Feature, error) {
	return s.inner.ReadAll(ctx)
}

func (s *countingSource) ReadBounds(ctx context.Context, b geo.Rect) ([]Feature, error) {
	atomic.AddInt64(&s.boundReads, 1)
	return s.inner.ReadBounds(ctx, b)
}

func TestMemorySourceReadBounds(t *testing.T) {
	src := NewMemorySource(testFeatures())

	feats, err := src.ReadBounds(context.Background(), geo.Rect{MinX: 0, MinY: 0, MaxX: 20, MaxY: 20})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "square"}, names(feats))

	feats, err = src.ReadBounds(context.Background(), geo.Rect{MinX: 500, MinY: 500, MaxX: 600, MaxY: 600})
	require.NoError(t, err)
	assert.Empty(t, feats)
}

func TestDatasetIntersects(t *testing.T) {
	ctx := context.Background()
	d, err := New(NewMemorySource(testFeatures()), Options{})
	require.NoError(t, err)

	feats, err := d.Intersects(ctx, geo.Box(0, 0, 20, 20))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "square"}, names(feats))

	// Point probes work despite their zero-extent bounding box.
	feats, err = d.Intersects(ctx, geo.PointXY(5, 5))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"square"}, names(feats))

	feats, err = d.Intersects(ctx, geo.PointXY(-500, -500))
	require.NoError(t, err)
	assert.Empty(t, feats)
}

func TestDatasetWithin(t *testing.T) {
	ctx := context.Background()
	d, err := New(NewMemorySource(testFeatures()), Options{})
	require.NoError(t, err)

	// p2 at (50,50) is ~56.6 away from (10,10); square touches it.
	feats, err := d.Within(ctx, 60, geo.PointXY(10, 10))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2", "square"}, names(feats))

	feats, err = d.Within(ctx, 5, geo.PointXY(14, 10))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"square"}, names(feats))
}

func TestDatasetNearest(t *testing.T) {
	ctx := context.Background()
	d, err := New(NewMemorySource(testFeatures()), Options{})
	require.NoError(t, err)

	f, ok, err := d.Nearest(ctx, geo.PointXY(48, 52))
	require.NoError(t, err)
	require.True(t, ok)
	n, _ := f.Prop("name")
	assert.Equal(t, "p2", n)

	// Empty dataset has no nearest feature.
	empty, err := New(NewMemorySource(nil), Options{})
	require.NoError(t, err)
	_, ok, err = empty.Nearest(ctx, geo.PointXY(0, 0))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDatasetCoverageCaching(t *testing.T) {
	ctx := context.Background()
	src := &countingSource{inner: NewMemorySource(testFeatures())}
	d, err := New(src, Options{})
	require.NoError(t, err)

	_, err = d.InsideBounds(ctx, geo.Rect{MinX: 0, MinY: 0, MaxX: 20, MaxY: 20})
	require.NoError(t, err)
	first := atomic.LoadInt64(&src.boundReads)
	assert.Equal(t, int64(1), first)

	// Covered query: answered from the coverage cache.
	_, err = d.InsideBounds(ctx, geo.Rect{MinX: 2, MinY: 2, MaxX: 18, MaxY: 18})
	require.NoError(t, err)
	assert.Equal(t, first, atomic.LoadInt64(&src.boundReads))

	// Uncovered query reads again.
	_, err = d.InsideBounds(ctx, geo.Rect{MinX: 200, MinY: 200, MaxX: 220, MaxY: 220})
	require.NoError(t, err)
	assert.Equal(t, first+1, atomic.LoadInt64(&src.boundReads))
}

const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [1, 1]},
      "properties": {"name": "p1"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]},
      "properties": {"name": "square"}
    }
  ]
}`

func TestParseGeoJSON(t *testing.T) {
	feats, err := ParseGeoJSON([]byte(testGeoJSON))
	require.NoError(t, err)
	require.Len(t, feats, 2)
	assert.ElementsMatch(t, []string{"p1", "square"}, names(feats))
	assert.InDelta(t, 100.0, feats[1].Geom.Area(), 1e-9)

	_, err = ParseGeoJSON([]byte(`{"type": "Feature"}`))
	assert.Error(t, err)

	_, err = ParseGeoJSON([]byte(`{"type": "FeatureCollection", "features": [{"type": "Nope"}]}`))
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "features.geojson")
	require.NoError(t, os.WriteFile(path, []byte(testGeoJSON), 0o644))

	src := NewFileSource(path)
	feats, err := src.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, feats, 2)

	feats, err = src.ReadBounds(ctx, geo.Rect{MinX: 0.5, MinY: 0.5, MaxX: 2, MaxY: 2})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "square"}, names(feats))

	d, err := New(src, Options{})
	require.NoError(t, err)
	got, err := d.Intersects(ctx, geo.PointXY(5, 5))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"square"}, names(got))
}

func TestFileSourceMissing(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "absent.geojson"))
	_, err := src.ReadAll(context.Background())
	assert.Error(t, err)
}
