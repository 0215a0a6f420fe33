package dataset

import (
	"context"

	"github.com/unkn0wn-root/geocache"
	"github.com/unkn0wn-root/geocache/geo"
)

// pointPad widens the bounding box of zero-extent probe geometries so
// the box search has something to intersect.
const pointPad = 1e-3

// nearestProbes are the widening search distances tried before falling
// back to a full scan.
var nearestProbes = []float64{1e3, 1e4, 1e5, 1e6, 1e7, 1e8}

// Options tune a Dataset.
type Options struct {
	CacheSize int             // cached load regions; 0 => geocache.DefaultUnionSize
	Logger    geocache.Logger // if nil, NopLogger is used
}

// Dataset is a queryable collection of vector features over a Source.
// Bounding-box loads go through a coverage cache, so repeated queries
// over overlapping areas reread only the uncovered remainder.
type Dataset struct {
	src  Source
	load *geocache.UnionCache[Feature]
}

// New builds a Dataset over src.
func New(src Source, opts Options) (*Dataset, error) {
	d := &Dataset{src: src}
	load, err := geocache.NewUnion[Feature](func(ctx context.Context, region geo.Geometry) ([]Feature, error) {
		b, ok := region.Bounds()
		if !ok {
			return src.ReadAll(ctx)
		}
		return src.ReadBounds(ctx, b)
	}, geocache.UnionOptions{MaxSize: opts.CacheSize, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}
	d.load = load
	return d, nil
}

// All returns every feature in the dataset.
func (d *Dataset) All(ctx context.Context) ([]Feature, error) {
	return d.src.ReadAll(ctx)
}

// InsideBounds returns the features whose bounding boxes fall inside b,
// served through the coverage cache.
func (d *Dataset) InsideBounds(ctx context.Context, b geo.Rect) ([]Feature, error) {
	return d.load.Do(ctx, b.AsGeometry())
}

// Intersects returns the features intersecting region.
func (d *Dataset) Intersects(ctx context.Context, region geo.Geometry) ([]Feature, error) {
	b, ok := region.Bounds()
	if !ok {
		return nil, nil
	}
	if region.Area() == 0 {
		b = b.Pad(pointPad)
	}

	candidates, err := d.InsideBounds(ctx, b)
	if err != nil {
		return nil, err
	}
	var out []Feature
	for _, f := range candidates {
		if f.Geom.Intersects(region) {
			out = append(out, f)
		}
	}
	return out, nil
}

// Within returns the features no farther than radius from region.
func (d *Dataset) Within(ctx context.Context, radius float64, region geo.Geometry) ([]Feature, error) {
	b, ok := region.Bounds()
	if !ok {
		return nil, nil
	}

	candidates, err := d.InsideBounds(ctx, b.Pad(radius))
	if err != nil {
		return nil, err
	}
	var out []Feature
	for _, f := range candidates {
		if dist, ok := f.Geom.Distance(region); ok && dist <= radius {
			out = append(out, f)
		}
	}
	return out, nil
}

// Nearest returns the feature closest to region, widening the search
// box progressively before falling back to a full scan. ok is false
// for an empty dataset.
func (d *Dataset) Nearest(ctx context.Context, region geo.Geometry) (Feature, bool, error) {
	b, bok := region.Bounds()
	if !bok {
		return Feature{}, false, nil
	}

	for _, probe := range nearestProbes {
		candidates, err := d.InsideBounds(ctx, b.Pad(probe))
		if err != nil {
			return Feature{}, false, err
		}
		if best, ok := closest(candidates, region); ok {
			return best, true, nil
		}
	}

	// whole dataset as the last resort
	all, err := d.All(ctx)
	if err != nil {
		return Feature{}, false, err
	}
	if best, ok := closest(all, region); ok {
		return best, true, nil
	}
	return Feature{}, false, nil
}

func closest(feats []Feature, to geo.Geometry) (Feature, bool) {
	var (
		best     Feature
		bestDist float64
		found    bool
	)
	for _, f := range feats {
		dist, ok := f.Geom.Distance(to)
		if !ok {
			continue
		}
		if !found || dist < bestDist {
			best, bestDist, found = f, dist, true
		}
	}
	return best, found
}
