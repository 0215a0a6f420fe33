package dataset

import (
	"context"
	"os"

	"github.com/tidwall/rtree"

	"github.com/unkn0wn-root/geocache/geo"
	"github.com/unkn0wn-root/geocache/memo"
)

// Source is a store of vector features, readable whole or by bounding
// box. Implementations must be safe for concurrent reads.
type Source interface {
	ReadAll(ctx context.Context) ([]Feature, error)
	ReadBounds(ctx context.Context, b geo.Rect) ([]Feature, error)
}

// MemorySource serves features from memory, indexed by bounding box.
type MemorySource struct {
	feats []Feature
	tr    rtree.RTreeG[int]
}

var _ Source = (*MemorySource)(nil)

// NewMemorySource indexes feats. The slice is not copied; do not
// mutate it afterwards.
func NewMemorySource(feats []Feature) *MemorySource {
	s := &MemorySource{feats: feats}
	for i, f := range feats {
		if b, ok := f.Geom.Bounds(); ok {
			s.tr.Insert(b.Min(), b.Max(), i)
		}
	}
	return s
}

func (s *MemorySource) ReadAll(_ context.Context) ([]Feature, error) {
	out := make([]Feature, len(s.feats))
	copy(out, s.feats)
	return out, nil
}

func (s *MemorySource) ReadBounds(_ context.Context, b geo.Rect) ([]Feature, error) {
	var out []Feature
	s.tr.Search(b.Min(), b.Max(), func(_, _ [2]float64, i int) bool {
		out = append(out, s.feats[i])
		return true
	})
	return out, nil
}

// fileParses memoizes whole-file parses across FileSources: repeated
// datasets over the same path decode it once.
var fileParses = memo.MustNew[string, []Feature](memo.Options{MaxSize: 8})

// FileSource reads a GeoJSON FeatureCollection file.
type FileSource struct {
	path string
}

var _ Source = (*FileSource)(nil)

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) ReadAll(_ context.Context) ([]Feature, error) {
	return fileParses.Do(s.path, func() ([]Feature, error) {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, err
		}
		return ParseGeoJSON(data)
	})
}

func (s *FileSource) ReadBounds(ctx context.Context, b geo.Rect) ([]Feature, error) {
	feats, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []Feature
	for _, f := range feats {
		if fb, ok := f.Geom.Bounds(); ok && fb.Intersects(b) {
			out = append(out, f)
		}
	}
	return out, nil
}
