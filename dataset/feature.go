// Package dataset provides the vector-feature source abstraction
// consumed by cached spatial computations: lazy loads by bounding box,
// plus intersects/nearest/within queries over the loaded features.
// Loads flow through a coverage cache, so repeated queries over
// overlapping areas only read the still-uncovered remainder from the
// source.
package dataset

import (
	"encoding/json"
	"fmt"

	"github.com/unkn0wn-root/geocache/geo"
)

// Feature is a geometry enriched with a property bag.
type Feature struct {
	Geom  geo.Geometry
	Props map[string]any
}

// Geometry satisfies geocache.Spatial.
func (f Feature) Geometry() geo.Geometry { return f.Geom }

// Prop returns a named property value.
func (f Feature) Prop(name string) (any, bool) {
	v, ok := f.Props[name]
	return v, ok
}

type featureJSON struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type featureCollectionJSON struct {
	Type     string        `json:"type"`
	Features []featureJSON `json:"features"`
}

// ParseGeoJSON decodes a GeoJSON FeatureCollection.
func ParseGeoJSON(data []byte) ([]Feature, error) {
	var fc featureCollectionJSON
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("dataset: parse geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("dataset: expected FeatureCollection as top type, got %q", fc.Type)
	}

	out := make([]Feature, 0, len(fc.Features))
	for i, fj := range fc.Features {
		if fj.Type != "Feature" {
			return nil, fmt.Errorf("dataset: expected Feature in features, got %q", fj.Type)
		}
		g, err := geo.FromGeoJSON(fj.Geometry)
		if err != nil {
			return nil, fmt.Errorf("dataset: feature %d: %w", i, err)
		}
		props := fj.Properties
		if props == nil {
			props = map[string]any{}
		}
		out = append(out, Feature{Geom: g, Props: props})
	}
	return out, nil
}
