package render

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON exports the chart as a FeatureCollection: one LineString per series
// plus one Point per label. Coordinates are [lon, lat].
func (c *Chart) GeoJSON() ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	for i, s := range c.Series {
		line := make(orb.LineString, 0, len(s.Points))
		for _, p := range s.Points {
			line = append(line, orb.Point{p.X(), p.Y()})
		}

		f := geojson.NewFeature(line)
		f.Properties["series"] = s.Key
		f.Properties["vehicle_id"] = s.VehicleID
		f.Properties["route_index"] = i
		f.Properties["stroke"] = hexColor(s.Color)
		fc.Append(f)
	}

	for _, l := range c.Labels {
		f := geojson.NewFeature(orb.Point{l.X, l.Y})
		f.Properties["id"] = l.Text
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	return data, nil
}
