package domain

import "math"

// Immutable identified location. Lat/Lon are degrees in geographic mode and
// plain y/x values in planar mode.
type GeoPoint struct {
	ID  string
	Lat float64
	Lon float64
}

func NewGeoPoint(id string, lat, lon float64) GeoPoint {
	return GeoPoint{ID: id, Lat: lat, Lon: lon}
}

// PlanarPoint builds a point for non-georeferenced demos: x maps to Lon, y to Lat.
func PlanarPoint(id string, x, y float64) GeoPoint {
	return GeoPoint{ID: id, Lat: y, Lon: x}
}

// X and Y return the point's position on a plotting surface.
func (p GeoPoint) X() float64 { return p.Lon }
func (p GeoPoint) Y() float64 { return p.Lat }

// Finite reports whether both coordinates are neither NaN nor infinite.
func (p GeoPoint) Finite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0)
}

// InGeographicRange reports whether the point is a valid latitude/longitude pair.
func (p GeoPoint) InGeographicRange() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Return coordinates as [lon, lat] for GeoJSON and external API compatibility.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Lon, p.Lat} }
