package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Mode tells builders and validators how to interpret coordinates.
type Mode int

const (
	// Geographic treats coordinates as latitude/longitude degrees.
	Geographic Mode = iota
	// Planar treats coordinates as plain x/y values.
	Planar
)

func (m Mode) String() string {
	switch m {
	case Geographic:
		return "geographic"
	case Planar:
		return "planar"
	default:
		return "unknown"
	}
}

// ParseMode accepts "geographic"/"geo" and "planar"; empty means Geographic.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "geographic", "geo":
		return Geographic, true
	case "planar":
		return Planar, true
	default:
		return Geographic, false
	}
}

// DistanceFunc returns the travel cost between two coordinates.
// Arguments are (lat1, lon1, lat2, lon2).
type DistanceFunc func(lat1, lon1, lat2, lon2 float64) float64

// Haversine returns the great-circle distance in kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push a just past 1 for near-antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Euclidean returns the straight-line distance for planar coordinates.
func Euclidean(y1, x1, y2, x2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DefaultDistance returns the distance function matching a mode.
func DefaultDistance(m Mode) DistanceFunc {
	if m == Planar {
		return Euclidean
	}
	return Haversine
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
