package domain

// A single visited location within one vehicle's route, in visitation order.
type RouteStop struct {
	Point         GeoPoint
	SequenceIndex int
}

// Represents the route driven by one vehicle.
// Stops holds service visits only; Start and End bracket them (usually the depot).
type VehicleRoute struct {
	VehicleID string
	Start     GeoPoint
	Stops     []RouteStop
	End       GeoPoint
}

// Path returns the full spatial path the vehicle traverses: start, stops, end.
func (r VehicleRoute) Path() []GeoPoint {
	path := make([]GeoPoint, 0, len(r.Stops)+2)
	path = append(path, r.Start)
	for _, s := range r.Stops {
		path = append(path, s.Point)
	}
	path = append(path, r.End)
	return path
}

// RoutingSolution is the solver's output. It is read-only for consumers.
type RoutingSolution struct {
	Routes     []VehicleRoute
	Unassigned []string
	Cost       float64
}
