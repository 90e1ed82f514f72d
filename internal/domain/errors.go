package domain

import "fmt"

// EmptyInputError is returned when a component needs at least one point and got none.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: empty input: at least one point (the depot) is required", e.Op)
}

// DuplicateIdentifierError reports two input points sharing an id.
type DuplicateIdentifierError struct {
	ID          string
	FirstIndex  int
	SecondIndex int
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate identifier %q at positions %d and %d", e.ID, e.FirstIndex, e.SecondIndex)
}

// InvalidCoordinateError reports a non-finite or out-of-range coordinate.
type InvalidCoordinateError struct {
	ID     string
	Lat    float64
	Lon    float64
	Reason string
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate for %q (lat=%v lon=%v): %s", e.ID, e.Lat, e.Lon, e.Reason)
}

// UnknownSeriesError reports a route that cannot be turned into a chart series.
type UnknownSeriesError struct {
	RouteIndex int
	VehicleID  string
	Reason     string
}

func (e *UnknownSeriesError) Error() string {
	return fmt.Sprintf("route #%d (vehicle %q): %s", e.RouteIndex, e.VehicleID, e.Reason)
}

// UnknownLocationError reports a lookup for an id the cost matrix does not cover.
type UnknownLocationError struct {
	ID string
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("unknown location %q", e.ID)
}

// CheckPoint validates a single point. Range checks only apply in geographic mode.
func CheckPoint(p GeoPoint, geographic bool) error {
	if !p.Finite() {
		return &InvalidCoordinateError{ID: p.ID, Lat: p.Lat, Lon: p.Lon, Reason: "coordinate is not finite"}
	}
	if geographic && !p.InGeographicRange() {
		return &InvalidCoordinateError{ID: p.ID, Lat: p.Lat, Lon: p.Lon, Reason: "latitude/longitude out of range"}
	}
	return nil
}
