package dto

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrp-route-plotter/internal/domain"
)

func decodePoint(t *testing.T, raw string) Point {
	t.Helper()
	var p Point
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestPointToDomain(t *testing.T) {
	p, err := decodePoint(t, `{"id":"a","lat":0,"lon":0}`).ToDomain()
	require.NoError(t, err)
	assert.Equal(t, "a", p.ID)
	assert.Zero(t, p.Lat)
	assert.Zero(t, p.Lon)
}

func TestPointMissingCoordinate(t *testing.T) {
	for _, raw := range []string{`{"id":"a"}`, `{"id":"a","lat":1}`, `{"id":"a","lon":1}`} {
		_, err := decodePoint(t, raw).ToDomain()

		var coord *domain.InvalidCoordinateError
		require.True(t, errors.As(err, &coord), raw)
		assert.Equal(t, "a", coord.ID)
		assert.Equal(t, "coordinate is missing", coord.Reason)
	}

	_, err := decodePoint(t, `{"id":"a","lat":1}`).ToDomain()
	var coord *domain.InvalidCoordinateError
	require.ErrorAs(t, err, &coord)
	assert.Equal(t, 1.0, coord.Lat)
	assert.True(t, math.IsNaN(coord.Lon))
}

func TestToPointsStopsAtFirstMissing(t *testing.T) {
	var in []Point
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"d","lat":0,"lon":0},{"id":"b"}]`), &in))

	_, err := ToPoints(in)
	var coord *domain.InvalidCoordinateError
	require.ErrorAs(t, err, &coord)
	assert.Equal(t, "b", coord.ID)
	assert.Contains(t, err.Error(), "point #2")
}

func TestSolutionRoundTripKeepsZeroCoordinates(t *testing.T) {
	depot := domain.NewGeoPoint("depot", 0, 0)
	in := domain.RoutingSolution{Routes: []domain.VehicleRoute{{
		VehicleID: "v1",
		Start:     depot,
		End:       depot,
		Stops:     []domain.RouteStop{{Point: domain.NewGeoPoint("a", 5, 10)}},
	}}}

	raw, err := json.Marshal(FromSolution(in))
	require.NoError(t, err)

	var wire Solution
	require.NoError(t, json.Unmarshal(raw, &wire))
	out, err := wire.ToDomain()
	require.NoError(t, err)
	require.Len(t, out.Routes, 1)
	assert.Equal(t, depot.ID, out.Routes[0].Start.ID)
	assert.Equal(t, 10.0, out.Routes[0].Stops[0].Point.Lon)
}
