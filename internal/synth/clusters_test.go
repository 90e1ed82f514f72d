package synth

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsStayNearCenters(t *testing.T) {
	pts := Points(rand.New(rand.NewSource(42)), DefaultClusters, 0.1)
	require.Len(t, pts, 100)
	assert.Equal(t, "loc1", pts[0].ID)
	assert.Equal(t, "loc100", pts[99].ID)

	offset := 0
	for _, c := range DefaultClusters {
		for _, p := range pts[offset : offset+c.Count] {
			assert.LessOrEqual(t, math.Abs(p.Lat-c.Lat), 0.05, p.ID)
			assert.LessOrEqual(t, math.Abs(p.Lon-c.Lon), 0.05, p.ID)
		}
		offset += c.Count
	}
}

func TestProblemIsDeterministic(t *testing.T) {
	a := Problem(42, Options{})
	b := Problem(42, Options{})
	c := Problem(43, Options{})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Locations[1], c.Locations[1])

	require.Len(t, a.Locations, 101)
	assert.Equal(t, "depot", a.Locations[0].ID)
	require.Len(t, a.Vehicles, 5)
	assert.Equal(t, 50, a.Vehicles[0].Capacity)
	require.Len(t, a.Jobs, 100)
	assert.Equal(t, 2, a.Jobs[0].Demand)
	assert.Nil(t, a.Costs)
}

func TestProblemOptions(t *testing.T) {
	p := Problem(1, Options{
		Clusters: []Cluster{{Name: "x", Lat: 10, Lon: 10, Count: 3}},
		Vehicles: 2,
		Capacity: 4,
		Demand:   1,
	})
	assert.Len(t, p.Locations, 4)
	assert.Len(t, p.Vehicles, 2)
	assert.Equal(t, "v2", p.Vehicles[1].ID)
	assert.Equal(t, "depot", p.Vehicles[1].StartLocationID)
}
