// Package synth generates reproducible demo problems: service points spread
// around a few city centers, served from a single depot.
package synth

import (
	"fmt"
	"math/rand"

	"vrp-route-plotter/internal/domain"
)

// Cluster is a center and how many points to scatter around it.
type Cluster struct {
	Name  string
	Lat   float64
	Lon   float64
	Count int
}

var (
	NewYork    = Cluster{Name: "new-york", Lat: 40.7128, Lon: -74.0060, Count: 34}
	LosAngeles = Cluster{Name: "los-angeles", Lat: 34.0522, Lon: -118.2437, Count: 33}
	Chicago    = Cluster{Name: "chicago", Lat: 41.8781, Lon: -87.6298, Count: 33}

	DefaultClusters = []Cluster{NewYork, LosAngeles, Chicago}
)

// Options tunes a generated problem. Zero values fall back to defaults.
type Options struct {
	Clusters []Cluster
	// Spread is the full width, in degrees, of the square around each center.
	Spread   float64
	Vehicles int
	Capacity int
	Demand   int
	Depot    *domain.GeoPoint
}

func (o Options) withDefaults() Options {
	if len(o.Clusters) == 0 {
		o.Clusters = DefaultClusters
	}
	if o.Spread <= 0 {
		o.Spread = 0.1
	}
	if o.Vehicles <= 0 {
		o.Vehicles = 5
	}
	if o.Capacity <= 0 {
		o.Capacity = 50
	}
	if o.Demand <= 0 {
		o.Demand = 2
	}
	if o.Depot == nil {
		d := domain.NewGeoPoint("depot", NewYork.Lat, NewYork.Lon)
		o.Depot = &d
	}
	return o
}

// Points scatters ids loc1..locN around the clusters, in cluster order.
// The same rng state always yields the same points.
func Points(rng *rand.Rand, clusters []Cluster, spread float64) []domain.GeoPoint {
	total := 0
	for _, c := range clusters {
		total += c.Count
	}

	out := make([]domain.GeoPoint, 0, total)
	for _, c := range clusters {
		for i := 0; i < c.Count; i++ {
			lat := c.Lat + (rng.Float64()-0.5)*spread
			lon := c.Lon + (rng.Float64()-0.5)*spread
			out = append(out, domain.NewGeoPoint(fmt.Sprintf("loc%d", len(out)+1), lat, lon))
		}
	}
	return out
}

// Problem builds a geographic problem from seed: the depot first, then the
// generated points, one job per point and a homogeneous fleet at the depot.
// The returned problem has no cost matrix yet.
func Problem(seed int64, opts Options) domain.Problem {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(seed))

	points := Points(rng, opts.Clusters, opts.Spread)

	p := domain.Problem{
		Locations: make([]domain.GeoPoint, 0, len(points)+1),
		Vehicles:  make([]domain.Vehicle, 0, opts.Vehicles),
		Jobs:      make([]domain.Job, 0, len(points)),
	}
	p.Locations = append(p.Locations, *opts.Depot)
	p.Locations = append(p.Locations, points...)

	for i := 0; i < opts.Vehicles; i++ {
		p.Vehicles = append(p.Vehicles, domain.Vehicle{
			ID:              fmt.Sprintf("v%d", i+1),
			StartLocationID: opts.Depot.ID,
			Capacity:        opts.Capacity,
		})
	}
	for _, pt := range points {
		p.Jobs = append(p.Jobs, domain.Job{ID: "job-" + pt.ID, LocationID: pt.ID, Demand: opts.Demand})
	}
	return p
}
