// Package problemfile reads routing problems from YAML (or JSON) files.
//
//	mode: planar
//	depot: {id: depot, x: 0, y: 0}
//	locations:
//	  - {id: location1, x: 10, y: 5}
//	vehicles:
//	  - {id: v1, capacity: 10}
//	jobs:
//	  - {id: j1, location: location1, demand: 5}
//
// Geographic files use lat/lon instead of x/y. When jobs are omitted every
// non-depot location gets one job with default_demand.
package problemfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/geo"
)

type location struct {
	ID  string   `yaml:"id"`
	Lat *float64 `yaml:"lat"`
	Lon *float64 `yaml:"lon"`
	X   *float64 `yaml:"x"`
	Y   *float64 `yaml:"y"`
}

type vehicle struct {
	ID       string `yaml:"id"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Capacity int    `yaml:"capacity"`
}

type job struct {
	ID       string `yaml:"id"`
	Location string `yaml:"location"`
	Demand   int    `yaml:"demand"`
}

type document struct {
	Name          string     `yaml:"name"`
	Mode          string     `yaml:"mode"`
	Depot         location   `yaml:"depot"`
	Locations     []location `yaml:"locations"`
	Vehicles      []vehicle  `yaml:"vehicles"`
	Jobs          []job      `yaml:"jobs"`
	DefaultDemand int        `yaml:"default_demand"`
}

// File is a decoded problem. Problem.Costs is left nil for the caller to build.
type File struct {
	Name    string
	Mode    geo.Mode
	Problem domain.Problem
}

func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("load problem file: read %q: %w", path, err)
	}
	f, err := Decode(bytes.NewReader(b))
	if err != nil {
		return File{}, fmt.Errorf("load problem file %q: %w", path, err)
	}
	return f, nil
}

// Decode parses a problem document. Unknown fields are rejected.
func Decode(r io.Reader) (File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, errors.New("decode problem: document is empty")
		}
		return File{}, fmt.Errorf("decode problem: %w", err)
	}

	mode, ok := geo.ParseMode(doc.Mode)
	if !ok {
		return File{}, fmt.Errorf("decode problem: unknown mode %q", doc.Mode)
	}

	depot, err := doc.Depot.point(mode)
	if err != nil {
		return File{}, fmt.Errorf("decode problem: depot: %w", err)
	}

	out := File{Name: doc.Name, Mode: mode}
	p := &out.Problem
	p.Locations = append(p.Locations, depot)
	for i, l := range doc.Locations {
		pt, err := l.point(mode)
		if err != nil {
			return File{}, fmt.Errorf("decode problem: location #%d: %w", i+1, err)
		}
		p.Locations = append(p.Locations, pt)
	}

	for _, v := range doc.Vehicles {
		start := v.Start
		if start == "" {
			start = depot.ID
		}
		p.Vehicles = append(p.Vehicles, domain.Vehicle{
			ID:              v.ID,
			StartLocationID: start,
			EndLocationID:   v.End,
			Capacity:        v.Capacity,
		})
	}

	if len(doc.Jobs) == 0 {
		demand := doc.DefaultDemand
		if demand <= 0 {
			demand = 1
		}
		for _, l := range p.Locations[1:] {
			p.Jobs = append(p.Jobs, domain.Job{ID: "job-" + l.ID, LocationID: l.ID, Demand: demand})
		}
	}
	for _, j := range doc.Jobs {
		p.Jobs = append(p.Jobs, domain.Job{ID: j.ID, LocationID: j.Location, Demand: j.Demand})
	}

	return out, nil
}

func (l location) point(mode geo.Mode) (domain.GeoPoint, error) {
	if l.ID == "" {
		return domain.GeoPoint{}, errors.New("id is required")
	}

	hasGeo := l.Lat != nil && l.Lon != nil
	hasXY := l.X != nil && l.Y != nil

	switch {
	case hasXY && !hasGeo:
		if mode == geo.Geographic {
			return domain.GeoPoint{}, fmt.Errorf("%q: geographic problems take lat/lon", l.ID)
		}
		return domain.PlanarPoint(l.ID, *l.X, *l.Y), nil
	case hasGeo && !hasXY:
		if mode == geo.Planar {
			return domain.GeoPoint{}, fmt.Errorf("%q: planar problems take x/y", l.ID)
		}
		return domain.NewGeoPoint(l.ID, *l.Lat, *l.Lon), nil
	default:
		return domain.GeoPoint{}, fmt.Errorf("%q: give either lat/lon or x/y", l.ID)
	}
}
