package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/platform/obs"
)

// HTTPSolver delegates solving to a remote routing engine over JSON/HTTP.
//
// The engine receives locations, vehicles, jobs and the full cost matrix and
// answers with, per vehicle, the ordered location ids it visits. Requests are
// rate limited and transient failures are retried.
//
// The solver is safe for concurrent use.
type HTTPSolver struct {
	session     *http.Client
	apiKey      string
	endpoint    string
	limiter     *rate.Limiter
	maxAttempts int
	backoff     time.Duration
}

type HTTPSolverOption func(*HTTPSolver)

func WithHTTPClient(c *http.Client) HTTPSolverOption {
	return func(s *HTTPSolver) { s.session = c }
}

func WithAPIKey(key string) HTTPSolverOption {
	return func(s *HTTPSolver) { s.apiKey = key }
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(perSecond float64, burst int) HTTPSolverOption {
	return func(s *HTTPSolver) { s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

func WithRetry(maxAttempts int, backoff time.Duration) HTTPSolverOption {
	return func(s *HTTPSolver) {
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
		s.backoff = backoff
	}
}

func NewHTTPSolver(endpoint string, opts ...HTTPSolverOption) (*HTTPSolver, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("http solver: endpoint is empty")
	}

	s := &HTTPSolver{
		session:     &http.Client{Timeout: 30 * time.Second},
		endpoint:    endpoint,
		limiter:     rate.NewLimiter(rate.Limit(5), 1),
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type solveLocation struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type solveVehicle struct {
	ID       string `json:"id"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Capacity int    `json:"capacity"`
}

type solveJob struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	Demand   int    `json:"demand"`
}

type solveMatrix struct {
	IDs   []string  `json:"ids"`
	Costs []float64 `json:"costs"`
}

type solveRequest struct {
	Locations []solveLocation `json:"locations"`
	Vehicles  []solveVehicle  `json:"vehicles"`
	Jobs      []solveJob      `json:"jobs"`
	Matrix    solveMatrix     `json:"matrix"`
}

type solveRoute struct {
	VehicleID string   `json:"vehicle_id"`
	Stops     []string `json:"stops"`
}

type solveResponse struct {
	Routes     []solveRoute `json:"routes"`
	Unassigned []string     `json:"unassigned"`
	Cost       float64      `json:"cost"`
}

func (s *HTTPSolver) Solve(ctx context.Context, problem domain.Problem) (_ domain.RoutingSolution, err error) {
	defer obs.Time(ctx, "solver.http.Solve")(&err)

	if err := problem.Validate(); err != nil {
		return domain.RoutingSolution{}, fmt.Errorf("http solve: %w", err)
	}

	body, err := json.Marshal(toSolveRequest(problem))
	if err != nil {
		return domain.RoutingSolution{}, fmt.Errorf("http solve: encode request: %w", err)
	}

	resp, err := s.doWithRetry(ctx, func() (*http.Request, error) {
		return s.newRequest(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	})
	if err != nil {
		return domain.RoutingSolution{}, fmt.Errorf("http solve: %w", err)
	}
	defer resp.Body.Close()

	var out solveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.RoutingSolution{}, fmt.Errorf("http solve: decode response: %w", err)
	}

	solution, err := fromSolveResponse(problem, out)
	if err != nil {
		return domain.RoutingSolution{}, fmt.Errorf("http solve: %w", err)
	}
	return solution, nil
}

func toSolveRequest(p domain.Problem) solveRequest {
	req := solveRequest{
		Locations: make([]solveLocation, 0, len(p.Locations)),
		Vehicles:  make([]solveVehicle, 0, len(p.Vehicles)),
		Jobs:      make([]solveJob, 0, len(p.Jobs)),
		Matrix:    solveMatrix{IDs: p.Costs.IDs(), Costs: p.Costs.Costs()},
	}
	for _, l := range p.Locations {
		req.Locations = append(req.Locations, solveLocation{ID: l.ID, Lat: l.Lat, Lon: l.Lon})
	}
	for _, v := range p.Vehicles {
		req.Vehicles = append(req.Vehicles, solveVehicle{ID: v.ID, Start: v.StartLocationID, End: v.EndID(), Capacity: v.Capacity})
	}
	for _, j := range p.Jobs {
		req.Jobs = append(req.Jobs, solveJob{ID: j.ID, Location: j.LocationID, Demand: j.Demand})
	}
	return req
}

// fromSolveResponse resolves the engine's location ids back to points.
// Start and end come from the vehicle definition, not the response.
func fromSolveResponse(p domain.Problem, resp solveResponse) (domain.RoutingSolution, error) {
	vehicles := make(map[string]domain.Vehicle, len(p.Vehicles))
	for _, v := range p.Vehicles {
		vehicles[v.ID] = v
	}

	solution := domain.RoutingSolution{
		Routes:     make([]domain.VehicleRoute, 0, len(resp.Routes)),
		Unassigned: resp.Unassigned,
		Cost:       resp.Cost,
	}

	for i, r := range resp.Routes {
		v, ok := vehicles[r.VehicleID]
		if !ok {
			return domain.RoutingSolution{}, &domain.UnknownSeriesError{RouteIndex: i, VehicleID: r.VehicleID, Reason: "engine returned an unknown vehicle"}
		}
		start, _ := p.Location(v.StartLocationID)
		end, _ := p.Location(v.EndID())

		route := domain.VehicleRoute{
			VehicleID: v.ID,
			Start:     start,
			End:       end,
			Stops:     make([]domain.RouteStop, 0, len(r.Stops)),
		}
		for seq, id := range r.Stops {
			pt, ok := p.Location(id)
			if !ok {
				return domain.RoutingSolution{}, &domain.UnknownLocationError{ID: id}
			}
			route.Stops = append(route.Stops, domain.RouteStop{Point: pt, SequenceIndex: seq})
		}
		solution.Routes = append(solution.Routes, route)
	}

	return solution, nil
}
