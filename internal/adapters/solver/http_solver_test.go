package solver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrp-route-plotter/internal/domain"
)

func newTestSolver(t *testing.T, url string) *HTTPSolver {
	t.Helper()
	s, err := NewHTTPSolver(url,
		WithAPIKey("secret"),
		WithRateLimit(1000, 10),
		WithRetry(3, time.Millisecond),
	)
	require.NoError(t, err)
	return s
}

func TestHTTPSolverRoundTrip(t *testing.T) {
	p := hubProblem(t, []domain.Vehicle{{ID: "v1", StartLocationID: "HUB"}}, threeJobs)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))

		var req solveRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Locations, 4)
		assert.Len(t, req.Matrix.Costs, 16)
		assert.Equal(t, "HUB", req.Vehicles[0].End)

		_ = json.NewEncoder(w).Encode(solveResponse{
			Routes:     []solveRoute{{VehicleID: "v1", Stops: []string{"B", "A"}}},
			Unassigned: []string{"j3"},
			Cost:       42,
		})
	}))
	defer srv.Close()

	sol, err := newTestSolver(t, srv.URL).Solve(context.Background(), p)
	require.NoError(t, err)

	require.Len(t, sol.Routes, 1)
	assert.Equal(t, []string{"B", "A"}, stopIDs(sol.Routes[0]))
	assert.Equal(t, "HUB", sol.Routes[0].Start.ID)
	assert.Equal(t, "HUB", sol.Routes[0].End.ID)
	assert.Equal(t, []string{"j3"}, sol.Unassigned)
	assert.Equal(t, 42.0, sol.Cost)
}

func TestHTTPSolverRetriesTransientErrors(t *testing.T) {
	p := hubProblem(t, []domain.Vehicle{{ID: "v1", StartLocationID: "HUB"}}, nil)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(solveResponse{Routes: []solveRoute{{VehicleID: "v1"}}})
	}))
	defer srv.Close()

	sol, err := newTestSolver(t, srv.URL).Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, sol.Routes, 1)
}

func TestHTTPSolverDoesNotRetryClientErrors(t *testing.T) {
	p := hubProblem(t, []domain.Vehicle{{ID: "v1", StartLocationID: "HUB"}}, nil)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad problem", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestSolver(t, srv.URL).Solve(context.Background(), p)
	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "bad problem", he.Body)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPSolverUnknownIDs(t *testing.T) {
	p := hubProblem(t, []domain.Vehicle{{ID: "v1", StartLocationID: "HUB"}}, nil)

	respond := func(resp solveResponse) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(resp)
		}))
	}

	srv := respond(solveResponse{Routes: []solveRoute{{VehicleID: "ghost"}}})
	_, err := newTestSolver(t, srv.URL).Solve(context.Background(), p)
	srv.Close()
	var series *domain.UnknownSeriesError
	assert.True(t, errors.As(err, &series))

	srv = respond(solveResponse{Routes: []solveRoute{{VehicleID: "v1", Stops: []string{"Z"}}}})
	_, err = newTestSolver(t, srv.URL).Solve(context.Background(), p)
	srv.Close()
	var loc *domain.UnknownLocationError
	assert.True(t, errors.As(err, &loc))
}

func TestNewHTTPSolverRequiresEndpoint(t *testing.T) {
	_, err := NewHTTPSolver("  ")
	assert.Error(t, err)
}

func TestMockSolverRecordsCalls(t *testing.T) {
	want := domain.RoutingSolution{Cost: 1}
	m := NewMockSolver(want)

	got, err := m.Solve(context.Background(), domain.Problem{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, m.Calls(), 1)

	m.Err = errors.New("boom")
	_, err = m.Solve(context.Background(), domain.Problem{})
	assert.EqualError(t, err, "boom")
}
