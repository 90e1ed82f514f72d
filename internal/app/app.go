// Package app assembles adapters behind ports from config.Settings.
// It is the shared composition root of cmd/server and cmd/vrpplot.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	"gonum.org/v1/plot/vg"

	"vrp-route-plotter/internal/adapters/cache"
	"vrp-route-plotter/internal/adapters/export"
	"vrp-route-plotter/internal/adapters/repositories"
	"vrp-route-plotter/internal/adapters/solver"
	"vrp-route-plotter/internal/config"
	"vrp-route-plotter/internal/platform/db"
	"vrp-route-plotter/internal/ports"
	"vrp-route-plotter/internal/render"
	"vrp-route-plotter/internal/services"
)

// Closer releases whatever NewPlanner opened.
type Closer func()

// NewPlanner wires the solver and the optional cache, override store and
// exporter. Optional parts are skipped when their settings are empty.
func NewPlanner(ctx context.Context, s config.Settings) (*services.Planner, Closer, error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	sv, err := NewSolver(s.Solver)
	if err != nil {
		return nil, nil, err
	}
	planner := &services.Planner{Solver: sv}

	if s.RedisURL != "" {
		opt, err := redis.ParseURL(s.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("wire planner: parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opt)
		closers = append(closers, func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			// The cache is an optimization; run without it.
			log.Printf("matrix cache disabled: redis ping failed: %v", err)
		} else {
			planner.Cache = cache.NewRedisMatrixCache(client, s.MatrixCacheTTL)
		}
	}

	if s.DatabaseURL != "" {
		conn, err := db.Open(s.DatabaseURL)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("wire planner: %w", err)
		}
		closers = append(closers, func() { _ = conn.Close() })
		planner.Overrides = repositories.NewSQLCostOverrideRepository(conn)
	}

	exporter, err := NewExporter(ctx, s.Export)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	planner.Exporter = exporter

	return planner, closeAll, nil
}

func NewSolver(s config.SolverSettings) (ports.Solver, error) {
	switch s.Kind {
	case "", "nearest":
		return &solver.NearestNeighborSolver{TwoOptPasses: s.TwoOptPasses}, nil
	case "http":
		opts := []solver.HTTPSolverOption{solver.WithAPIKey(s.APIKey)}
		if s.RatePerSecond > 0 {
			burst := s.Burst
			if burst < 1 {
				burst = 1
			}
			opts = append(opts, solver.WithRateLimit(s.RatePerSecond, burst))
		}
		sv, err := solver.NewHTTPSolver(s.Endpoint, opts...)
		if err != nil {
			return nil, fmt.Errorf("wire solver: %w", err)
		}
		return sv, nil
	default:
		return nil, fmt.Errorf("wire solver: unknown kind %q", s.Kind)
	}
}

// NewExporter returns nil (no export) when the backend is empty.
func NewExporter(ctx context.Context, s config.ExportSettings) (ports.ChartExporter, error) {
	switch s.Backend {
	case "":
		return nil, nil
	case "file":
		return export.NewFileExporter(s.Dir), nil
	case "s3":
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("wire exporter: load aws config: %w", err)
		}
		client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			if s.Endpoint != "" {
				o.BaseEndpoint = aws.String(s.Endpoint)
				o.UsePathStyle = true
			}
		})
		e, err := export.NewS3Exporter(client, s.Bucket, s.Prefix)
		if err != nil {
			return nil, fmt.Errorf("wire exporter: %w", err)
		}
		return e, nil
	case "minio":
		client, err := export.NewMinioClient(s.Endpoint, s.AccessKey, s.SecretKey, s.UseSSL)
		if err != nil {
			return nil, fmt.Errorf("wire exporter: %w", err)
		}
		e, err := export.NewMinioExporter(client, s.Bucket, s.Prefix)
		if err != nil {
			return nil, fmt.Errorf("wire exporter: %w", err)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("wire exporter: unknown backend %q", s.Backend)
	}
}

// RenderOptions turns chart settings into render options.
func RenderOptions(s config.ChartSettings) ([]render.Option, error) {
	opts := []render.Option{}
	if s.Title != "" {
		opts = append(opts, render.WithTitle(s.Title))
	}
	if s.Width > 0 && s.Height > 0 {
		opts = append(opts, render.WithSize(vg.Length(s.Width)*vg.Inch, vg.Length(s.Height)*vg.Inch))
	}
	if len(s.Palette) > 0 {
		p, err := render.ParsePalette(s.Palette)
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithPalette(p))
	}
	return opts, nil
}
