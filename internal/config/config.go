package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"vrp-route-plotter/internal/geo"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type SolverSettings struct {
	Kind          string  `yaml:"kind"` // "nearest" or "http"
	Endpoint      string  `yaml:"endpoint"`
	APIKey        string  `yaml:"api_key"`
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
	TwoOptPasses  int     `yaml:"two_opt_passes"`
}

type ChartSettings struct {
	Title   string   `yaml:"title"`
	Width   float64  `yaml:"width_in"`
	Height  float64  `yaml:"height_in"`
	Palette []string `yaml:"palette"`
	Format  string   `yaml:"format"`
}

type ExportSettings struct {
	Backend   string `yaml:"backend"` // "file", "s3", "minio" or "" (none)
	Dir       string `yaml:"dir"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Settings is the merged service configuration.
type Settings struct {
	Port           string         `yaml:"port"`
	DatabaseURL    string         `yaml:"database_url"`
	RedisURL       string         `yaml:"redis_url"`
	MatrixCacheTTL time.Duration  `yaml:"matrix_cache_ttl"`
	Mode           string         `yaml:"mode"`
	Solver         SolverSettings `yaml:"solver"`
	Chart          ChartSettings  `yaml:"chart"`
	Export         ExportSettings `yaml:"export"`
}

func Defaults() Settings {
	return Settings{
		Port:           "8080",
		MatrixCacheTTL: 24 * time.Hour,
		Mode:           "geographic",
		Solver: SolverSettings{
			Kind:          "nearest",
			RatePerSecond: 5,
			Burst:         1,
			TwoOptPasses:  50,
		},
		Chart: ChartSettings{
			Title:  "Vehicle Routing Solution",
			Width:  8,
			Height: 6,
			Format: "png",
		},
		Export: ExportSettings{Dir: "out"},
	}
}

// Load starts from Defaults, applies the YAML file at path (if any), then
// environment variables. Environment wins over the file.
func Load(path string) (Settings, error) {
	s := Defaults()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("load config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &s); err != nil {
			return Settings{}, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	if err := applyEnv(&s); err != nil {
		return Settings{}, fmt.Errorf("load config: %w", err)
	}
	if _, ok := geo.ParseMode(s.Mode); !ok {
		return Settings{}, fmt.Errorf("load config: DISTANCE_MODE: unknown mode %q", s.Mode)
	}
	return s, nil
}

// DistanceMode is the mode used when a request does not name one.
func (s Settings) DistanceMode() geo.Mode {
	m, _ := geo.ParseMode(s.Mode)
	return m
}

func applyEnv(s *Settings) error {
	s.Port = Get("PORT", s.Port)
	s.DatabaseURL = Get("DATABASE_URL", s.DatabaseURL)
	s.RedisURL = Get("REDIS_URL", s.RedisURL)
	s.Mode = Get("DISTANCE_MODE", s.Mode)

	s.Solver.Kind = Get("SOLVER", s.Solver.Kind)
	s.Solver.Endpoint = Get("SOLVER_URL", s.Solver.Endpoint)
	s.Solver.APIKey = Get("SOLVER_API_KEY", s.Solver.APIKey)

	s.Chart.Format = Get("CHART_FORMAT", s.Chart.Format)

	s.Export.Backend = Get("EXPORT_BACKEND", s.Export.Backend)
	s.Export.Dir = Get("EXPORT_DIR", s.Export.Dir)
	s.Export.Bucket = Get("EXPORT_BUCKET", s.Export.Bucket)
	s.Export.Prefix = Get("EXPORT_PREFIX", s.Export.Prefix)
	s.Export.Endpoint = Get("EXPORT_ENDPOINT", s.Export.Endpoint)
	s.Export.AccessKey = Get("EXPORT_ACCESS_KEY", s.Export.AccessKey)
	s.Export.SecretKey = Get("EXPORT_SECRET_KEY", s.Export.SecretKey)

	if v := os.Getenv("EXPORT_USE_SSL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("EXPORT_USE_SSL: %w", err)
		}
		s.Export.UseSSL = b
	}
	if v := os.Getenv("MATRIX_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MATRIX_CACHE_TTL: %w", err)
		}
		s.MatrixCacheTTL = d
	}
	if v := os.Getenv("SOLVER_RATE"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SOLVER_RATE: %w", err)
		}
		s.Solver.RatePerSecond = r
	}

	if s.Solver.Kind == "http" && s.Solver.Endpoint == "" {
		return errors.New("solver kind http requires SOLVER_URL")
	}
	return nil
}
