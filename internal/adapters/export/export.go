package export

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"vrp-route-plotter/internal/metrics"
	"vrp-route-plotter/internal/render"
)

var errEmptyName = errors.New("chart name is empty")

// objectKey builds "<prefix>/<name>.<format>" and rejects names that would
// escape the prefix.
func objectKey(prefix, name, format string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errEmptyName
	}
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid chart name %q", name)
	}
	return path.Join(prefix, name+"."+format), nil
}

func contentType(format string) string {
	return render.ContentType(format)
}

func observe(backend string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.ChartExports.WithLabelValues(backend, status).Inc()
}
