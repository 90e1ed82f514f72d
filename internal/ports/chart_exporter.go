package ports

import "context"

// Stores rendered chart bytes and returns where they ended up.
type ChartExporter interface {
	Export(ctx context.Context, name, format string, data []byte) (location string, err error)
}
