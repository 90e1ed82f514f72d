package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileExporter writes charts under Dir.
type FileExporter struct {
	Dir string
}

func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{Dir: dir}
}

func (f *FileExporter) Export(ctx context.Context, name, format string, data []byte) (_ string, err error) {
	defer func() { observe("file", err) }()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	key, err := objectKey("", name, format)
	if err != nil {
		return "", fmt.Errorf("file export: %w", err)
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", fmt.Errorf("file export: create dir %q: %w", f.Dir, err)
	}

	target := filepath.Join(f.Dir, key)
	if err := writeFile(target, data); err != nil {
		return "", fmt.Errorf("file export: %w", err)
	}
	return target, nil
}

// writeFile removes the partially written file when any step fails.
func writeFile(target string, data []byte) (err error) {
	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %q: %w", target, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", target, cerr)
		}
		if err != nil {
			_ = os.Remove(target)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("write %q: %w", target, err)
	}
	return nil
}
