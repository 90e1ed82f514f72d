package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoProblem = `
name: demo
mode: planar
depot: {id: depot, x: 0, y: 0}
locations:
  - {id: location1, x: 10, y: 5}
  - {id: location2, x: 20, y: 8}
vehicles:
  - {id: v1, capacity: 10}
jobs:
  - {id: j1, location: location1, demand: 5}
  - {id: j2, location: location2, demand: 5}
`

func TestParseFlagsRequiresOneSource(t *testing.T) {
	_, err := parseFlags(nil)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-clusters", "-problem", "x.yaml"})
	assert.Error(t, err)

	o, err := parseFlags([]string{"-clusters", "-seed", "7"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), o.seed)
}

func TestParseFlagsChecksChartFormat(t *testing.T) {
	for _, out := range []string{"chart", "chart.bmp", "charts/"} {
		_, err := parseFlags([]string{"-clusters", "-out", out})
		assert.Error(t, err, out)
	}

	o, err := parseFlags([]string{"-clusters", "-out", "run.SVG"})
	require.NoError(t, err)
	assert.Equal(t, "svg", o.outFormat)

	_, err = parseFlags([]string{"-batch", "in", "-format", "gif"})
	assert.Error(t, err)
}

func TestRunWithoutExtensionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "chart")

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-config", "", "-clusters", "-out", out}, &stdout)
	require.Error(t, err)
	assert.Empty(t, stdout.String())

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunProblemFile(t *testing.T) {
	dir := t.TempDir()
	problem := filepath.Join(dir, "demo.yaml")
	require.NoError(t, os.WriteFile(problem, []byte(demoProblem), 0o644))
	out := filepath.Join(dir, "charts", "demo.svg")

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-config", "", "-problem", problem, "-out", out}, &stdout))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, stdout.String(), "v1_0")
	assert.Contains(t, stdout.String(), "problem=demo")
}

func TestRunBatch(t *testing.T) {
	in := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "charts")
	for _, name := range []string{"a.yaml", "b.yml"} {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), []byte(demoProblem), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("skip me"), 0o644))

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-config", "", "-batch", in, "-outdir", outDir, "-format", "geojson", "-concurrency", "2"}, &stdout)
	require.NoError(t, err)

	for _, name := range []string{"a.geojson", "b.geojson"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
	assert.Contains(t, stdout.String(), "problem=a.yaml")
	assert.Contains(t, stdout.String(), "problem=b.yml")
}

func TestRunBatchFailsOnBadFile(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.yaml"), []byte("depot: {}"), 0o644))

	err := run(context.Background(), []string{"-config", "", "-batch", in, "-outdir", t.TempDir()}, &bytes.Buffer{})
	assert.Error(t, err)
}
