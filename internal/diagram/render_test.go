package diagram

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDot writes a script that copies its input file to the -o target.
func fakeDot(t *testing.T) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script renderer")
	}

	path := filepath.Join(t.TempDir(), "fake-dot")
	script := "#!/bin/sh\ncp \"$4\" \"$3\"\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))

	return path
}

func TestGraphvizRendererCleansUpSource(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "interaction_diagram")

	r := &GraphvizRenderer{Binary: fakeDot(t)}
	out, err := r.Render(context.Background(), "digraph {}", "png", base)
	require.NoError(t, err)

	assert.Equal(t, base+".png", out)
	assert.FileExists(t, out)
	assert.NoFileExists(t, base)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "digraph {}", string(content))
}

func TestGraphvizRendererCreatesOutputDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "diagrams", "nested", "collaboration_diagram")

	r := &GraphvizRenderer{Binary: fakeDot(t)}
	out, err := r.Render(context.Background(), "digraph {}", "svg", base)
	require.NoError(t, err)

	assert.Equal(t, base+".svg", out)
	assert.FileExists(t, out)
	assert.NoFileExists(t, base)
}

func TestGraphvizRendererMissingBinary(t *testing.T) {
	base := filepath.Join(t.TempDir(), "diagram")

	r := &GraphvizRenderer{Binary: filepath.Join(t.TempDir(), "no-such-dot")}
	out, err := r.Render(context.Background(), "digraph {}", "png", base)
	assert.Error(t, err)
	assert.Empty(t, out)
	assert.NoFileExists(t, base)
}

func TestCommandOpener(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on true/false")
	}

	assert.NoError(t, NewCommandOpener("true").Open(context.Background(), "x.png"))
	assert.Error(t, NewCommandOpener("false").Open(context.Background(), "x.png"))
}
