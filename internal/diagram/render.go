package diagram

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	DefaultGraphvizBinary = "dot"
	DefaultViewer         = "code"
)

// Renderer turns graphviz source into a file and returns its path.
type Renderer interface {
	Render(ctx context.Context, source, format, outputBase string) (string, error)
}

// Opener shows a rendered file to the user.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// GraphvizRenderer shells out to the graphviz layout binary.
// The source is written to outputBase, rendered to outputBase.<format>, then removed.
type GraphvizRenderer struct {
	Binary string
}

func NewGraphvizRenderer() *GraphvizRenderer {
	return &GraphvizRenderer{Binary: DefaultGraphvizBinary}
}

func (r *GraphvizRenderer) Render(ctx context.Context, source, format, outputBase string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(outputBase), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(outputBase, []byte(source), 0644); err != nil {
		return "", fmt.Errorf("failed to write graphviz source: %w", err)
	}
	defer os.Remove(outputBase)

	outputPath := outputBase + "." + format

	cmd := exec.CommandContext(ctx, r.Binary, "-T"+format, "-o", outputPath, outputBase)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %w: %s", r.Binary, err, msg)
		}

		return "", fmt.Errorf("%s failed: %w", r.Binary, err)
	}

	return outputPath, nil
}

// CommandOpener opens a file by running Command with the path as its only argument.
type CommandOpener struct {
	Command string
}

func NewCommandOpener(command string) *CommandOpener {
	return &CommandOpener{Command: command}
}

func (o *CommandOpener) Open(ctx context.Context, path string) error {
	if err := exec.CommandContext(ctx, o.Command, path).Run(); err != nil {
		return fmt.Errorf("failed to open %s with %s: %w", path, o.Command, err)
	}

	return nil
}
