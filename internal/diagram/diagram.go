package diagram

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/emicklei/dot"
	"github.com/rxtech-lab/argo-lab/internal/logger"
	"github.com/rxtech-lab/argo-lab/pkg/errors"
	"go.uber.org/zap"
)

const DefaultFormat = "png"

// Node is a labeled vertex of a diagram.
type Node struct {
	ID    string
	Label string
}

// Edge is a labeled directed connection between two node IDs.
type Edge struct {
	From  string
	To    string
	Label string
}

// Generator builds a directed graph and renders it to an image.
type Generator struct {
	Name    string
	Comment string
	Format  string
	// OutputDir is where the rendered file is written. Empty means the working directory.
	OutputDir string

	graph    *dot.Graph
	nodes    map[string]dot.Node
	renderer Renderer
	opener   Opener
	log      *logger.Logger
}

type Option func(*Generator)

func WithRenderer(r Renderer) Option {
	return func(g *Generator) { g.renderer = r }
}

// WithOpener sets the viewer used after rendering. A nil opener skips opening.
func WithOpener(o Opener) Option {
	return func(g *Generator) { g.opener = o }
}

func WithOutputDir(dir string) Option {
	return func(g *Generator) { g.OutputDir = dir }
}

func WithFormat(format string) Option {
	return func(g *Generator) { g.Format = format }
}

func WithLogger(log *logger.Logger) Option {
	return func(g *Generator) { g.log = log }
}

func NewGenerator(name, comment string, opts ...Option) *Generator {
	g := &Generator{
		Name:     name,
		Comment:  comment,
		Format:   DefaultFormat,
		graph:    dot.NewGraph(dot.Directed),
		nodes:    make(map[string]dot.Node),
		renderer: NewGraphvizRenderer(),
		opener:   NewCommandOpener(DefaultViewer),
		log:      logger.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// AddNodes adds nodes in order. Re-adding an ID relabels the existing node.
func (g *Generator) AddNodes(nodes []Node) {
	for _, n := range nodes {
		g.node(n.ID).Label(n.Label)
	}
}

// AddEdges adds labeled edges. Unknown endpoints are created with their ID as label,
// the way graphviz treats undeclared nodes.
func (g *Generator) AddEdges(edges []Edge) {
	for _, e := range edges {
		g.graph.Edge(g.node(e.From), g.node(e.To), e.Label)
	}
}

func (g *Generator) node(id string) dot.Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}

	n := g.graph.Node(id)
	g.nodes[id] = n

	return n
}

// DOT returns the graphviz source, headed by the comment line when one is set.
func (g *Generator) DOT() string {
	var b strings.Builder
	if g.Comment != "" {
		b.WriteString("// ")
		b.WriteString(g.Comment)
		b.WriteString("\n")
	}

	b.WriteString(g.graph.String())

	return b.String()
}

// RenderAndOpen renders the diagram and opens the result in the configured viewer.
// A render failure is logged and returned with an empty path. A viewer failure is only
// logged; the rendered path is still returned.
func (g *Generator) RenderAndOpen(ctx context.Context) (string, error) {
	outputBase := filepath.Join(g.OutputDir, g.Name)

	path, err := g.renderer.Render(ctx, g.DOT(), g.Format, outputBase)
	if err != nil {
		err = errors.Wrapf(errors.ErrCodeDiagramRenderFailed, err, "error generating diagram %s", g.Name)
		g.log.Error("Error generating diagram", zap.String("diagram", g.Name), zap.Error(err))

		return "", err
	}

	g.log.Info("Diagram rendered", zap.String("diagram", g.Name), zap.String("path", path))

	if g.opener == nil {
		return path, nil
	}

	if err := g.opener.Open(ctx, path); err != nil {
		g.log.Warn("Failed to open diagram",
			zap.String("path", path),
			zap.Error(errors.Wrap(errors.ErrCodeDiagramOpenFailed, "viewer failed", err)),
		)
	}

	return path, nil
}
