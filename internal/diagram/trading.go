package diagram

import (
	"context"

	"go.uber.org/zap"
)

// tradingNodes are the participants shared by both trading-system diagrams.
var tradingNodes = []Node{
	{ID: "T", Label: "Trader"},
	{ID: "TS", Label: "Trading System"},
	{ID: "O", Label: "Order"},
	{ID: "SE", Label: "Stock Exchange"},
	{ID: "M", Label: "Module"},
}

// tradingEdges is the margin loan flow: request, debt creation, reservation, payout, repayment, closing.
var tradingEdges = []Edge{
	{From: "T", To: "TS", Label: "ЗапитПозики (сума, умови)"},
	{From: "TS", To: "O", Label: "СтворитиБорг (сума, відсотки)"},
	{From: "O", To: "SE", Label: "РезервуватиКошти()"},
	{From: "SE", To: "T", Label: "НадатиПозиченіКошти()"},
	{From: "T", To: "M", Label: "ПовернутиБорг (сума, відсотки)"},
	{From: "M", To: "SE", Label: "ЗакритиБорг()"},
	{From: "SE", To: "O", Label: "ОновитиСтатусБоргу()"},
}

func NewInteractionDiagram(opts ...Option) *Generator {
	g := NewGenerator("interaction_diagram", "Trading System Interaction Diagram", opts...)
	g.AddNodes(tradingNodes)
	g.AddEdges(tradingEdges)

	return g
}

func NewCollaborationDiagram(opts ...Option) *Generator {
	g := NewGenerator("collaboration_diagram", "Trading System Collaboration Diagram", opts...)
	g.AddNodes(tradingNodes)
	g.AddEdges(tradingEdges)

	return g
}

// GenerateAll renders the interaction and collaboration diagrams in that order.
// A failure in one diagram does not stop the other. It returns the rendered paths
// and the first error seen.
func GenerateAll(ctx context.Context, opts ...Option) ([]string, error) {
	var (
		paths    []string
		firstErr error
	)

	for _, g := range []*Generator{NewInteractionDiagram(opts...), NewCollaborationDiagram(opts...)} {
		path, err := g.RenderAndOpen(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}

			continue
		}

		g.log.Debug("Diagram ready", zap.String("diagram", g.Name))
		paths = append(paths, path)
	}

	return paths, firstErr
}
