package engine

import (
	"context"

	"github.com/rxtech-lab/argo-lab/internal/strategy"
	"github.com/rxtech-lab/argo-lab/internal/types"
)

// Lifecycle callback types for backtest phases.
// Callbacks returning an error abort the run.

// OnBacktestStartCallback is called once before the first iteration.
type OnBacktestStartCallback func(runID string, totalIterations int) error

// OnBacktestEndCallback is called when the run finishes, successfully or not.
type OnBacktestEndCallback func(err error)

// OnProcessDataCallback is called after every iteration, including ones that produced no signal.
type OnProcessDataCallback func(current int, total int) error

// OnSignalCallback is called with each signal after its trade has been simulated.
type OnSignalCallback func(signal types.Signal, balance float64) error

// LifecycleCallbacks holds the optional callbacks. A nil field is skipped.
type LifecycleCallbacks struct {
	OnBacktestStart *OnBacktestStartCallback
	OnBacktestEnd   *OnBacktestEndCallback
	OnProcessData   *OnProcessDataCallback
	OnSignal        *OnSignalCallback
}

type Engine interface {
	// Initialize the engine with a YAML configuration.
	Initialize(config string) error
	// SetResultsFolder sets where stats.yaml, the parquet exports and the balance chart are written.
	// An empty folder disables writing results.
	SetResultsFolder(folder string) error
	// LoadStrategy sets the strategy to backtest.
	LoadStrategy(strategy strategy.Strategy) error
	// Run executes the backtest. Cancelling ctx stops it between iterations.
	Run(ctx context.Context, callbacks LifecycleCallbacks) (types.BacktestSummary, error)
	// GetConfigSchema returns the JSON schema of the engine configuration.
	GetConfigSchema() (string, error)
}
