package engine

import (
	"context"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-lab/internal/backtest/engine"
	"github.com/rxtech-lab/argo-lab/internal/chart"
	"github.com/rxtech-lab/argo-lab/internal/logger"
	"github.com/rxtech-lab/argo-lab/internal/strategy"
	"github.com/rxtech-lab/argo-lab/internal/types"
	"github.com/rxtech-lab/argo-lab/internal/version"
	"github.com/rxtech-lab/argo-lab/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	statsFileName = "stats.yaml"
	chartFileName = "balance.png"
)

var _ engine.Engine = (*BacktestEngineV1)(nil)

type BacktestEngineV1 struct {
	config        BacktestEngineV1Config
	initialized   bool
	strategy      strategy.Strategy
	resultsFolder string
	log           *logger.Logger
	clock         func() time.Time
}

func NewBacktestEngineV1(log *logger.Logger) *BacktestEngineV1 {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BacktestEngineV1{
		config: DefaultConfig(),
		log:    log,
		clock:  time.Now,
	}
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	parsed, err := ParseConfig(config)
	if err != nil {
		return err
	}

	return b.InitializeWithConfig(parsed)
}

// InitializeWithConfig validates and applies an already decoded config.
func (b *BacktestEngineV1) InitializeWithConfig(config BacktestEngineV1Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if config.Version.IsSome() {
		if err := version.CheckConfigCompatibility(version.GetVersion(), config.Version.Unwrap()); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestConfigError, "config targets an incompatible engine", err)
		}
	}

	b.config = config
	b.initialized = true

	b.log.Debug("Backtest engine initialized",
		zap.Float64("initial_balance", config.InitialBalance),
		zap.Int("iterations", config.Iterations),
		zap.Bool("seeded", config.Seed.IsSome()),
	)

	return nil
}

// SetResultsFolder implements engine.Engine.
func (b *BacktestEngineV1) SetResultsFolder(folder string) error {
	b.resultsFolder = folder

	return nil
}

// LoadStrategy implements engine.Engine.
func (b *BacktestEngineV1) LoadStrategy(s strategy.Strategy) error {
	if s == nil {
		return errors.New(errors.ErrCodeStrategyNotLoaded, "strategy is nil")
	}

	b.strategy = s

	return nil
}

// GetConfigSchema implements engine.Engine.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	return b.config.GenerateSchemaJSON()
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, callbacks engine.LifecycleCallbacks) (summary types.BacktestSummary, err error) {
	if callbacks.OnBacktestEnd != nil {
		defer func() { (*callbacks.OnBacktestEnd)(err) }()
	}

	if err := b.preRunCheck(); err != nil {
		return types.BacktestSummary{}, err
	}

	state, err := NewBacktestState(b.log)
	if err != nil {
		return types.BacktestSummary{}, err
	}
	defer state.Close()

	if err := state.Initialize(); err != nil {
		return types.BacktestSummary{}, err
	}

	runID := uuid.New().String()
	seed := b.seed()
	rng := rand.New(rand.NewPCG(seed, seed))
	total := b.config.Iterations

	balance := decimal.NewFromFloat(b.config.InitialBalance)
	step := 0

	if err := state.RecordBalance(step, balance); err != nil {
		return types.BacktestSummary{}, err
	}

	if callbacks.OnBacktestStart != nil {
		if err := (*callbacks.OnBacktestStart)(runID, total); err != nil {
			return types.BacktestSummary{}, errors.Wrap(errors.ErrCodeCallbackFailed, "start callback failed", err)
		}
	}

	b.log.Info("Backtest started",
		zap.String("run_id", runID),
		zap.String("strategy", b.strategy.Name()),
		zap.Int("iterations", total),
		zap.Uint64("seed", seed),
	)

	for i := 0; i < total; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.BacktestSummary{}, errors.Wrapf(errors.ErrCodeBacktestCancelled, ctxErr, "backtest cancelled at iteration %d", i)
		}

		value := b.strategy.GenerateData(rng)

		if signal := b.strategy.CreateSignal(value); signal.IsSome() {
			s, err := b.processSignal(signal.Unwrap(), i, rng)
			if err != nil {
				return types.BacktestSummary{}, err
			}

			balance = balance.Add(decimal.NewFromFloat(s.Result))
			step++

			if err := state.RecordSignal(s); err != nil {
				return types.BacktestSummary{}, err
			}

			if err := state.RecordBalance(step, balance); err != nil {
				return types.BacktestSummary{}, err
			}

			if callbacks.OnSignal != nil {
				if err := (*callbacks.OnSignal)(s, balance.InexactFloat64()); err != nil {
					return types.BacktestSummary{}, errors.Wrap(errors.ErrCodeCallbackFailed, "signal callback failed", err)
				}
			}
		}

		if callbacks.OnProcessData != nil {
			if err := (*callbacks.OnProcessData)(i+1, total); err != nil {
				return types.BacktestSummary{}, errors.Wrap(errors.ErrCodeCallbackFailed, "progress callback failed", err)
			}
		}
	}

	stats, err := state.GetStats()
	if err != nil {
		return types.BacktestSummary{}, err
	}

	history, err := state.GetBalanceHistory()
	if err != nil {
		return types.BacktestSummary{}, err
	}

	summary = b.buildSummary(runID, seed, stats, history)

	if b.resultsFolder != "" {
		if err := b.writeResults(state, &summary); err != nil {
			return types.BacktestSummary{}, err
		}
	}

	b.log.Info("Backtest finished",
		zap.String("run_id", runID),
		zap.Int("signals", summary.TotalSignals),
		zap.Float64("total_profit", summary.TotalProfit),
		zap.Float64("final_balance", summary.FinalBalance),
	)

	return summary, nil
}

// processSignal stamps, validates and settles a strategy signal.
func (b *BacktestEngineV1) processSignal(signal types.Signal, iteration int, rng *rand.Rand) (types.Signal, error) {
	signal.Iteration = iteration
	signal.Time = b.clock()

	if signal.Symbol == "" {
		signal.Symbol = b.config.Symbol
	}

	if err := signal.Validate(); err != nil {
		return types.Signal{}, errors.Wrapf(errors.ErrCodeStrategyRuntimeError, err,
			"strategy %s produced an invalid signal at iteration %d", b.strategy.Name(), iteration)
	}

	signal.ExitPrice = SampleFinalPrice(rng, signal.Entry, b.config.PriceRange)
	signal.Result = SimulateTrade(signal, signal.ExitPrice)

	b.log.Debug("Simulated trade",
		zap.Int("iteration", iteration),
		zap.String("side", string(signal.Side)),
		zap.Float64("exit_price", signal.ExitPrice),
		zap.Float64("result", signal.Result),
	)

	return signal, nil
}

func (b *BacktestEngineV1) buildSummary(runID string, seed uint64, stats StateStats, history []float64) types.BacktestSummary {
	summary := types.BacktestSummary{
		ID:             runID,
		Timestamp:      b.clock(),
		EngineVersion:  version.GetVersion(),
		Symbol:         b.config.Symbol,
		Seed:           seed,
		Strategy:       strategyInfo(b.strategy),
		Iterations:     b.config.Iterations,
		TotalSignals:   stats.TotalSignals,
		TotalProfit:    stats.TotalProfit,
		WinCount:       stats.WinCount,
		LossCount:      stats.LossCount,
		ProfitFactor:   optional.None[float64](),
		InitialBalance: b.config.InitialBalance,
		FinalBalance:   history[len(history)-1],
		MaxDrawdown:    stats.MaxDrawdown,
		BalanceHistory: history,
	}

	if stats.TotalSignals > 0 {
		summary.WinRate = float64(stats.WinCount) / float64(stats.TotalSignals) * 100
		summary.LossRate = float64(stats.LossCount) / float64(stats.TotalSignals) * 100
	}

	if stats.LossCount > 0 {
		summary.ProfitFactor = optional.Some(stats.GrossProfit / math.Abs(stats.GrossLoss))
	}

	return summary
}

func (b *BacktestEngineV1) writeResults(state *BacktestState, summary *types.BacktestSummary) error {
	if err := os.MkdirAll(b.resultsFolder, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestResultsDir, "failed to create results folder", err)
	}

	signalsPath, balancePath, err := state.Write(b.resultsFolder)
	if err != nil {
		return err
	}

	summary.SignalsFilePath = signalsPath
	summary.BalanceFilePath = balancePath

	chartPath := filepath.Join(b.resultsFolder, chartFileName)
	if err := chart.PlotBalance(summary.BalanceHistory, chartPath); err != nil {
		return err
	}

	summary.ChartFilePath = chartPath

	if err := types.WriteBacktestSummary(filepath.Join(b.resultsFolder, statsFileName), *summary); err != nil {
		return errors.Wrap(errors.ErrCodeStateWrite, "failed to write stats", err)
	}

	return nil
}

func (b *BacktestEngineV1) seed() uint64 {
	if b.config.Seed.IsSome() {
		return b.config.Seed.Unwrap()
	}

	return uint64(b.clock().UnixNano())
}

func (b *BacktestEngineV1) preRunCheck() error {
	if !b.initialized {
		return errors.New(errors.ErrCodeBacktestConfigError, "engine is not initialized")
	}

	if b.strategy == nil {
		return errors.New(errors.ErrCodeBacktestNoStrategies, "no strategy loaded")
	}

	return nil
}

func strategyInfo(s strategy.Strategy) types.StrategyInfo {
	info := types.StrategyInfo{Name: s.Name()}
	if threshold, ok := s.(*strategy.RandomThresholdStrategy); ok {
		info.Threshold = threshold.Threshold
	}

	return info
}
