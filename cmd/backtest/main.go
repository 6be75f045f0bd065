package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-lab/internal/backtest/engine"
	engine_v1 "github.com/rxtech-lab/argo-lab/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-lab/internal/chart"
	"github.com/rxtech-lab/argo-lab/internal/logger"
	"github.com/rxtech-lab/argo-lab/internal/strategy"
	"github.com/rxtech-lab/argo-lab/internal/types"
	"github.com/rxtech-lab/argo-lab/internal/version"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

type runOptions struct {
	Config      engine_v1.BacktestEngineV1Config
	Threshold   float64
	ResultsDir  string
	ChartHeight int
	// ShowProgress draws a progress bar on stderr.
	ShowProgress bool
}

// loadConfig reads the YAML config at path, or returns the defaults when path is empty.
func loadConfig(path string) (engine_v1.BacktestEngineV1Config, error) {
	if path == "" {
		return engine_v1.DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return engine_v1.BacktestEngineV1Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	return engine_v1.ParseConfig(string(content))
}

func runBacktest(ctx context.Context, opts runOptions, log *logger.Logger, out io.Writer) (types.BacktestSummary, error) {
	backtester := engine_v1.NewBacktestEngineV1(log)

	if err := backtester.InitializeWithConfig(opts.Config); err != nil {
		return types.BacktestSummary{}, err
	}

	if opts.ResultsDir != "" {
		if err := backtester.SetResultsFolder(opts.ResultsDir); err != nil {
			return types.BacktestSummary{}, err
		}
	}

	s := strategy.NewRandomThresholdStrategy()
	s.Threshold = opts.Threshold

	if err := backtester.LoadStrategy(s); err != nil {
		return types.BacktestSummary{}, err
	}

	var bar *progressbar.ProgressBar

	onStart := engine.OnBacktestStartCallback(func(runID string, totalIterations int) error {
		log.Info("Backtest started", zap.String("run_id", runID), zap.Int("iterations", totalIterations))

		if opts.ShowProgress && totalIterations > 0 {
			bar = progressbar.NewOptions(totalIterations,
				progressbar.OptionSetDescription("Backtesting"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWriter(os.Stderr),
			)
		}

		return nil
	})
	onProcess := engine.OnProcessDataCallback(func(current, total int) error {
		if bar != nil {
			return bar.Set(current)
		}

		return nil
	})
	onEnd := engine.OnBacktestEndCallback(func(err error) {
		if bar != nil {
			_ = bar.Finish()
		}

		if err != nil {
			log.Error("Backtest failed", zap.Error(err))
		}
	})

	summary, err := backtester.Run(ctx, engine.LifecycleCallbacks{
		OnBacktestStart: &onStart,
		OnProcessData:   &onProcess,
		OnBacktestEnd:   &onEnd,
	})
	if err != nil {
		return types.BacktestSummary{}, err
	}

	fmt.Fprintln(out, formatSummary(summary))

	graph, err := chart.RenderASCII(summary.BalanceHistory, opts.ChartHeight)
	if err != nil {
		return summary, err
	}

	fmt.Fprintln(out, graph)

	return summary, nil
}

func backtestAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger(logger.ParseLevel(cmd.String("log-level")))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	config, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	if cmd.IsSet("iterations") {
		config.Iterations = cmd.Int("iterations")
	}

	if cmd.IsSet("seed") {
		config.Seed = optional.Some(cmd.Uint64("seed"))
	}

	if cmd.IsSet("symbol") {
		config.Symbol = cmd.String("symbol")
	}

	_, err = runBacktest(ctx, runOptions{
		Config:       config,
		Threshold:    cmd.Float64("threshold"),
		ResultsDir:   cmd.String("results"),
		ChartHeight:  cmd.Int("chart-height"),
		ShowProgress: !cmd.Bool("quiet"),
	}, log, os.Stdout)

	return err
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "backtest",
		Usage:   "Run the random-signal backtest and print its summary",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a backtest YAML config. Defaults are used when omitted",
			},
			&cli.IntFlag{
				Name:    "iterations",
				Aliases: []string{"n"},
				Usage:   "Number of iterations, overrides the config",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Random seed, overrides the config",
			},
			&cli.StringFlag{
				Name:  "symbol",
				Usage: "Symbol recorded on every signal, overrides the config",
			},
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "Draws above this value produce BUY signals",
				Value: strategy.DefaultThreshold,
			},
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"r"},
				Usage:   "Folder for stats.yaml, parquet exports and balance.png",
			},
			&cli.IntFlag{
				Name:  "chart-height",
				Usage: "Height of the terminal balance chart",
				Value: 10,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Hide the progress bar",
			},
		},
		Action: backtestAction,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
