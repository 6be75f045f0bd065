package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-lab/internal/diagram"
	"github.com/rxtech-lab/argo-lab/internal/logger"
	"github.com/rxtech-lab/argo-lab/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func diagramOptions(cmd *cli.Command, log *logger.Logger) []diagram.Option {
	renderer := diagram.NewGraphvizRenderer()
	renderer.Binary = cmd.String("graphviz")

	opts := []diagram.Option{
		diagram.WithRenderer(renderer),
		diagram.WithOutputDir(cmd.String("output-dir")),
		diagram.WithFormat(cmd.String("format")),
		diagram.WithLogger(log),
	}

	if cmd.Bool("no-open") {
		opts = append(opts, diagram.WithOpener(nil))
	} else {
		opts = append(opts, diagram.WithOpener(diagram.NewCommandOpener(cmd.String("viewer"))))
	}

	return opts
}

func diagramAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger(logger.ParseLevel(cmd.String("log-level")))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	paths, err := diagram.GenerateAll(ctx, diagramOptions(cmd, log)...)
	for _, path := range paths {
		fmt.Println(path)
	}

	// Failures were already reported per diagram; a partial result is not fatal.
	if err != nil && len(paths) == 0 {
		return err
	}

	if err != nil {
		log.Warn("Some diagrams were not generated", zap.Error(err))
	}

	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "diagram",
		Usage:   "Render the trading system interaction and collaboration diagrams",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Directory for the rendered diagrams",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Graphviz output format (png, svg, pdf, ...)",
				Value:   diagram.DefaultFormat,
			},
			&cli.StringFlag{
				Name:  "graphviz",
				Usage: "Graphviz layout binary",
				Value: diagram.DefaultGraphvizBinary,
			},
			&cli.StringFlag{
				Name:  "viewer",
				Usage: "Command used to open each rendered diagram",
				Value: diagram.DefaultViewer,
			},
			&cli.BoolFlag{
				Name:  "no-open",
				Usage: "Render without opening a viewer",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Action: diagramAction,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
