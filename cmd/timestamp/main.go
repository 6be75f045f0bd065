package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rxtech-lab/argo-lab/internal/logger"
	"github.com/rxtech-lab/argo-lab/internal/runlog"
	"github.com/rxtech-lab/argo-lab/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func timestampAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger(logger.ParseLevel(cmd.String("log-level")))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if err := ctx.Err(); err != nil {
		return err
	}

	input := cmd.String("input")
	output := cmd.String("output")

	records, err := runlog.Append(input, output, time.Now())
	if err != nil {
		log.Error("Failed to update run log",
			zap.String("input", input),
			zap.String("output", output),
			zap.Error(err),
		)

		return err
	}

	last := records[len(records)-1]
	log.Debug("Run log updated", zap.String("output", output), zap.Int("rows", len(records)))

	fmt.Printf("Recorded %04d-%02d-%02d %02d:%02d:%02d to %s (%d rows)\n",
		last.Years, last.Month, last.Day, last.Hour, last.Minute, last.Second, output, len(records))

	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "timestamp",
		Usage:   "Append the current time to a CSV run log",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "CSV to read existing rows from. A missing file starts an empty log",
				Value:   runlog.DefaultInputPath,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "CSV to write all rows to",
				Value:   runlog.DefaultOutputPath,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Action: timestampAction,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
