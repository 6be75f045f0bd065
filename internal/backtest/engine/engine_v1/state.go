package engine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-lab/internal/logger"
	"github.com/rxtech-lab/argo-lab/internal/types"
	"github.com/rxtech-lab/argo-lab/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	signalsFileName = "signals.parquet"
	balanceFileName = "balance.parquet"
)

// BacktestState records signals and the balance curve of a single run in an in-memory DuckDB.
type BacktestState struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// StateStats are the aggregates of a run, computed in SQL.
type StateStats struct {
	TotalSignals int
	WinCount     int
	LossCount    int
	TotalProfit  float64
	GrossProfit  float64
	// GrossLoss is the sum of losing results, a non-positive number.
	GrossLoss   float64
	MaxDrawdown float64
}

func NewBacktestState(log *logger.Logger) (*BacktestState, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to open database", err)
	}

	return &BacktestState{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the signals and balance_history tables.
func (b *BacktestState) Initialize() error {
	if err := b.ready(); err != nil {
		return err
	}

	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS signals (
			iteration INTEGER,
			timestamp TIMESTAMP,
			symbol TEXT,
			side TEXT,
			entry DOUBLE,
			take_profit DOUBLE,
			stop_loss DOUBLE,
			exit_price DOUBLE,
			result DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create signals table", err)
	}

	_, err = b.db.Exec(`
		CREATE TABLE IF NOT EXISTS balance_history (
			step INTEGER PRIMARY KEY,
			balance DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create balance_history table", err)
	}

	return nil
}

// RecordSignal stores a simulated signal.
func (b *BacktestState) RecordSignal(signal types.Signal) error {
	if err := b.ready(); err != nil {
		return err
	}

	_, err := b.sq.
		Insert("signals").
		Columns(
			"iteration", "timestamp", "symbol", "side", "entry",
			"take_profit", "stop_loss", "exit_price", "result",
		).
		Values(
			signal.Iteration, signal.Time, signal.Symbol, string(signal.Side), signal.Entry,
			signal.TakeProfit, signal.StopLoss, signal.ExitPrice, signal.Result,
		).
		RunWith(b.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateWrite, "failed to insert signal", err)
	}

	return nil
}

// RecordBalance stores the balance at a step of the curve. Step 0 is the starting balance.
func (b *BacktestState) RecordBalance(step int, balance decimal.Decimal) error {
	if err := b.ready(); err != nil {
		return err
	}

	_, err := b.sq.
		Insert("balance_history").
		Columns("step", "balance").
		Values(step, balance.InexactFloat64()).
		RunWith(b.db).
		Exec()
	if err != nil {
		return errors.Wrapf(errors.ErrCodeStateWrite, err, "failed to insert balance at step %d", step)
	}

	return nil
}

// GetBalanceHistory returns the balance curve ordered by step.
func (b *BacktestState) GetBalanceHistory() ([]float64, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}

	rows, err := b.sq.
		Select("balance").
		From("balance_history").
		OrderBy("step").
		RunWith(b.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query balance history", err)
	}
	defer rows.Close()

	var history []float64

	for rows.Next() {
		var balance float64
		if err := rows.Scan(&balance); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan balance", err)
		}

		history = append(history, balance)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating balance history", err)
	}

	return history, nil
}

// GetStats aggregates the recorded signals and balance curve.
func (b *BacktestState) GetStats() (StateStats, error) {
	if err := b.ready(); err != nil {
		return StateStats{}, err
	}

	var stats StateStats

	err := b.sq.
		Select(
			"COUNT(*)",
			"COUNT(CASE WHEN result > 0 THEN 1 END)",
			"COUNT(CASE WHEN result < 0 THEN 1 END)",
			"COALESCE(SUM(result), 0)",
			"COALESCE(SUM(CASE WHEN result > 0 THEN result ELSE 0 END), 0)",
			"COALESCE(SUM(CASE WHEN result < 0 THEN result ELSE 0 END), 0)",
		).
		From("signals").
		RunWith(b.db).
		QueryRow().
		Scan(
			&stats.TotalSignals,
			&stats.WinCount,
			&stats.LossCount,
			&stats.TotalProfit,
			&stats.GrossProfit,
			&stats.GrossLoss,
		)
	if err != nil {
		return StateStats{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to aggregate signals", err)
	}

	peaks := b.sq.
		Select("balance", "MAX(balance) OVER (ORDER BY step) AS peak").
		From("balance_history")

	err = b.sq.
		Select("COALESCE(MAX(CASE WHEN peak > 0 THEN (peak - balance) / peak ELSE 0 END), 0)").
		FromSelect(peaks, "curve").
		RunWith(b.db).
		QueryRow().
		Scan(&stats.MaxDrawdown)
	if err != nil {
		return StateStats{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to calculate max drawdown", err)
	}

	return stats, nil
}

// Write exports signals and balance history to Parquet files in dir.
// It returns the signals and balance file paths.
func (b *BacktestState) Write(dir string) (string, string, error) {
	if err := b.ready(); err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", errors.Wrap(errors.ErrCodeBacktestResultsDir, "failed to create results directory", err)
	}

	// COPY has no squirrel builder and its target cannot be a bound parameter.
	signalsPath := filepath.Join(dir, signalsFileName)
	if _, err := b.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM signals ORDER BY iteration) TO %s (FORMAT PARQUET)`, quoteLiteral(signalsPath))); err != nil {
		return "", "", errors.Wrap(errors.ErrCodeStateWrite, "failed to export signals to Parquet", err)
	}

	balancePath := filepath.Join(dir, balanceFileName)
	if _, err := b.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM balance_history ORDER BY step) TO %s (FORMAT PARQUET)`, quoteLiteral(balancePath))); err != nil {
		return "", "", errors.Wrap(errors.ErrCodeStateWrite, "failed to export balance history to Parquet", err)
	}

	b.logger.Debug("Exported backtest state to Parquet",
		zap.String("signals", signalsPath),
		zap.String("balance", balancePath),
	)

	return signalsPath, balancePath, nil
}

// ready fails once the state has been closed.
func (b *BacktestState) ready() error {
	if b.db == nil {
		return errors.New(errors.ErrCodeStateNotReady, "backtest state is closed")
	}

	return nil
}

// quoteLiteral renders s as a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (b *BacktestState) Close() error {
	if b.db == nil {
		return nil
	}

	err := b.db.Close()
	b.db = nil

	return err
}
