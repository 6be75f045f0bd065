package types

import (
	"fmt"
	"os"
	"time"

	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v3"
)

// StrategyInfo identifies the strategy behind a run.
type StrategyInfo struct {
	Name      string  `yaml:"name" json:"name"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// BacktestSummary is the outcome of one backtest run.
type BacktestSummary struct {
	// ID is the unique identifier for this run.
	ID            string       `yaml:"id" json:"id"`
	Timestamp     time.Time    `yaml:"timestamp" json:"timestamp"`
	EngineVersion string       `yaml:"engine_version" json:"engine_version"`
	Symbol        string       `yaml:"symbol" json:"symbol"`
	Seed          uint64       `yaml:"seed" json:"seed"`
	Strategy      StrategyInfo `yaml:"strategy" json:"strategy"`
	Iterations    int          `yaml:"iterations" json:"iterations"`

	TotalSignals int     `yaml:"total_signals" json:"total_signals"`
	TotalProfit  float64 `yaml:"total_profit" json:"total_profit"`
	WinCount     int     `yaml:"win_count" json:"win_count"`
	LossCount    int     `yaml:"loss_count" json:"loss_count"`
	// WinRate and LossRate are percentages of TotalSignals. Both are 0 when there were no trades.
	WinRate  float64 `yaml:"win_rate" json:"win_rate"`
	LossRate float64 `yaml:"loss_rate" json:"loss_rate"`
	// ProfitFactor is gross profit / |gross loss|, present only when at least one trade lost.
	ProfitFactor optional.Option[float64] `yaml:"-" json:"-"`

	InitialBalance float64 `yaml:"initial_balance" json:"initial_balance"`
	FinalBalance   float64 `yaml:"final_balance" json:"final_balance"`
	// MaxDrawdown is the largest peak-to-trough drop of the balance, as a fraction of the peak.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`

	// BalanceHistory holds the starting balance followed by the balance after each signal.
	BalanceHistory []float64 `yaml:"-" json:"-"`

	SignalsFilePath string `yaml:"signals_file_path,omitempty" json:"signals_file_path,omitempty"`
	BalanceFilePath string `yaml:"balance_file_path,omitempty" json:"balance_file_path,omitempty"`
	ChartFilePath   string `yaml:"chart_file_path,omitempty" json:"chart_file_path,omitempty"`
}

// summaryDocument is the on-disk shape; it flattens ProfitFactor to a nullable field.
type summaryDocument struct {
	BacktestSummary `yaml:",inline"`
	ProfitFactor    *float64 `yaml:"profit_factor"`
}

// WriteBacktestSummary writes the summary as YAML to path.
func WriteBacktestSummary(path string, summary BacktestSummary) error {
	doc := summaryDocument{BacktestSummary: summary}
	if summary.ProfitFactor.IsSome() {
		pf := summary.ProfitFactor.Unwrap()
		doc.ProfitFactor = &pf
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest summary to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest summary to file: %w", err)
	}

	return nil
}

// ReadBacktestSummary reads a summary written by WriteBacktestSummary.
func ReadBacktestSummary(path string) (BacktestSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BacktestSummary{}, fmt.Errorf("failed to read backtest summary: %w", err)
	}

	var doc summaryDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return BacktestSummary{}, fmt.Errorf("failed to parse backtest summary: %w", err)
	}

	summary := doc.BacktestSummary
	if doc.ProfitFactor != nil {
		summary.ProfitFactor = optional.Some(*doc.ProfitFactor)
	} else {
		summary.ProfitFactor = optional.None[float64]()
	}

	return summary, nil
}
