package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type SummaryTestSuite struct {
	suite.Suite
	tempDir string
}

func TestSummarySuite(t *testing.T) {
	suite.Run(t, new(SummaryTestSuite))
}

func (suite *SummaryTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "summary_test")
	suite.Require().NoError(err)
	suite.tempDir = tempDir
}

func (suite *SummaryTestSuite) TearDownTest() {
	os.RemoveAll(suite.tempDir)
}

func (suite *SummaryTestSuite) TestWriteAndReadWithProfitFactor() {
	summary := BacktestSummary{
		ID:             "run-1",
		Timestamp:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		EngineVersion:  "v0.1.0",
		Symbol:         "SIM",
		Seed:           42,
		Strategy:       StrategyInfo{Name: "RandomThresholdStrategy", Threshold: 0.5},
		Iterations:     3,
		TotalSignals:   3,
		TotalProfit:    10,
		WinCount:       2,
		LossCount:      1,
		WinRate:        66.67,
		LossRate:       33.33,
		ProfitFactor:   optional.Some(2.5),
		InitialBalance: 10000,
		FinalBalance:   10010,
		BalanceHistory: []float64{10000, 10010, 10000, 10010},
	}

	path := filepath.Join(suite.tempDir, "stats.yaml")
	suite.Require().NoError(WriteBacktestSummary(path, summary))

	raw, err := os.ReadFile(path)
	suite.Require().NoError(err)

	var generic map[string]any
	suite.Require().NoError(yaml.Unmarshal(raw, &generic))
	suite.Equal(2.5, generic["profit_factor"])
	suite.Equal(3, generic["total_signals"])
	suite.NotContains(generic, "balance_history")

	got, err := ReadBacktestSummary(path)
	suite.Require().NoError(err)
	suite.Equal("run-1", got.ID)
	suite.Equal(uint64(42), got.Seed)
	suite.Equal("RandomThresholdStrategy", got.Strategy.Name)
	suite.True(got.ProfitFactor.IsSome())
	suite.Equal(2.5, got.ProfitFactor.Unwrap())
	suite.Nil(got.BalanceHistory)
}

func (suite *SummaryTestSuite) TestWriteWithoutProfitFactor() {
	summary := BacktestSummary{
		ID:           "run-2",
		ProfitFactor: optional.None[float64](),
	}

	path := filepath.Join(suite.tempDir, "stats.yaml")
	suite.Require().NoError(WriteBacktestSummary(path, summary))

	got, err := ReadBacktestSummary(path)
	suite.Require().NoError(err)
	suite.True(got.ProfitFactor.IsNone())
}

func (suite *SummaryTestSuite) TestWriteToMissingDirectory() {
	err := WriteBacktestSummary(filepath.Join(suite.tempDir, "missing", "stats.yaml"), BacktestSummary{})
	suite.Error(err)
	suite.Contains(err.Error(), "failed to write backtest summary")
}

func (suite *SummaryTestSuite) TestReadMissingFile() {
	_, err := ReadBacktestSummary(filepath.Join(suite.tempDir, "nope.yaml"))
	suite.Error(err)
}
