package mocks

import (
	"math/rand/v2"
	"time"

	"github.com/rxtech-lab/argo-lab/internal/types"
)

// SignalGenerator produces settled signals for state and summary tests.
type SignalGenerator struct {
	rng *rand.Rand
}

// NewSignalGenerator creates a SignalGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewSignalGenerator(seed uint64) *SignalGenerator {
	return &SignalGenerator{
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

// GeneratorConfig configures how signals are generated.
type GeneratorConfig struct {
	Symbol    string
	StartTime time.Time
	Interval  time.Duration
	Count     int
	Entry     float64
	// Offset is the distance of take profit and stop loss from Entry.
	Offset float64
	// WinProbability and LossProbability control the settlement; the rest settle flat.
	WinProbability  float64
	LossProbability float64
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:          "TEST",
		StartTime:       time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:        time.Second,
		Count:           100,
		Entry:           100,
		Offset:          10,
		WinProbability:  0.3,
		LossProbability: 0.3,
	}
}

// Generate returns config.Count valid signals with sides, exit prices and results filled in.
func (g *SignalGenerator) Generate(config GeneratorConfig) []types.Signal {
	signals := make([]types.Signal, 0, config.Count)

	for i := range config.Count {
		signal := types.Signal{
			Iteration: i,
			Time:      config.StartTime.Add(time.Duration(i) * config.Interval),
			Symbol:    config.Symbol,
			Entry:     config.Entry,
		}

		if g.rng.Float64() > 0.5 {
			signal.Side = types.PurchaseTypeBuy
			signal.TakeProfit = config.Entry + config.Offset
			signal.StopLoss = config.Entry - config.Offset
		} else {
			signal.Side = types.PurchaseTypeSell
			signal.TakeProfit = config.Entry - config.Offset
			signal.StopLoss = config.Entry + config.Offset
		}

		outcome := g.rng.Float64()

		switch {
		case outcome < config.WinProbability:
			signal.ExitPrice = signal.TakeProfit
			signal.Result = config.Offset
		case outcome < config.WinProbability+config.LossProbability:
			signal.ExitPrice = signal.StopLoss
			signal.Result = -config.Offset
		default:
			signal.ExitPrice = config.Entry
			signal.Result = 0
		}

		signals = append(signals, signal)
	}

	return signals
}
