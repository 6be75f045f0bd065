package strategy

import (
	"math/rand/v2"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-lab/internal/types"
)

// Strategy turns a random draw into an optional trade signal.
type Strategy interface {
	// Name identifies the strategy in logs and summaries.
	Name() string
	// GenerateData draws the next synthetic data point.
	GenerateData(rng *rand.Rand) float64
	// CreateSignal returns None when the data point does not warrant a trade.
	CreateSignal(value float64) optional.Option[types.Signal]
}

const (
	DefaultThreshold        = 0.5
	DefaultEntry            = 100.0
	DefaultTakeProfitOffset = 10.0
	DefaultStopLossOffset   = 10.0
)

// RandomThresholdStrategy buys when the draw is above Threshold and sells otherwise.
// Take profit and stop loss sit at fixed offsets around a fixed entry.
type RandomThresholdStrategy struct {
	Threshold        float64
	Entry            float64
	TakeProfitOffset float64
	StopLossOffset   float64
}

func NewRandomThresholdStrategy() *RandomThresholdStrategy {
	return &RandomThresholdStrategy{
		Threshold:        DefaultThreshold,
		Entry:            DefaultEntry,
		TakeProfitOffset: DefaultTakeProfitOffset,
		StopLossOffset:   DefaultStopLossOffset,
	}
}

func (s *RandomThresholdStrategy) Name() string {
	return "RandomThresholdStrategy"
}

// GenerateData returns a uniform draw in [0, 1).
func (s *RandomThresholdStrategy) GenerateData(rng *rand.Rand) float64 {
	return rng.Float64()
}

func (s *RandomThresholdStrategy) CreateSignal(value float64) optional.Option[types.Signal] {
	if value > s.Threshold {
		return optional.Some(types.Signal{
			Side:       types.PurchaseTypeBuy,
			Entry:      s.Entry,
			TakeProfit: s.Entry + s.TakeProfitOffset,
			StopLoss:   s.Entry - s.StopLossOffset,
		})
	}

	return optional.Some(types.Signal{
		Side:       types.PurchaseTypeSell,
		Entry:      s.Entry,
		TakeProfit: s.Entry - s.TakeProfitOffset,
		StopLoss:   s.Entry + s.StopLossOffset,
	})
}
