package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/rxtech-lab/argo-lab/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestSimulateTrade(t *testing.T) {
	buy := types.Signal{Side: types.PurchaseTypeBuy, Entry: 100, TakeProfit: 110, StopLoss: 90}
	sell := types.Signal{Side: types.PurchaseTypeSell, Entry: 100, TakeProfit: 90, StopLoss: 110}

	tests := []struct {
		name       string
		signal     types.Signal
		finalPrice float64
		expected   float64
	}{
		{name: "buy hits take profit", signal: buy, finalPrice: 112, expected: 10},
		{name: "buy exactly at take profit", signal: buy, finalPrice: 110, expected: 10},
		{name: "buy hits stop loss", signal: buy, finalPrice: 85, expected: -10},
		{name: "buy exactly at stop loss", signal: buy, finalPrice: 90, expected: -10},
		{name: "buy in between", signal: buy, finalPrice: 104, expected: 0},
		{name: "sell hits take profit", signal: sell, finalPrice: 88, expected: 10},
		{name: "sell exactly at take profit", signal: sell, finalPrice: 90, expected: 10},
		{name: "sell hits stop loss", signal: sell, finalPrice: 111, expected: -10},
		{name: "sell in between", signal: sell, finalPrice: 97, expected: 0},
		{
			name:       "asymmetric brackets",
			signal:     types.Signal{Side: types.PurchaseTypeBuy, Entry: 50, TakeProfit: 65, StopLoss: 45},
			finalPrice: 44,
			expected:   -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SimulateTrade(tt.signal, tt.finalPrice))
		})
	}
}

func TestSampleFinalPriceStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	priceRange := PriceRange{Low: 0.95, High: 1.05}

	for range 1000 {
		price := SampleFinalPrice(rng, 100, priceRange)
		assert.GreaterOrEqual(t, price, 95.0)
		assert.Less(t, price, 105.0+1e-9)
	}
}

func TestSampleFinalPriceDegenerateRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	assert.InDelta(t, 120.0, SampleFinalPrice(rng, 100, PriceRange{Low: 1.2, High: 1.2}), 1e-9)
}

// With the default ±5% range the ±10 brackets are unreachable, so every trade settles flat.
func TestDefaultRangeNeverReachesBrackets(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	config := DefaultConfig()
	buy := types.Signal{Side: types.PurchaseTypeBuy, Entry: 100, TakeProfit: 110, StopLoss: 90}
	sell := types.Signal{Side: types.PurchaseTypeSell, Entry: 100, TakeProfit: 90, StopLoss: 110}

	for range 500 {
		assert.Equal(t, 0.0, SimulateTrade(buy, SampleFinalPrice(rng, 100, config.PriceRange)))
		assert.Equal(t, 0.0, SimulateTrade(sell, SampleFinalPrice(rng, 100, config.PriceRange)))
	}
}
