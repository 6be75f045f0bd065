package engine

import (
	"math"
	"math/rand/v2"

	"github.com/rxtech-lab/argo-lab/internal/types"
)

// SampleFinalPrice draws entry × U(low, high). Both sides use the same distribution.
func SampleFinalPrice(rng *rand.Rand, entry float64, priceRange PriceRange) float64 {
	multiplier := priceRange.Low + rng.Float64()*(priceRange.High-priceRange.Low)

	return entry * multiplier
}

// SimulateTrade settles a signal at finalPrice.
//
// Reaching take profit pays |TP - entry|, reaching stop loss costs |entry - SL|, anything
// in between settles flat. Take profit is checked first.
func SimulateTrade(signal types.Signal, finalPrice float64) float64 {
	switch {
	case signal.Side == types.PurchaseTypeBuy && finalPrice >= signal.TakeProfit,
		signal.Side == types.PurchaseTypeSell && finalPrice <= signal.TakeProfit:
		return math.Abs(signal.TakeProfit - signal.Entry)
	case signal.Side == types.PurchaseTypeBuy && finalPrice <= signal.StopLoss,
		signal.Side == types.PurchaseTypeSell && finalPrice >= signal.StopLoss:
		return -math.Abs(signal.Entry - signal.StopLoss)
	default:
		return 0
	}
}
