package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-lab/pkg/errors"
)

// PurchaseType is the side of a signal.
type PurchaseType string

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

// Signal is a single simulated trade idea and, once simulated, its outcome.
type Signal struct {
	// Iteration is the loop index that produced the signal.
	Iteration int          `yaml:"iteration" json:"iteration"`
	Time      time.Time    `yaml:"time" json:"time"`
	Symbol    string       `yaml:"symbol" json:"symbol" validate:"required"`
	Side      PurchaseType `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	Entry     float64      `yaml:"entry" json:"entry" validate:"gt=0"`
	// TakeProfit sits above Entry for BUY and below it for SELL.
	TakeProfit float64 `yaml:"take_profit" json:"take_profit" validate:"gt=0"`
	// StopLoss sits below Entry for BUY and above it for SELL.
	StopLoss float64 `yaml:"stop_loss" json:"stop_loss" validate:"gt=0"`
	// ExitPrice is the sampled final price. Zero until simulated.
	ExitPrice float64 `yaml:"exit_price" json:"exit_price"`
	// Result is the realized PnL. Zero until simulated.
	Result float64 `yaml:"result" json:"result"`
}

// Validate checks field constraints and that TP and SL bracket the entry on the correct sides.
func (s *Signal) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSignal, "invalid signal", err)
	}

	switch s.Side {
	case PurchaseTypeBuy:
		if !(s.TakeProfit > s.Entry && s.Entry > s.StopLoss) {
			return errors.Newf(errors.ErrCodeInvalidSignal,
				"buy signal requires take profit > entry > stop loss, got tp=%.4f entry=%.4f sl=%.4f",
				s.TakeProfit, s.Entry, s.StopLoss)
		}
	case PurchaseTypeSell:
		if !(s.TakeProfit < s.Entry && s.Entry < s.StopLoss) {
			return errors.Newf(errors.ErrCodeInvalidSignal,
				"sell signal requires take profit < entry < stop loss, got tp=%.4f entry=%.4f sl=%.4f",
				s.TakeProfit, s.Entry, s.StopLoss)
		}
	}

	return nil
}

// IsWin reports a strictly positive result. A zero result is neither a win nor a loss.
func (s *Signal) IsWin() bool {
	return s.Result > 0
}

func (s *Signal) IsLoss() bool {
	return s.Result < 0
}
