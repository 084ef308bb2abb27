package market

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/consigcody94/golden-ratio-compendium/services/levels"
)

// Swing is the dominant price range of a series: the highest high and
// lowest low over a trailing window, with the trend direction inferred
// from which extreme printed first.
type Swing struct {
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	HighIndex int             `json:"high_index"`
	LowIndex  int             `json:"low_index"`
	Trend     levels.Trend    `json:"trend"`
}

// Range returns the swing height (high minus low).
func (s Swing) Range() decimal.Decimal {
	return s.High.Sub(s.Low)
}

// DetectSwing finds the swing over the trailing lookback candles. The swing
// trends up when the low printed before the high, down otherwise. A lookback
// longer than the series uses the whole series.
func DetectSwing(candles []Candle, lookback int) (Swing, error) {
	if len(candles) == 0 {
		return Swing{}, fmt.Errorf("no candles loaded")
	}
	if lookback < 2 {
		return Swing{}, fmt.Errorf("lookback must be at least 2, got %d", lookback)
	}

	start := len(candles) - lookback
	if start < 0 {
		start = 0
	}
	swing := Swing{
		High:      candles[start].High,
		Low:       candles[start].Low,
		HighIndex: start,
		LowIndex:  start,
	}
	for i := start + 1; i < len(candles); i++ {
		if candles[i].High.GreaterThan(swing.High) {
			swing.High = candles[i].High
			swing.HighIndex = i
		}
		if candles[i].Low.LessThan(swing.Low) {
			swing.Low = candles[i].Low
			swing.LowIndex = i
		}
	}

	swing.Trend = levels.TrendUp
	if swing.HighIndex < swing.LowIndex {
		swing.Trend = levels.TrendDown
	}
	return swing, nil
}
