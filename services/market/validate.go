package market

import (
	"fmt"
	"log"
	"time"
)

// Validate performs data quality checks on a candle series. Structural
// problems fail hard: an empty series, non-monotonic timestamps, a high
// below its low, or a non-positive price. Gaps and cadence misalignment
// are logged as warnings since both occur in real market data. A zero
// interval means detect it from the series.
func Validate(candles []Candle, interval time.Duration) error {
	if len(candles) == 0 {
		return fmt.Errorf("no candles loaded")
	}
	intervalMs := interval.Milliseconds()
	if intervalMs <= 0 {
		intervalMs = DetectInterval(candles).Milliseconds()
	}

	var badOrder, misaligned, gaps int
	for i, c := range candles {
		if !c.Open.IsPositive() || !c.High.IsPositive() || !c.Low.IsPositive() || !c.Close.IsPositive() {
			return fmt.Errorf("candle %d at %s has a non-positive price", i, c.Time().Format("2006-01-02 15:04:05"))
		}
		if c.High.LessThan(c.Low) {
			return fmt.Errorf("candle %d at %s has high %s below low %s", i, c.Time().Format("2006-01-02 15:04:05"), c.High, c.Low)
		}
		if intervalMs > 0 && c.Timestamp%intervalMs != 0 {
			misaligned++
		}
		if i == 0 {
			continue
		}
		delta := c.Timestamp - candles[i-1].Timestamp
		switch {
		case delta <= 0:
			badOrder++
		case intervalMs > 0 && delta > intervalMs:
			gaps++
		}
	}

	if badOrder > 0 {
		return fmt.Errorf("%d candles have non-monotonic timestamps (out-of-order data)", badOrder)
	}
	if misaligned > 0 {
		log.Printf("WARNING: %d candles have timestamps not aligned to %dms cadence", misaligned, intervalMs)
	}
	if gaps > 0 {
		log.Printf("WARNING: %d gaps detected in data (this is normal for real market data)", gaps)
	}
	return nil
}
