package market

import (
	"fmt"
	"sort"
	"time"
)

// Resample aggregates candles into buckets of the given interval, aligned
// to the Unix epoch. Within a bucket the open is the first candle's open,
// high is the max, low is the min, close is the last close, and volume is
// summed. Input order does not matter.
func Resample(candles []Candle, interval time.Duration) ([]Candle, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("no candles to resample")
	}
	bucketMs := interval.Milliseconds()
	if bucketMs <= 0 {
		return nil, fmt.Errorf("resample interval must be positive, got %s", interval)
	}

	sorted := make([]Candle, len(candles))
	copy(sorted, candles)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	buckets := make(map[int64]*Candle)
	order := make([]int64, 0)
	for _, c := range sorted {
		bucket := (c.Timestamp / bucketMs) * bucketMs
		agg, ok := buckets[bucket]
		if !ok {
			nc := c
			nc.Timestamp = bucket
			buckets[bucket] = &nc
			order = append(order, bucket)
			continue
		}
		// open is first; high max, low min, close last, volume sum
		if c.High.GreaterThan(agg.High) {
			agg.High = c.High
		}
		if c.Low.LessThan(agg.Low) {
			agg.Low = c.Low
		}
		agg.Close = c.Close
		agg.Volume = agg.Volume.Add(c.Volume)
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	out := make([]Candle, 0, len(order))
	for _, ts := range order {
		out = append(out, *buckets[ts])
	}
	return out, nil
}
