// Package market provides OHLCV candle ingestion, validation, resampling,
// and swing detection for the level-analysis services.
package market

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Candle is a single OHLCV bar keyed by its open time in Unix milliseconds.
type Candle struct {
	Timestamp int64           `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

// Time returns the candle open time in UTC.
func (c Candle) Time() time.Time {
	return time.UnixMilli(c.Timestamp).UTC()
}

// LoadCSV loads candles from a CSV file with columns
// timestamp,open,high,low,close,volume (volume optional). Exports from
// spreadsheet tools are tolerated: UTF-16 input is decoded when a BOM is
// present, quoted fields are accepted, a header row is skipped, and rows
// that fail to parse are dropped. The result is sorted by timestamp with
// duplicate timestamps deduplicated keeping the last row.
func LoadCSV(path string) ([]Candle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	// detect UTF-16 BOM; if present, decode to UTF-8
	if b, _ := br.Peek(2); len(b) >= 2 && ((b[0] == 0xFF && b[1] == 0xFE) || (b[0] == 0xFE && b[1] == 0xFF)) {
		if _, err := file.Seek(0, 0); err != nil {
			return nil, fmt.Errorf("failed to rewind %s: %w", path, err)
		}
		tr := transform.NewReader(file, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
		br = bufio.NewReader(tr)
	}

	// CSV reader handles quoted fields robustly
	r := csv.NewReader(br)
	r.ReuseRecord = false
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	candles := make([]Candle, 0, 1_000)
	lineIndex := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			lineIndex++
			continue
		}
		if len(rec) < 5 {
			lineIndex++
			continue
		}

		// Skip header if present
		if lineIndex == 0 && (strings.EqualFold(rec[0], "timestamp") || strings.EqualFold(rec[0], "timestamp_ms")) {
			lineIndex++
			continue
		}

		tsStr := strings.TrimSpace(rec[0])
		tsStr = strings.TrimPrefix(tsStr, "\uFEFF")
		timestamp, err := strconv.ParseInt(tsStr, 10, 64)
		if err != nil {
			lineIndex++
			continue
		}

		open, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil {
			lineIndex++
			continue
		}
		high, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			lineIndex++
			continue
		}
		low, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
		if err != nil {
			lineIndex++
			continue
		}
		close, err := decimal.NewFromString(strings.TrimSpace(rec[4]))
		if err != nil {
			lineIndex++
			continue
		}
		volume := decimal.Zero
		if len(rec) >= 6 {
			if v, err := decimal.NewFromString(strings.TrimSpace(rec[5])); err == nil {
				volume = v
			}
		}

		candles = append(candles, Candle{
			Timestamp: timestamp,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    volume,
		})
		lineIndex++
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("no candles parsed from %s", path)
	}

	// Sort by timestamp and deduplicate identical timestamps (keep last)
	sort.SliceStable(candles, func(i, j int) bool { return candles[i].Timestamp < candles[j].Timestamp })
	uniq := make([]Candle, 0, len(candles))
	var lastTs int64 = -1
	for _, c := range candles {
		if c.Timestamp == lastTs {
			uniq[len(uniq)-1] = c
			continue
		}
		uniq = append(uniq, c)
		lastTs = c.Timestamp
	}
	return uniq, nil
}

// DetectInterval returns the most common delta between consecutive candles,
// sampling at most the first 2000 of them. Ties go to the shorter delta.
// It returns 0 when fewer than two candles are given.
func DetectInterval(candles []Candle) time.Duration {
	if len(candles) < 2 {
		return 0
	}
	deltaCount := make(map[int64]int)
	limit := len(candles)
	if limit > 2000 {
		limit = 2000
	}
	for i := 1; i < limit; i++ {
		d := candles[i].Timestamp - candles[i-1].Timestamp
		if d > 0 {
			deltaCount[d]++
		}
	}
	var bestDelta int64
	bestCount := 0
	for d, c := range deltaCount {
		if c > bestCount || (c == bestCount && (bestDelta == 0 || d < bestDelta)) {
			bestCount = c
			bestDelta = d
		}
	}
	return time.Duration(bestDelta) * time.Millisecond
}
