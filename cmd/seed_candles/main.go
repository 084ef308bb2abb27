// seed_candles generates deterministic synthetic OHLCV series from seeded
// simplex noise and lands them as CSV files or ClickHouse rows. The same
// seed always produces the same series.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/shopspring/decimal"

	chstore "github.com/consigcody94/golden-ratio-compendium/services/clickhouse"
	"github.com/consigcody94/golden-ratio-compendium/services/market"
)

func main() {
	symbolsFlag := flag.String("symbols", "BTCUSDT,ETHUSDT", "Comma-separated symbols")
	count := flag.Int("candles", 1000, "Candles per symbol")
	interval := flag.Duration("interval", 5*time.Minute, "Candle interval")
	seed := flag.Int64("seed", 42, "Noise seed")
	base := flag.Float64("base", 30000, "Starting price")
	outDir := flag.String("out-dir", "./data", "Directory for CSV output")
	store := flag.Bool("store", false, "Insert into ClickHouse instead of writing CSV")
	flag.Parse()

	symbols := strings.Split(*symbolsFlag, ",")
	for i := range symbols {
		symbols[i] = strings.TrimSpace(symbols[i])
	}

	ctx := context.Background()
	var st *chstore.Store
	if *store {
		var err error
		st, err = chstore.Open(ctx, chstore.FromEnv())
		if err != nil {
			log.Fatalf("clickhouse: %v", chstore.ExplainError(err))
		}
		defer st.Close()
		if err := st.EnsureSchema(ctx); err != nil {
			log.Fatalf("clickhouse schema: %v", chstore.ExplainError(err))
		}
	} else {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			log.Fatalf("mkdir %s: %v", *outDir, err)
		}
	}

	end := time.Now().UTC().Truncate(*interval)
	start := end.Add(-time.Duration(*count) * *interval)

	for i, sym := range symbols {
		// distinct but reproducible noise layer per symbol
		candles := generate(*seed+int64(i)*7919, *base, *count, start, *interval)

		if st != nil {
			if err := st.InsertCandles(ctx, sym, candles); err != nil {
				log.Fatalf("insert %s: %v", sym, chstore.ExplainError(err))
			}
			fmt.Printf("==> inserted %d candles for %s\n", len(candles), sym)
			continue
		}

		path := filepath.Join(*outDir, fmt.Sprintf("%s.csv", sym))
		if err := writeCSV(path, candles); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		fmt.Printf("==> wrote %d candles to %s\n", len(candles), path)
	}
	fmt.Println("✅ Done.")
}

// generate walks a price path from layered noise: a slow drift component, a
// faster wobble, and an independent layer for intrabar range and volume.
func generate(seed int64, base float64, n int, start time.Time, interval time.Duration) []market.Candle {
	trendNoise := opensimplex.NewNormalized(seed)
	rangeNoise := opensimplex.NewNormalized(seed + 1)

	candles := make([]market.Candle, 0, n)
	price := base
	for i := 0; i < n; i++ {
		drift := trendNoise.Eval2(float64(i)*0.003, 0)*2 - 1
		wobble := trendNoise.Eval2(float64(i)*0.05, 100)*2 - 1

		open := price
		close := open * (1 + 0.01*drift + 0.004*wobble)

		span := rangeNoise.Eval2(float64(i)*0.05, 200)
		spread := math.Max(open, close) * 0.002 * (0.5 + span)
		high := math.Max(open, close) + spread
		low := math.Min(open, close) - spread
		volume := 10 + 990*span

		candles = append(candles, market.Candle{
			Timestamp: start.Add(time.Duration(i) * interval).UnixMilli(),
			Open:      decimal.NewFromFloat(open).Round(4),
			High:      decimal.NewFromFloat(high).Round(4),
			Low:       decimal.NewFromFloat(low).Round(4),
			Close:     decimal.NewFromFloat(close).Round(4),
			Volume:    decimal.NewFromFloat(volume).Round(4),
		})
		price = close
	}
	return candles
}

func writeCSV(path string, candles []market.Candle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	w.WriteString("timestamp,open,high,low,close,volume\n")
	for _, c := range candles {
		fmt.Fprintf(w, "%d,%s,%s,%s,%s,%s\n", c.Timestamp, c.Open, c.High, c.Low, c.Close, c.Volume)
	}
	return w.Flush()
}
