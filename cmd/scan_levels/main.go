// scan_levels runs a single-symbol level scan from a candle CSV or from
// ClickHouse: swing detection, retracement/extension/pocket computation, and
// optional CSV, Arrow, or ClickHouse output.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/consigcody94/golden-ratio-compendium/services/arrowexport"
	chstore "github.com/consigcody94/golden-ratio-compendium/services/clickhouse"
	"github.com/consigcody94/golden-ratio-compendium/services/levels"
	"github.com/consigcody94/golden-ratio-compendium/services/market"
)

func main() {
	csvPath := flag.String("csv", "", "Candle CSV path (when empty, candles come from ClickHouse)")
	symbol := flag.String("symbol", "BTCUSDT", "Symbol to scan")
	lookback := flag.Int("lookback", 100, "Swing lookback in candles")
	limit := flag.Int("limit", 500, "Candles to pull from ClickHouse")
	resample := flag.Duration("resample", 0, "Resample candles to this interval before scanning (0 = off)")
	outCSV := flag.String("out-csv", "", "Write levels to this CSV path")
	outArrow := flag.String("out-arrow", "", "Write levels to this Arrow IPC path")
	store := flag.Bool("store", false, "Store levels in ClickHouse")
	flag.Parse()

	ctx := context.Background()

	var (
		candles []market.Candle
		err     error
		st      *chstore.Store
	)
	if *csvPath != "" {
		candles, err = market.LoadCSV(*csvPath)
		if err != nil {
			log.Fatalf("load %s: %v", *csvPath, err)
		}
	} else {
		st, err = chstore.Open(ctx, chstore.FromEnv())
		if err != nil {
			log.Fatalf("clickhouse: %v", chstore.ExplainError(err))
		}
		defer st.Close()
		candles, err = st.Candles(ctx, *symbol, *limit)
		if err != nil {
			log.Fatalf("query candles: %v", chstore.ExplainError(err))
		}
	}

	if *resample > 0 {
		candles, err = market.Resample(candles, *resample)
		if err != nil {
			log.Fatalf("resample: %v", err)
		}
	}
	if err := market.Validate(candles, 0); err != nil {
		log.Fatalf("data validation failed: %v", err)
	}

	swing, err := market.DetectSwing(candles, *lookback)
	if err != nil {
		log.Fatalf("swing detection: %v", err)
	}
	analysis, err := levels.AllLevels(swing.High, swing.Low, swing.Trend)
	if err != nil {
		log.Fatalf("levels: %v", err)
	}

	fmt.Printf("==> %s | %d candles | swing %s -> %s (%s)\n",
		*symbol, len(candles), swing.Low.StringFixed(4), swing.High.StringFixed(4), swing.Trend)
	printAnalysis(analysis, candles[len(candles)-1].Close)

	if *outCSV != "" {
		if err := writeLevelsCSV(*outCSV, analysis); err != nil {
			log.Fatalf("write %s: %v", *outCSV, err)
		}
		fmt.Printf("==> wrote levels to %s\n", *outCSV)
	}
	if *outArrow != "" {
		data, err := arrowexport.EncodeIPC(arrowexport.LevelsRecord(*symbol, analysis))
		if err != nil {
			log.Fatalf("encode arrow: %v", err)
		}
		if err := os.WriteFile(*outArrow, data, 0o644); err != nil {
			log.Fatalf("write %s: %v", *outArrow, err)
		}
		fmt.Printf("==> wrote %d bytes of Arrow IPC to %s\n", len(data), *outArrow)
	}
	if *store {
		if st == nil {
			st, err = chstore.Open(ctx, chstore.FromEnv())
			if err != nil {
				log.Fatalf("clickhouse: %v", chstore.ExplainError(err))
			}
			defer st.Close()
		}
		if err := st.EnsureSchema(ctx); err != nil {
			log.Fatalf("clickhouse schema: %v", chstore.ExplainError(err))
		}
		scanID := uuid.New().String()
		if err := st.InsertLevels(ctx, scanID, *symbol, analysis); err != nil {
			log.Fatalf("insert levels: %v", chstore.ExplainError(err))
		}
		fmt.Printf("==> stored levels under scan %s\n", scanID)
	}
	fmt.Println("✅ Done.")
}

func printAnalysis(a levels.Analysis, lastClose decimal.Decimal) {
	fmt.Println("Retracements:")
	for _, lvl := range a.Retracements {
		fmt.Printf("  %7s  %14s\n", lvl.Label, lvl.Price.StringFixed(4))
	}
	fmt.Println("Extensions:")
	for _, lvl := range a.Extensions {
		fmt.Printf("  %7s  %14s\n", lvl.Label, lvl.Price.StringFixed(4))
	}
	fmt.Printf("Golden pocket: %s to %s (mid %s)\n",
		a.Pocket.Lower.StringFixed(4), a.Pocket.Upper.StringFixed(4), a.Pocket.Midpoint.StringFixed(4))

	if nearest, dist, ok := levels.Nearest(lastClose, a.Retracements); ok {
		fmt.Printf("Last close %s | nearest %s at %s (distance %s)\n",
			lastClose.StringFixed(4), nearest.Label, nearest.Price.StringFixed(4), dist.StringFixed(4))
	}
	if a.Pocket.Contains(lastClose) {
		fmt.Println("Last close is inside the golden pocket")
	}
}

func writeLevelsCSV(path string, a levels.Analysis) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	w.WriteString("kind,label,ratio,price\n")
	for _, lvl := range a.Retracements {
		fmt.Fprintf(w, "retracement,%s,%s,%s\n", lvl.Label, lvl.Ratio, lvl.Price)
	}
	for _, lvl := range a.Extensions {
		fmt.Fprintf(w, "extension,%s,%s,%s\n", lvl.Label, lvl.Ratio, lvl.Price)
	}
	fmt.Fprintf(w, "pocket,upper,0.618,%s\n", a.Pocket.Upper)
	fmt.Fprintf(w, "pocket,lower,0.65,%s\n", a.Pocket.Lower)
	fmt.Fprintf(w, "pocket,midpoint,0.634,%s\n", a.Pocket.Midpoint)
	return w.Flush()
}
