// fetch_candles downloads Binance spot monthly klines, verifies their MD5
// checksums, and lands them as candle CSVs or ClickHouse rows. Months that
// fail to download are skipped with a warning so a partial range still lands.
package main

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	chstore "github.com/consigcody94/golden-ratio-compendium/services/clickhouse"
	"github.com/consigcody94/golden-ratio-compendium/services/market"
)

// Config via env
type cfg struct {
	Symbols  []string
	StartYM  string
	EndYM    string
	Interval string
	BaseURL  string
	OutDir   string
	Resample time.Duration
	Store    bool
}

func mustEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func loadCfg() cfg {
	syms := strings.Split(mustEnv("SYMBOLS", "BTCUSDT,ETHUSDT"), ",")
	for i := range syms {
		syms[i] = strings.TrimSpace(syms[i])
	}
	var resample time.Duration
	if v := mustEnv("RESAMPLE", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("parse RESAMPLE: %w", err))
		}
		resample = d
	}
	return cfg{
		Symbols:  syms,
		StartYM:  mustEnv("START_YM", "2024-01"),
		EndYM:    mustEnv("END_YM", "2024-06"),
		Interval: mustEnv("KLINE_INTERVAL", "1m"),
		BaseURL:  mustEnv("BASE_URL", "https://data.binance.vision"),
		OutDir:   mustEnv("OUT_DIR", "./data"),
		Resample: resample,
		Store:    strings.EqualFold(mustEnv("STORE_CLICKHOUSE", "false"), "true") || mustEnv("STORE_CLICKHOUSE", "false") == "1",
	}
}

func ymRange(startYM, endYM string) ([]time.Time, error) {
	start, err := time.Parse("2006-01", startYM)
	if err != nil {
		return nil, fmt.Errorf("parse START_YM: %w", err)
	}
	end, err := time.Parse("2006-01", endYM)
	if err != nil {
		return nil, fmt.Errorf("parse END_YM: %w", err)
	}
	if end.Before(start) {
		return nil, errors.New("END_YM < START_YM")
	}
	var out []time.Time
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	lim := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(lim) {
		out = append(out, cur)
		cur = cur.AddDate(0, 1, 0)
	}
	return out, nil
}

func main() {
	cfg := loadCfg()
	ctx := context.Background()

	months, err := ymRange(cfg.StartYM, cfg.EndYM)
	if err != nil {
		panic(err)
	}

	var st *chstore.Store
	if cfg.Store {
		st, err = chstore.Open(ctx, chstore.FromEnv())
		if err != nil {
			panic(fmt.Errorf("clickhouse: %s", chstore.ExplainError(err)))
		}
		defer st.Close()
		if err := st.EnsureSchema(ctx); err != nil {
			panic(fmt.Errorf("clickhouse schema: %s", chstore.ExplainError(err)))
		}
	} else {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			panic(err)
		}
	}

	for _, sym := range cfg.Symbols {
		fmt.Printf("==> %s | %s monthly klines %s to %s\n", sym, cfg.Interval, cfg.StartYM, cfg.EndYM)
		var all []market.Candle
		for _, m := range months {
			candles, err := fetchMonth(cfg, sym, m)
			if err != nil {
				// Non-fatal: continue other months/symbols
				fmt.Printf("WARN: %s %s fetch failed: %v\n", sym, m.Format("2006-01"), err)
				continue
			}
			all = append(all, candles...)
		}
		if len(all) == 0 {
			fmt.Println("    (empty)")
			continue
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Timestamp < all[j].Timestamp })

		if cfg.Resample > 0 {
			all, err = market.Resample(all, cfg.Resample)
			if err != nil {
				panic(err)
			}
		}

		if st != nil {
			if err := st.InsertCandles(ctx, sym, all); err != nil {
				panic(fmt.Errorf("insert %s: %s", sym, chstore.ExplainError(err)))
			}
			fmt.Printf("    inserted %d rows for %s\n", len(all), sym)
		} else {
			path := filepath.Join(cfg.OutDir, fmt.Sprintf("%s-%s.csv", sym, intervalLabel(cfg)))
			if err := writeCSV(path, all); err != nil {
				panic(err)
			}
			fmt.Printf("    wrote %d rows to %s\n", len(all), path)
		}
	}
	fmt.Println("✅ Done.")
}

func intervalLabel(c cfg) string {
	if c.Resample <= 0 {
		return c.Interval
	}
	s := c.Resample.String()
	s = strings.TrimSuffix(s, "0s")
	s = strings.TrimSuffix(s, "0m")
	return s
}

func fetchMonth(c cfg, symbol string, month time.Time) ([]market.Candle, error) {
	y := month.Year()
	mm := int(month.Month())
	zipName := fmt.Sprintf("%s-%s-%04d-%02d.zip", symbol, c.Interval, y, mm)
	zipURL := fmt.Sprintf("%s/data/spot/monthly/klines/%s/%s/%s", c.BaseURL, symbol, c.Interval, zipName)

	fmt.Printf("  -> %s\n", zipURL)
	data, err := httpGetRetry(zipURL, 3)
	if err != nil {
		return nil, err
	}

	if sum, err := httpGetRetry(zipURL+".CHECKSUM", 2); err != nil {
		fmt.Printf("    WARN: checksum fetch failed: %v. Continuing without verification\n", err)
	} else if err := verifyMD5(data, sum); err != nil {
		fmt.Printf("    WARN: %v\n", err)
	}

	return parseMonthZip(data)
}

func httpGetRetry(url string, attempts int) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		data, err = httpGet(url)
		if err == nil {
			return data, nil
		}
		if attempt < attempts {
			wait := time.Duration(attempt*attempt) * time.Second
			fmt.Printf("    retry %d/%d in %s: %v\n", attempt, attempts, wait, err)
			time.Sleep(wait)
		}
	}
	return nil, err
}

func httpGet(url string) ([]byte, error) {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("User-Agent", "GoldenRatio-CandlesFetcher/1.0")
	client := &http.Client{Timeout: 180 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// verifyMD5 checks data against a Binance checksum sidecar, whose first
// whitespace-separated field is the hex digest.
func verifyMD5(data, checksumFile []byte) error {
	parts := strings.Fields(string(checksumFile))
	if len(parts) == 0 {
		return errors.New("invalid checksum file format")
	}
	expected := strings.ToLower(parts[0])
	sum := md5.Sum(data)
	actual := hex.EncodeToString(sum[:])
	if actual != expected {
		return fmt.Errorf("checksum mismatch: got %s, want %s", actual, expected)
	}
	return nil
}

func parseMonthZip(data []byte) ([]market.Candle, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("zip open: %w", err)
	}
	var csvFile *zip.File
	for _, f := range zr.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			csvFile = f
			break
		}
	}
	if csvFile == nil {
		return nil, errors.New("no csv in zip")
	}
	rc, err := csvFile.Open()
	if err != nil {
		return nil, fmt.Errorf("zip entry open: %w", err)
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1
	// Binance columns:
	// 0 Open time(ms), 1 Open, 2 High, 3 Low, 4 Close, 5 Volume, 6 Close time(ms),
	// 7 Quote asset volume, 8 Number of trades, 9 Taker buy base, 10 Taker buy quote, 11 Ignore

	var out []market.Candle
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read: %w", err)
		}
		if len(rec) < 6 {
			continue
		}
		openMs, err := parseU64(rec[0])
		if err != nil {
			// header or malformed row
			continue
		}
		open, err1 := parseDec(rec[1])
		high, err2 := parseDec(rec[2])
		low, err3 := parseDec(rec[3])
		closep, err4 := parseDec(rec[4])
		vol, err5 := parseDec(rec[5])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			continue
		}
		out = append(out, market.Candle{
			Timestamp: int64(openMs),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closep,
			Volume:    vol,
		})
	}
	return out, nil
}

func parseU64(s string) (uint64, error) { return strconv.ParseUint(strings.TrimSpace(s), 10, 64) }

func parseDec(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
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
