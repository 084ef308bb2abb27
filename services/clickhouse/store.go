// Package clickhouse persists candles and computed levels in ClickHouse
// over the native protocol, with ReplacingMergeTree dedup guarantees.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	clickhouse "github.com/ClickHouse/clickhouse-go/v2"
	chproto "github.com/ClickHouse/clickhouse-go/v2/lib/proto"
	"github.com/shopspring/decimal"

	"github.com/consigcody94/golden-ratio-compendium/services/levels"
	"github.com/consigcody94/golden-ratio-compendium/services/market"
)

const (
	candlesTable = "candles"
	levelsTable  = "fib_levels"
)

// Config via env
type Config struct {
	Addr     string
	Database string
	Username string
	Password string
}

func mustEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// FromEnv builds a Config from CLICKHOUSE_* variables with local defaults.
func FromEnv() Config {
	return Config{
		Addr:     mustEnv("CLICKHOUSE_ADDR", "localhost:9000"),
		Database: mustEnv("CLICKHOUSE_DB", "goldenratio"),
		Username: mustEnv("CLICKHOUSE_USER", "default"),
		Password: mustEnv("CLICKHOUSE_PASSWORD", ""),
	}
}

// Store wraps a native-protocol connection for candle and level persistence.
type Store struct {
	conn     clickhouse.Conn
	database string
}

// Open connects and pings.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": uint64(0),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open clickhouse: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}
	return &Store{conn: conn, database: cfg.Database}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.conn.Close()
}

// EnsureSchema creates the database and tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	dbDDL := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", s.database)
	if err := s.conn.Exec(ctx, dbDDL); err != nil {
		return fmt.Errorf("create database: %w", err)
	}

	candlesDDL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.%s (
			symbol String,
			open_time_ms UInt64,
			open Float64,
			high Float64,
			low Float64,
			close Float64,
			volume Float64,
			ingested_at DateTime64(3),
			version UInt64
		)
		ENGINE = ReplacingMergeTree(version)
		ORDER BY (symbol, open_time_ms)
		SETTINGS index_granularity = 8192
	`, s.database, candlesTable)
	if err := s.conn.Exec(ctx, candlesDDL); err != nil {
		return fmt.Errorf("create candles table: %w", err)
	}

	levelsDDL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.%s (
			scan_id String,
			symbol String,
			kind LowCardinality(String),
			label String,
			ratio Float64,
			price Float64,
			trend LowCardinality(String),
			swing_high Float64,
			swing_low Float64,
			created_at DateTime64(3),
			version UInt64
		)
		ENGINE = ReplacingMergeTree(version)
		ORDER BY (scan_id, symbol, kind, label)
		SETTINGS index_granularity = 8192
	`, s.database, levelsTable)
	if err := s.conn.Exec(ctx, levelsDDL); err != nil {
		return fmt.Errorf("create levels table: %w", err)
	}
	return nil
}

// InsertCandles writes one deduplicated batch of candles for a symbol.
func (s *Store) InsertCandles(ctx context.Context, symbol string, candles []market.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	batch, err := s.conn.PrepareBatch(ctx, fmt.Sprintf(`INSERT INTO %s.%s SETTINGS insert_deduplicate=1`, s.database, candlesTable))
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	now := time.Now().UTC()
	ver := uint64(now.UnixNano()) // same for this batch; ReplacingMergeTree keeps last

	for _, c := range candles {
		if err := batch.Append(
			symbol,
			uint64(c.Timestamp),
			c.Open.InexactFloat64(),
			c.High.InexactFloat64(),
			c.Low.InexactFloat64(),
			c.Close.InexactFloat64(),
			c.Volume.InexactFloat64(),
			now,
			ver,
		); err != nil {
			return fmt.Errorf("batch append: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("batch send: %w", err)
	}
	return nil
}

// Candles returns the most recent limit candles for a symbol in ascending
// timestamp order. Satisfies the scanner's CandleSource.
func (s *Store) Candles(ctx context.Context, symbol string, limit int) ([]market.Candle, error) {
	if limit <= 0 {
		limit = 500
	}
	q := fmt.Sprintf(`
		SELECT open_time_ms, open, high, low, close, volume
		FROM %s.%s
		WHERE symbol = ?
		ORDER BY open_time_ms DESC
		LIMIT %d
	`, s.database, candlesTable, limit)

	rows, err := s.conn.Query(ctx, q, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query candles: %w", err)
	}
	defer rows.Close()

	var out []market.Candle
	for rows.Next() {
		var (
			ts                       uint64
			open, high, low, cl, vol float64
		)
		if err := rows.Scan(&ts, &open, &high, &low, &cl, &vol); err != nil {
			return nil, fmt.Errorf("failed to scan candle: %w", err)
		}
		out = append(out, market.Candle{
			Timestamp: int64(ts),
			Open:      decimal.NewFromFloat(open),
			High:      decimal.NewFromFloat(high),
			Low:       decimal.NewFromFloat(low),
			Close:     decimal.NewFromFloat(cl),
			Volume:    decimal.NewFromFloat(vol),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// query is newest-first; flip to ascending
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// InsertLevels persists a full analysis under a scan ID. Retracements and
// extensions keep their ratio labels; the golden pocket is stored as three
// rows labeled upper, lower, and midpoint.
func (s *Store) InsertLevels(ctx context.Context, scanID, symbol string, a levels.Analysis) error {
	batch, err := s.conn.PrepareBatch(ctx, fmt.Sprintf(`INSERT INTO %s.%s SETTINGS insert_deduplicate=1`, s.database, levelsTable))
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	now := time.Now().UTC()
	ver := uint64(now.UnixNano())

	appendRow := func(kind, label string, ratio, price float64) error {
		return batch.Append(
			scanID,
			symbol,
			kind,
			label,
			ratio,
			price,
			a.Trend.String(),
			a.High.InexactFloat64(),
			a.Low.InexactFloat64(),
			now,
			ver,
		)
	}

	for _, lvl := range a.Retracements {
		if err := appendRow("retracement", lvl.Label, lvl.Ratio.InexactFloat64(), lvl.Price.InexactFloat64()); err != nil {
			return fmt.Errorf("batch append: %w", err)
		}
	}
	for _, lvl := range a.Extensions {
		if err := appendRow("extension", lvl.Label, lvl.Ratio.InexactFloat64(), lvl.Price.InexactFloat64()); err != nil {
			return fmt.Errorf("batch append: %w", err)
		}
	}
	pocketRows := []struct {
		label string
		ratio float64
		price decimal.Decimal
	}{
		{"upper", 0.618, a.Pocket.Upper},
		{"lower", 0.65, a.Pocket.Lower},
		{"midpoint", 0.634, a.Pocket.Midpoint},
	}
	for _, row := range pocketRows {
		if err := appendRow("pocket", row.label, row.ratio, row.price.InexactFloat64()); err != nil {
			return fmt.Errorf("batch append: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("batch send: %w", err)
	}
	return nil
}

// ExplainError renders ClickHouse exceptions with their server code and name.
func ExplainError(err error) string {
	var ex *chproto.Exception
	if errors.As(err, &ex) {
		return fmt.Sprintf("ClickHouse [%d] %s (%s)", ex.Code, ex.Message, ex.Name)
	}
	return err.Error()
}
