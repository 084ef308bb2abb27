package scanner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/consigcody94/golden-ratio-compendium/services/levels"
	"github.com/consigcody94/golden-ratio-compendium/services/market"
)

func cnd(ts int64, o, h, l, c string) market.Candle {
	return market.Candle{
		Timestamp: ts,
		Open:      decimal.RequireFromString(o),
		High:      decimal.RequireFromString(h),
		Low:       decimal.RequireFromString(l),
		Close:     decimal.RequireFromString(c),
		Volume:    decimal.NewFromInt(1),
	}
}

type fakeSource struct {
	candles map[string][]market.Candle
}

func (f *fakeSource) Candles(ctx context.Context, symbol string, limit int) ([]market.Candle, error) {
	cs, ok := f.candles[symbol]
	if !ok {
		return nil, fmt.Errorf("unknown symbol %s", symbol)
	}
	return cs, nil
}

func newTestService() *Service {
	src := &fakeSource{candles: map[string][]market.Candle{
		// uptrend swing 100 -> 200, last close well above the pocket
		"BTCUSDT": {
			cnd(0, "105", "110", "100", "108"),
			cnd(60000, "108", "150", "104", "148"),
			cnd(120000, "148", "200", "140", "190"),
		},
		// same swing but the last close sits inside the golden pocket
		"ETHUSDT": {
			cnd(0, "105", "110", "100", "108"),
			cnd(60000, "108", "200", "104", "190"),
			cnd(120000, "190", "195", "130", "137"),
		},
	}}
	return New(Config{Workers: 2, SwingLookback: 50}, src, zap.NewNop())
}

func TestScanSymbol(t *testing.T) {
	s := newTestService()

	res, err := s.ScanSymbol(context.Background(), "BTCUSDT", 50)
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", res.Symbol)
	assert.Equal(t, levels.TrendUp, res.Swing.Trend)
	assert.True(t, res.Swing.High.Equal(decimal.RequireFromString("200")))
	assert.True(t, res.Swing.Low.Equal(decimal.RequireFromString("100")))
	assert.True(t, res.LastClose.Equal(decimal.RequireFromString("190")))
	assert.Equal(t, "0.0%", res.NearestLabel)
	assert.True(t, res.NearestDistance.Equal(decimal.RequireFromString("10")))
	assert.False(t, res.InGoldenPocket)
}

func TestScanSymbolGoldenPocket(t *testing.T) {
	s := newTestService()

	res, err := s.ScanSymbol(context.Background(), "ETHUSDT", 50)
	require.NoError(t, err)
	assert.True(t, res.InGoldenPocket)
	assert.Equal(t, "61.8%", res.NearestLabel)
	assert.True(t, res.Analysis.Pocket.Upper.Equal(decimal.RequireFromString("138.2")))
	assert.True(t, res.Analysis.Pocket.Lower.Equal(decimal.RequireFromString("135")))
}

func TestScanSymbolUnknown(t *testing.T) {
	s := newTestService()

	_, err := s.ScanSymbol(context.Background(), "NOPE", 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")
}

func TestSubmitAndGet(t *testing.T) {
	s := newTestService()

	id, err := s.Submit(ScanRequest{Symbols: []string{"ETHUSDT", "BTCUSDT", "NOPE"}})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Eventually(t, func() bool {
		job, ok := s.Get(id)
		return ok && job.Status == JobCompleted
	}, 2*time.Second, 10*time.Millisecond)

	job, ok := s.Get(id)
	require.True(t, ok)
	require.Len(t, job.Results, 3)

	// results sorted by symbol
	assert.Equal(t, "BTCUSDT", job.Results[0].Symbol)
	assert.Equal(t, "ETHUSDT", job.Results[1].Symbol)
	assert.Equal(t, "NOPE", job.Results[2].Symbol)

	assert.Empty(t, job.Results[0].Error)
	assert.Empty(t, job.Results[1].Error)
	assert.NotEmpty(t, job.Results[2].Error)
	assert.False(t, job.Completed.IsZero())

	stats := s.Stats()
	assert.Equal(t, 1, stats.Completed)
}

func TestSubmitEmpty(t *testing.T) {
	s := newTestService()
	_, err := s.Submit(ScanRequest{})
	require.Error(t, err)
}

func TestJobFailsWhenAllSymbolsFail(t *testing.T) {
	s := newTestService()

	id, err := s.Submit(ScanRequest{Symbols: []string{"NOPE", "ALSO_NOPE"}})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		job, ok := s.Get(id)
		return ok && job.Status == JobFailed
	}, 2*time.Second, 10*time.Millisecond)

	job, _ := s.Get(id)
	assert.Contains(t, job.Error, "all 2 symbols failed")
}

func TestGetUnknownJob(t *testing.T) {
	s := newTestService()
	_, ok := s.Get("no-such-job")
	assert.False(t, ok)
}

func TestJobStatusString(t *testing.T) {
	assert.Equal(t, "PENDING", JobPending.String())
	assert.Equal(t, "RUNNING", JobRunning.String())
	assert.Equal(t, "COMPLETED", JobCompleted.String())
	assert.Equal(t, "FAILED", JobFailed.String())
	assert.Equal(t, "UNKNOWN", JobStatus(42).String())
}
