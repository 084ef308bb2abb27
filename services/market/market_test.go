package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func mk(ts int64, o, h, l, c, v string) Candle {
	return Candle{
		Timestamp: ts,
		Open:      decimal.RequireFromString(o),
		High:      decimal.RequireFromString(h),
		Low:       decimal.RequireFromString(l),
		Close:     decimal.RequireFromString(c),
		Volume:    decimal.RequireFromString(v),
	}
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	csvData := "timestamp,open,high,low,close,volume\n" +
		"60000,100,110,95,105,12.5\n" +
		"0,99,101,98,100,10\n" +
		"garbage\n" +
		"120000,\"105\",\"112\",\"104\",\"111\",\"8\"\n" +
		"60000,101,111,96,106,13\n" +
		"180000,111,115,110,112\n"
	path := writeTemp(t, "candles.csv", []byte(csvData))

	candles, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, candles, 4)

	// sorted ascending
	assert.Equal(t, int64(0), candles[0].Timestamp)
	assert.Equal(t, int64(60000), candles[1].Timestamp)
	assert.Equal(t, int64(120000), candles[2].Timestamp)
	assert.Equal(t, int64(180000), candles[3].Timestamp)

	// duplicate timestamp keeps the last row
	assert.True(t, candles[1].Open.Equal(decimal.RequireFromString("101")))

	// quoted fields parse
	assert.True(t, candles[2].Close.Equal(decimal.RequireFromString("111")))

	// missing volume column defaults to zero
	assert.True(t, candles[3].Volume.IsZero())
}

func TestLoadCSVUTF16(t *testing.T) {
	body := "timestamp,open,high,low,close,volume\n60000,1,2,0.5,1.5,3\n"
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := enc.Bytes([]byte(body))
	require.NoError(t, err)
	path := writeTemp(t, "utf16.csv", encoded)

	candles, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.True(t, candles[0].Close.Equal(decimal.RequireFromString("1.5")))
}

func TestLoadCSVEmpty(t *testing.T) {
	path := writeTemp(t, "empty.csv", []byte("timestamp,open,high,low,close,volume\n"))
	_, err := LoadCSV(path)
	require.Error(t, err)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestDetectInterval(t *testing.T) {
	candles := []Candle{
		mk(0, "1", "1", "1", "1", "0"),
		mk(300000, "1", "1", "1", "1", "0"),
		mk(600000, "1", "1", "1", "1", "0"),
		mk(1200000, "1", "1", "1", "1", "0"), // gap
		mk(1500000, "1", "1", "1", "1", "0"),
	}
	assert.Equal(t, 5*time.Minute, DetectInterval(candles))
	assert.Equal(t, time.Duration(0), DetectInterval(candles[:1]))
}

func TestValidate(t *testing.T) {
	good := []Candle{
		mk(60000, "100", "110", "95", "105", "1"),
		mk(120000, "105", "112", "104", "111", "2"),
		mk(180000, "111", "115", "110", "112", "3"),
	}
	require.NoError(t, Validate(good, time.Minute))

	// gaps warn but do not fail
	gappy := []Candle{good[0], good[2]}
	require.NoError(t, Validate(gappy, time.Minute))
}

func TestValidateRejectsBadData(t *testing.T) {
	require.Error(t, Validate(nil, time.Minute))

	outOfOrder := []Candle{
		mk(120000, "100", "110", "95", "105", "1"),
		mk(60000, "100", "110", "95", "105", "1"),
	}
	err := Validate(outOfOrder, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-monotonic")

	inverted := []Candle{mk(60000, "100", "95", "110", "105", "1")}
	err = Validate(inverted, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below low")

	nonPositive := []Candle{mk(60000, "0", "110", "95", "105", "1")}
	err = Validate(nonPositive, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive")
}

func TestResample(t *testing.T) {
	oneMin := []Candle{
		mk(0, "10", "15", "9", "12", "1"),
		mk(60000, "12", "18", "11", "17", "2"),
		mk(120000, "17", "17", "8", "9", "3"),
		mk(300000, "9", "11", "7", "10", "4"),
	}

	fiveMin, err := Resample(oneMin, 5*time.Minute)
	require.NoError(t, err)
	require.Len(t, fiveMin, 2)

	first := fiveMin[0]
	assert.Equal(t, int64(0), first.Timestamp)
	assert.True(t, first.Open.Equal(decimal.RequireFromString("10")))
	assert.True(t, first.High.Equal(decimal.RequireFromString("18")))
	assert.True(t, first.Low.Equal(decimal.RequireFromString("8")))
	assert.True(t, first.Close.Equal(decimal.RequireFromString("9")))
	assert.True(t, first.Volume.Equal(decimal.RequireFromString("6")))

	second := fiveMin[1]
	assert.Equal(t, int64(300000), second.Timestamp)
	assert.True(t, second.Volume.Equal(decimal.RequireFromString("4")))
}

func TestResampleErrors(t *testing.T) {
	_, err := Resample(nil, 5*time.Minute)
	require.Error(t, err)

	_, err = Resample([]Candle{mk(0, "1", "1", "1", "1", "0")}, 0)
	require.Error(t, err)
}
