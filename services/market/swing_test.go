package market

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consigcody94/golden-ratio-compendium/services/levels"
)

func TestDetectSwingUptrend(t *testing.T) {
	candles := []Candle{
		mk(0, "102", "105", "100", "104", "1"),
		mk(60000, "104", "110", "98", "109", "1"),
		mk(120000, "109", "115", "104", "114", "1"),
		mk(180000, "114", "120", "108", "118", "1"),
	}

	swing, err := DetectSwing(candles, 10)
	require.NoError(t, err)
	assert.Equal(t, levels.TrendUp, swing.Trend)
	assert.True(t, swing.High.Equal(decimal.RequireFromString("120")))
	assert.True(t, swing.Low.Equal(decimal.RequireFromString("98")))
	assert.Equal(t, 3, swing.HighIndex)
	assert.Equal(t, 1, swing.LowIndex)
	assert.True(t, swing.Range().Equal(decimal.RequireFromString("22")))
}

func TestDetectSwingDowntrend(t *testing.T) {
	candles := []Candle{
		mk(0, "180", "200", "150", "160", "1"),
		mk(60000, "160", "190", "140", "150", "1"),
		mk(120000, "150", "180", "100", "110", "1"),
	}

	swing, err := DetectSwing(candles, 3)
	require.NoError(t, err)
	assert.Equal(t, levels.TrendDown, swing.Trend)
	assert.True(t, swing.High.Equal(decimal.RequireFromString("200")))
	assert.True(t, swing.Low.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, 0, swing.HighIndex)
	assert.Equal(t, 2, swing.LowIndex)
}

func TestDetectSwingLookbackWindow(t *testing.T) {
	candles := []Candle{
		mk(0, "2", "500", "1", "3", "1"), // outside the window
		mk(60000, "110", "120", "100", "115", "1"),
		mk(120000, "115", "130", "110", "125", "1"),
		mk(180000, "125", "140", "105", "135", "1"),
		mk(240000, "135", "150", "125", "145", "1"),
	}

	swing, err := DetectSwing(candles, 2)
	require.NoError(t, err)
	assert.True(t, swing.High.Equal(decimal.RequireFromString("150")))
	assert.True(t, swing.Low.Equal(decimal.RequireFromString("105")))
	assert.Equal(t, 4, swing.HighIndex)
	assert.Equal(t, 3, swing.LowIndex)
	assert.Equal(t, levels.TrendUp, swing.Trend)
}

func TestDetectSwingErrors(t *testing.T) {
	_, err := DetectSwing(nil, 10)
	require.Error(t, err)

	_, err = DetectSwing([]Candle{mk(0, "1", "2", "1", "2", "0")}, 1)
	require.Error(t, err)
}
