// Package levels computes Fibonacci retracement and extension price levels
// used in technical analysis. Prices are decimal and rounded to four
// decimal places.
package levels

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Trend is the direction of the move the levels are anchored to.
type Trend int

const (
	TrendUp Trend = iota
	TrendDown
)

func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "UP"
	case TrendDown:
		return "DOWN"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON renders the trend as its string form.
func (t Trend) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// ParseTrend accepts "UP"/"DOWN" (case-insensitive, "uptrend"/"downtrend"
// also allowed).
func ParseTrend(s string) (Trend, error) {
	switch s {
	case "UP", "up", "Up", "uptrend", "UPTREND":
		return TrendUp, nil
	case "DOWN", "down", "Down", "downtrend", "DOWNTREND":
		return TrendDown, nil
	default:
		return TrendUp, fmt.Errorf("unknown trend %q", s)
	}
}

// Retracement and extension ratios, in ascending order.
var (
	RetracementRatios = []decimal.Decimal{
		decimal.Zero,
		decimal.RequireFromString("0.236"),
		decimal.RequireFromString("0.382"),
		decimal.RequireFromString("0.5"),
		decimal.RequireFromString("0.618"),
		decimal.RequireFromString("0.786"),
		decimal.RequireFromString("1.0"),
	}
	ExtensionRatios = []decimal.Decimal{
		decimal.RequireFromString("1.272"),
		decimal.RequireFromString("1.618"),
		decimal.RequireFromString("2.0"),
		decimal.RequireFromString("2.618"),
		decimal.RequireFromString("4.236"),
	}

	pocketNear = decimal.RequireFromString("0.618")
	pocketFar  = decimal.RequireFromString("0.65")

	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Level is a single price level with its ratio and display label
// ("61.8%" style).
type Level struct {
	Ratio decimal.Decimal `json:"ratio"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// Pocket is the golden pocket: the 61.8%-65% retracement zone where
// reversals cluster.
type Pocket struct {
	Upper    decimal.Decimal `json:"upper"`
	Lower    decimal.Decimal `json:"lower"`
	Midpoint decimal.Decimal `json:"midpoint"`
}

// Analysis bundles every level set for one swing.
type Analysis struct {
	Trend        Trend           `json:"trend"`
	High         decimal.Decimal `json:"high"`
	Low          decimal.Decimal `json:"low"`
	Retracements []Level         `json:"retracements"`
	Extensions   []Level         `json:"extensions"`
	Pocket       Pocket          `json:"golden_pocket"`
}

func validateRange(high, low decimal.Decimal) error {
	if high.LessThan(low) {
		return fmt.Errorf("swing high %s below swing low %s", high, low)
	}
	return nil
}

func label(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).StringFixed(1) + "%"
}

// Retracements computes the retracement levels between a swing high and
// low. In an uptrend the levels descend from the high (price pulling
// back); in a downtrend they ascend from the low.
func Retracements(high, low decimal.Decimal, trend Trend) ([]Level, error) {
	if err := validateRange(high, low); err != nil {
		return nil, err
	}

	diff := high.Sub(low)
	out := make([]Level, 0, len(RetracementRatios))
	for _, r := range RetracementRatios {
		var price decimal.Decimal
		if trend == TrendUp {
			price = high.Sub(diff.Mul(r))
		} else {
			price = low.Add(diff.Mul(r))
		}
		out = append(out, Level{Ratio: r, Label: label(r), Price: price.Round(4)})
	}
	return out, nil
}

// Extensions projects price targets beyond the original move.
func Extensions(high, low decimal.Decimal, trend Trend) ([]Level, error) {
	if err := validateRange(high, low); err != nil {
		return nil, err
	}

	diff := high.Sub(low)
	out := make([]Level, 0, len(ExtensionRatios))
	for _, r := range ExtensionRatios {
		var price decimal.Decimal
		if trend == TrendUp {
			price = low.Add(diff.Mul(r))
		} else {
			price = high.Sub(diff.Mul(r))
		}
		out = append(out, Level{Ratio: r, Label: label(r), Price: price.Round(4)})
	}
	return out, nil
}

// GoldenPocket returns the 61.8%-65% zone for the swing.
func GoldenPocket(high, low decimal.Decimal, trend Trend) (Pocket, error) {
	if err := validateRange(high, low); err != nil {
		return Pocket{}, err
	}

	diff := high.Sub(low)
	var upper, lower decimal.Decimal
	if trend == TrendUp {
		upper = high.Sub(diff.Mul(pocketNear))
		lower = high.Sub(diff.Mul(pocketFar))
	} else {
		lower = low.Add(diff.Mul(pocketNear))
		upper = low.Add(diff.Mul(pocketFar))
	}

	return Pocket{
		Upper:    upper.Round(4),
		Lower:    lower.Round(4),
		Midpoint: upper.Add(lower).Div(two).Round(4),
	}, nil
}

// AllLevels computes retracements, extensions, and the golden pocket in
// one call.
func AllLevels(high, low decimal.Decimal, trend Trend) (Analysis, error) {
	retr, err := Retracements(high, low, trend)
	if err != nil {
		return Analysis{}, err
	}
	ext, err := Extensions(high, low, trend)
	if err != nil {
		return Analysis{}, err
	}
	pocket, err := GoldenPocket(high, low, trend)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		Trend:        trend,
		High:         high,
		Low:          low,
		Retracements: retr,
		Extensions:   ext,
		Pocket:       pocket,
	}, nil
}

// Nearest returns the level closest to price and the absolute distance.
// The boolean is false when lvls is empty.
func Nearest(price decimal.Decimal, lvls []Level) (Level, decimal.Decimal, bool) {
	if len(lvls) == 0 {
		return Level{}, decimal.Zero, false
	}

	best := lvls[0]
	bestDist := price.Sub(lvls[0].Price).Abs()
	for _, l := range lvls[1:] {
		d := price.Sub(l.Price).Abs()
		if d.LessThan(bestDist) {
			best = l
			bestDist = d
		}
	}
	return best, bestDist, true
}

// Contains reports whether price sits inside the pocket zone, bounds
// inclusive.
func (p Pocket) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(p.Lower) && price.LessThanOrEqual(p.Upper)
}
