package levels

import "github.com/shopspring/decimal"

// TouchResult indicates which of two price lines a bar reached first.
type TouchResult int

const (
	TouchNone TouchResult = iota
	TouchUpper
	TouchLower
)

func (r TouchResult) String() string {
	switch r {
	case TouchUpper:
		return "UPPER"
	case TouchLower:
		return "LOWER"
	default:
		return "NONE"
	}
}

// FirstTouch determines whether a bar touched the upper or the lower line
// first, using a synthetic intrabar path: when both lines fall inside the
// bar's range, the extremum closer to the open is assumed to have printed
// first. Ties resolve to the upper line.
func FirstTouch(open, high, low, upper, lower decimal.Decimal) TouchResult {
	hitUpper := high.GreaterThanOrEqual(upper)
	hitLower := low.LessThanOrEqual(lower)

	if hitUpper && hitLower {
		distHigh := high.Sub(open).Abs()
		distLow := open.Sub(low).Abs()
		if distLow.LessThan(distHigh) {
			return TouchLower
		}
		return TouchUpper
	}
	if hitUpper {
		return TouchUpper
	}
	if hitLower {
		return TouchLower
	}
	return TouchNone
}
