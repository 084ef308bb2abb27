package levels

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFirstTouchUpper(t *testing.T) {
	// bar runs to its high before its low (high closer to open)
	if FirstTouch(d("100"), d("110"), d("90"), d("108"), d("95")) != TouchUpper {
		t.Fatal("expected upper line first")
	}
}

func TestFirstTouchLower(t *testing.T) {
	// low closer to open prints first
	if FirstTouch(d("100"), d("120"), d("95"), d("118"), d("96")) != TouchLower {
		t.Fatal("expected lower line first")
	}
}

func TestFirstTouchOnlyOneSide(t *testing.T) {
	if FirstTouch(d("100"), d("105"), d("99"), d("104"), d("90")) != TouchUpper {
		t.Fatal("expected upper when only upper is in range")
	}
	if FirstTouch(d("100"), d("101"), d("92"), d("110"), d("95")) != TouchLower {
		t.Fatal("expected lower when only lower is in range")
	}
}

func TestFirstTouchNone(t *testing.T) {
	if FirstTouch(d("100"), d("102"), d("98"), d("110"), d("90")) != TouchNone {
		t.Fatal("expected no touch")
	}
}
