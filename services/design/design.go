// Package design generates golden-ratio typography scales, spacing systems,
// and layout proportions.
package design

import (
	"fmt"
	"math"

	"github.com/consigcody94/golden-ratio-compendium/services/phi"
)

// Layout is a golden-ratio division of a total width into main content and
// sidebar. Main receives the larger portion.
type Layout struct {
	Total          float64 `json:"total"`
	Main           float64 `json:"main"`
	Sidebar        float64 `json:"sidebar"`
	MainPercent    float64 `json:"main_percent"`
	SidebarPercent float64 `json:"sidebar_percent"`
}

// SpacingScale builds a spacing scale around a base unit: "base", then
// "lg1".."lgN" at base*phi^i and "sm1".."smM" at base/phi^i, two decimals.
func SpacingScale(base float64, larger, smaller int) map[string]float64 {
	sizes := map[string]float64{"base": base}

	for i := 1; i <= larger; i++ {
		sizes[fmt.Sprintf("lg%d", i)] = round2(base * math.Pow(phi.Phi, float64(i)))
	}
	for i := 1; i <= smaller; i++ {
		sizes[fmt.Sprintf("sm%d", i)] = round2(base / math.Pow(phi.Phi, float64(i)))
	}

	return sizes
}

// TypeScale builds a typography scale: "body" at the base size, headings
// "h<levels>".."h1" stepping up by phi (h1 largest), plus "small" and
// "tiny" below the base.
func TypeScale(base float64, levels int) map[string]float64 {
	scale := map[string]float64{"body": base}

	for i := 1; i <= levels; i++ {
		size := base * math.Pow(phi.Phi, float64(i))
		scale[fmt.Sprintf("h%d", levels-i+1)] = round2(size)
	}

	scale["small"] = round2(base / phi.Phi)
	scale["tiny"] = round2(base / (phi.Phi * phi.Phi))

	return scale
}

// LayoutDivisions splits a total width by the golden ratio.
func LayoutDivisions(totalWidth float64) Layout {
	main := totalWidth * phi.Phi / (1 + phi.Phi)
	sidebar := totalWidth / (1 + phi.Phi)

	return Layout{
		Total:          totalWidth,
		Main:           round2(main),
		Sidebar:        round2(sidebar),
		MainPercent:    round2(100 * phi.Phi / (1 + phi.Phi)),
		SidebarPercent: round2(100 / (1 + phi.Phi)),
	}
}

// LineHeight recommends a line height for a font size, following
// Bringhurst adjusted for golden-ratio proportions: longer measures get
// proportionally more leading. lineWidth is in characters.
func LineHeight(fontSize float64, lineWidth int) float64 {
	base := fontSize * phi.Phi
	adjustment := float64(lineWidth-45) / 100
	return round2(base * (1 + adjustment))
}

// ModularScale maps step -steps..+steps to base*ratio^step, two decimals.
func ModularScale(base, ratio float64, steps int) map[int]float64 {
	scale := make(map[int]float64, 2*steps+1)
	for i := -steps; i <= steps; i++ {
		scale[i] = round2(base * math.Pow(ratio, float64(i)))
	}
	return scale
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
