// Package main implements the goldenratio command line toolkit.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "goldenratio",
	Short: "Golden ratio toolkit: Fibonacci, design scales, trading levels",
	Long: `goldenratio explores the golden ratio across mathematics, design,
and markets: Fibonacci sequences with arbitrary precision, golden
rectangles, typography and spacing scales, and Fibonacci retracement
levels for price analysis.`,
	Version: version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
