package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/consigcody94/golden-ratio-compendium/services/levels"
)

var (
	tradingDowntrend bool
	tradingPrice     string
	tradingJSON      bool
)

var tradingCmd = &cobra.Command{
	Use:   "trading <high> <low>",
	Short: "Fibonacci retracement and extension levels",
	Long:  `Compute Fibonacci retracements, extensions, and the golden pocket for a swing, optionally locating a current price against them.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		high, err := decimal.NewFromString(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid high %q\n", args[0])
			os.Exit(1)
		}
		low, err := decimal.NewFromString(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid low %q\n", args[1])
			os.Exit(1)
		}

		trend := levels.TrendUp
		if tradingDowntrend {
			trend = levels.TrendDown
		}

		analysis, err := levels.AllLevels(high, low, trend)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if tradingJSON {
			out, err := json.MarshalIndent(analysis, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan(fmt.Sprintf("=== Fibonacci Levels: %s swing %s to %s ===", analysis.Trend, low.String(), high.String())))

		fmt.Printf("%s\n", yellow("Retracements:"))
		for _, lvl := range analysis.Retracements {
			fmt.Printf("  %7s  %14s\n", lvl.Label, lvl.Price.StringFixed(4))
		}
		fmt.Println()

		fmt.Printf("%s\n", yellow("Extensions:"))
		for _, lvl := range analysis.Extensions {
			fmt.Printf("  %7s  %14s\n", lvl.Label, lvl.Price.StringFixed(4))
		}
		fmt.Println()

		fmt.Printf("%s\n", yellow("Golden pocket (0.618 to 0.65):"))
		fmt.Printf("  upper     %14s\n", analysis.Pocket.Upper.StringFixed(4))
		fmt.Printf("  lower     %14s\n", analysis.Pocket.Lower.StringFixed(4))
		fmt.Printf("  midpoint  %14s\n", analysis.Pocket.Midpoint.StringFixed(4))
		fmt.Println()

		if tradingPrice != "" {
			price, err := decimal.NewFromString(tradingPrice)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid price %q\n", tradingPrice)
				os.Exit(1)
			}
			fmt.Printf("%s\n", yellow(fmt.Sprintf("Price %s:", price.String())))
			if nearest, dist, ok := levels.Nearest(price, analysis.Retracements); ok {
				fmt.Printf("  nearest retracement %s at %s (distance %s)\n",
					nearest.Label, nearest.Price.StringFixed(4), dist.StringFixed(4))
			}
			if analysis.Pocket.Contains(price) {
				fmt.Printf("  %s inside the golden pocket\n", green("●"))
			}
			fmt.Println()
		}
	},
}

func init() {
	tradingCmd.Flags().BoolVar(&tradingDowntrend, "downtrend", false, "levels for a downtrend swing (default uptrend)")
	tradingCmd.Flags().StringVar(&tradingPrice, "price", "", "current price to locate against the levels")
	tradingCmd.Flags().BoolVar(&tradingJSON, "json", false, "emit the analysis as JSON")
	rootCmd.AddCommand(tradingCmd)
}
