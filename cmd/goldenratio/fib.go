package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/consigcody94/golden-ratio-compendium/services/fibonacci"
)

var fibRatios bool

var fibCmd = &cobra.Command{
	Use:   "fib <count>",
	Short: "Print the Fibonacci sequence",
	Long:  `Print the first N Fibonacci numbers, optionally with the consecutive-term ratios converging to φ.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "Error: count must be a positive integer, got %q\n", args[0])
			os.Exit(1)
		}
		if n > 93 {
			fmt.Fprintf(os.Stderr, "Error: count above 93 overflows 64 bits; use 'goldenratio nth %d' for exact values\n", n)
			os.Exit(1)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan(fmt.Sprintf("=== Fibonacci: first %d terms ===", n)))

		terms := fibonacci.Sequence(n)
		parts := make([]string, len(terms))
		for i, v := range terms {
			parts[i] = strconv.FormatUint(v, 10)
		}
		fmt.Printf("  %s\n\n", strings.Join(parts, ", "))

		if fibRatios && n >= 2 {
			fmt.Printf("%s\n", yellow("Convergence to φ:"))
			for _, r := range fibonacci.RatioConvergence(n - 1) {
				fmt.Printf("  F(%2d)/F(%2d) = %.12f  error %.3e\n", r.Index+1, r.Index, r.Ratio, r.Error)
			}
			fmt.Println()
		}
	},
}

func init() {
	fibCmd.Flags().BoolVar(&fibRatios, "ratios", false, "show consecutive-term ratios and their error vs φ")
	rootCmd.AddCommand(fibCmd)
}
