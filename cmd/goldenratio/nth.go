package main

import (
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/consigcody94/golden-ratio-compendium/services/fibonacci"
	"github.com/consigcody94/golden-ratio-compendium/services/phi"
)

var nthCmd = &cobra.Command{
	Use:   "nth <n>",
	Short: "Exact F(n) and L(n) at any index",
	Long:  `Compute the nth Fibonacci and Lucas numbers with arbitrary precision, plus the ratio F(n+1)/F(n) against φ.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			fmt.Fprintf(os.Stderr, "Error: n must be a non-negative integer, got %q\n", args[0])
			os.Exit(1)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		f := fibonacci.FastDoubling(n)
		l := fibonacci.Lucas(n)

		fmt.Printf("\n%s\n\n", cyan(fmt.Sprintf("=== Index %d ===", n)))

		fmt.Printf("%s\n", yellow("Fibonacci:"))
		fmt.Printf("  F(%d) = %s\n", n, f.String())
		fmt.Printf("  digits: %d\n\n", len(f.String()))

		fmt.Printf("%s\n", yellow("Lucas:"))
		fmt.Printf("  L(%d) = %s\n", n, l.String())
		fmt.Printf("  digits: %d\n\n", len(l.String()))

		if n >= 1 {
			next := fibonacci.FastDoubling(n + 1)
			ratio := new(big.Float).SetPrec(128).Quo(new(big.Float).SetInt(next), new(big.Float).SetInt(f))
			diff := new(big.Float).Sub(ratio, big.NewFloat(phi.Phi))

			fmt.Printf("%s\n", yellow("Convergence:"))
			fmt.Printf("  F(%d)/F(%d) = %s\n", n+1, n, ratio.Text('f', 15))
			fmt.Printf("  error vs φ:  %s\n\n", diff.Text('e', 3))
		}
	},
}

func init() {
	rootCmd.AddCommand(nthCmd)
}
