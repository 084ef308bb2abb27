package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/consigcody94/golden-ratio-compendium/services/phi"
)

var (
	rectWidth     float64
	rectHeight    float64
	rectSubdivide int
)

var rectCmd = &cobra.Command{
	Use:   "rect",
	Short: "Golden rectangle dimensions",
	Long:  `Compute a golden rectangle from one side, optionally subdividing it into the spiral of squares.`,
	Run: func(cmd *cobra.Command, args []string) {
		if rectWidth <= 0 && rectHeight <= 0 {
			fmt.Fprintf(os.Stderr, "Error: provide --width or --height (positive)\n")
			os.Exit(1)
		}

		var r phi.Rectangle
		if rectWidth > 0 {
			r = phi.RectangleFromWidth(rectWidth)
		} else {
			r = phi.RectangleFromHeight(rectHeight)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("=== Golden Rectangle ==="))
		fmt.Printf("  width:  %12.4f\n", r.Width)
		fmt.Printf("  height: %12.4f\n", r.Height)
		fmt.Printf("  area:   %12.4f\n", r.Area)
		fmt.Printf("  ratio:  %12.4f\n", r.Ratio)
		fmt.Println()

		if rectSubdivide > 0 {
			fmt.Printf("%s\n", yellow("Subdivision squares:"))
			for _, sq := range phi.Subdivide(r.Width, r.Height, rectSubdivide) {
				fmt.Printf("  #%-2d side %12.4f\n", sq.Iteration, sq.Side)
			}
			fmt.Println()
		}
	},
}

func init() {
	rectCmd.Flags().Float64Var(&rectWidth, "width", 0, "rectangle width; height is derived")
	rectCmd.Flags().Float64Var(&rectHeight, "height", 0, "rectangle height; width is derived")
	rectCmd.Flags().IntVar(&rectSubdivide, "subdivide", 0, "also print the first N spiral squares")
	rootCmd.AddCommand(rectCmd)
}
