package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/consigcody94/golden-ratio-compendium/services/design"
)

var (
	scaleBase  float64
	scaleWidth float64
)

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Typography, spacing, and layout scales",
	Run: func(cmd *cobra.Command, args []string) {
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan(fmt.Sprintf("=== Design Scales (base %.1fpx) ===", scaleBase)))

		typeScale := design.TypeScale(scaleBase, 6)
		fmt.Printf("%s\n", yellow("Typography:"))
		for _, key := range []string{"h1", "h2", "h3", "h4", "h5", "h6", "body", "small", "tiny"} {
			fmt.Printf("  %-6s %9.2fpx\n", key, typeScale[key])
		}
		fmt.Println()

		spacing := design.SpacingScale(scaleBase, 4, 3)
		fmt.Printf("%s\n", yellow("Spacing:"))
		for _, key := range []string{"lg4", "lg3", "lg2", "lg1", "base", "sm1", "sm2", "sm3"} {
			fmt.Printf("  %-6s %9.2fpx\n", key, spacing[key])
		}
		fmt.Println()

		layout := design.LayoutDivisions(scaleWidth)
		fmt.Printf("%s\n", yellow(fmt.Sprintf("Layout (%.0fpx total):", layout.Total)))
		fmt.Printf("  main     %9.2fpx  (%.2f%%)\n", layout.Main, layout.MainPercent)
		fmt.Printf("  sidebar  %9.2fpx  (%.2f%%)\n", layout.Sidebar, layout.SidebarPercent)
		fmt.Println()

		fmt.Printf("%s\n", yellow("Line height by measure:"))
		for _, w := range []int{45, 65, 80} {
			fmt.Printf("  %3d chars  %.2fpx\n", w, design.LineHeight(scaleBase, w))
		}
		fmt.Println()
	},
}

func init() {
	scaleCmd.Flags().Float64Var(&scaleBase, "base", 16, "base font size in px")
	scaleCmd.Flags().Float64Var(&scaleWidth, "width", 1200, "layout total width in px")
	rootCmd.AddCommand(scaleCmd)
}
