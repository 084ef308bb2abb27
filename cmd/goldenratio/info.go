package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/consigcody94/golden-ratio-compendium/services/phi"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show golden ratio constants and identities",
	Run: func(cmd *cobra.Command, args []string) {
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("=== The Golden Ratio ==="))

		fmt.Printf("%s\n", yellow("Constants:"))
		fmt.Printf("  phi (φ):            %.15f\n", phi.Phi)
		fmt.Printf("  psi (ψ):            %.15f\n", phi.Psi)
		fmt.Printf("  1/φ:                %.15f\n", phi.InvPhi)
		fmt.Printf("  golden angle:       %.6f rad\n", phi.GoldenAngle)
		fmt.Printf("  golden angle:       %.4f°\n", phi.GoldenAngleDegrees)
		fmt.Println()

		fmt.Printf("%s\n", yellow("Identities:"))
		fmt.Printf("  φ² = φ + 1          %.12f = %.12f\n", phi.Phi*phi.Phi, phi.Phi+1)
		fmt.Printf("  1/φ = φ - 1         %.12f = %.12f\n", phi.InversePhi(), phi.Phi-1)
		fmt.Printf("  φ·ψ = -1            %.12f\n", phi.Phi*phi.Psi)
		fmt.Println()

		fmt.Printf("%s\n", yellow("Powers of φ:"))
		for n := -3; n <= 6; n++ {
			fmt.Printf("  φ^%-3d = %14.6f\n", n, phi.Power(n))
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
