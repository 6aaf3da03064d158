// Package main implements the cgen CLI.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cgen",
	Short: "C source generator for numeric function libraries",
	Long:  `cgen renders self-contained C sources for numeric functions from recipe files`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mode, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		noColor, err := resolveColor(mode, isTerminal(os.Stdout))
		if err != nil {
			return err
		}
		color.NoColor = noColor
		return nil
	},
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(auxCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
