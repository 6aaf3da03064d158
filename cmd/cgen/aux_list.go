package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"cgen/internal/auxiliary"
)

var auxCmd = &cobra.Command{
	Use:   "aux",
	Short: "Inspect the auxiliary routine catalog",
}

func init() {
	auxCmd.AddCommand(auxListCmd)
}

var auxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every auxiliary routine kind",
	Args:  cobra.NoArgs,
	RunE:  auxListExecution,
}

func auxListExecution(cmd *cobra.Command, args []string) error {
	headerStyle := lipgloss.NewStyle()
	guardStyle := lipgloss.NewStyle()
	if !color.NoColor {
		headerStyle = headerStyle.Bold(true).Foreground(lipgloss.Color("6"))
		guardStyle = guardStyle.Foreground(lipgloss.Color("3"))
	}

	catalog := auxiliary.Catalog()

	nameWidth := len("kind")
	depsWidth := len("depends on")
	for _, info := range catalog {
		if w := runewidth.StringWidth(info.Name); w > nameWidth {
			nameWidth = w
		}
		if w := runewidth.StringWidth(strings.Join(info.Deps, ", ")); w > depsWidth {
			depsWidth = w
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s  %s  %s\n",
		headerStyle.Render(runewidth.FillRight("kind", nameWidth)),
		headerStyle.Render("params"),
		headerStyle.Render(runewidth.FillRight("depends on", depsWidth)),
		headerStyle.Render("guard"))

	for _, info := range catalog {
		deps := strings.Join(info.Deps, ", ")
		guard := info.Guard
		if guard != "" {
			guard = guardStyle.Render(guard)
		}
		fmt.Fprintf(out, "%s  %6d  %s  %s\n",
			runewidth.FillRight(info.Name, nameWidth),
			info.Params,
			runewidth.FillRight(deps, depsWidth),
			guard)
	}
	return nil
}
