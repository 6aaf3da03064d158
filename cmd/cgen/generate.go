package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cgen/internal/pipeline"
	"cgen/internal/recipe"
)

var generateCmd = &cobra.Command{
	Use:   "generate <recipe.toml>",
	Short: "Generate C sources from one recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  generateExecution,
}

func generateExecution(cmd *cobra.Command, args []string) error {
	rcp, err := recipe.Load(args[0])
	if err != nil {
		return err
	}

	gen, err := pipeline.Configure(rcp)
	if err != nil {
		return fmt.Errorf("%s: %w", rcp.Path, err)
	}
	if err := pipeline.Apply(gen, rcp); err != nil {
		return fmt.Errorf("%s: %w", rcp.Path, err)
	}
	fullname, err := gen.Generate(rcp.Output.Prefix)
	if err != nil {
		return fmt.Errorf("%s: %w", rcp.Path, err)
	}

	success := color.New(color.FgGreen)
	success.Fprintf(cmd.OutOrStdout(), "generated %s\n", fullname)
	if gen.Options().WithHeader {
		success.Fprintf(cmd.OutOrStdout(), "generated %s\n", rcp.Output.Prefix+gen.BaseName()+".h")
	}
	return nil
}
