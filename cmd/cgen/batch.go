package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cgen/internal/manifest"
	"cgen/internal/pipeline"
	"cgen/internal/recipe"
	"cgen/internal/version"
)

var (
	batchJobs  int
	batchForce bool
	batchUI    string
)

func init() {
	batchCmd.Flags().IntVar(&batchJobs, "jobs", 0, "max parallel sessions (0 = GOMAXPROCS)")
	batchCmd.Flags().BoolVar(&batchForce, "force", false, "regenerate even when the cache is fresh")
	batchCmd.Flags().StringVar(&batchUI, "ui", "auto", "progress UI (auto|on|off)")
}

var batchCmd = &cobra.Command{
	Use:   "batch <recipe.toml>...",
	Short: "Generate C sources from many recipes in parallel",
	Args:  cobra.MinimumNArgs(1),
	RunE:  batchExecution,
}

func batchExecution(cmd *cobra.Command, args []string) error {
	mode, err := readUIMode(batchUI)
	if err != nil {
		return err
	}

	recipes := make([]*recipe.Recipe, 0, len(args))
	for _, path := range args {
		rcp, err := recipe.Load(path)
		if err != nil {
			return err
		}
		recipes = append(recipes, rcp)
	}

	cache, err := manifest.OpenDefault("cgen")
	if err != nil {
		return fmt.Errorf("failed to open manifest cache: %w", err)
	}

	req := pipeline.Request{
		Recipes: recipes,
		Jobs:    batchJobs,
	}
	if !batchForce {
		req.Skip = func(rcp *recipe.Recipe) bool {
			return cache.Fresh(manifest.DigestOf(rcp.Source, version.Plain))
		}
	}

	var results []pipeline.Result
	if shouldUseTUI(mode) {
		results, err = runBatchWithUI(cmd.Context(), args, req)
	} else {
		results, err = runBatchPlain(cmd, req)
	}
	if err != nil {
		return err
	}

	for _, res := range results {
		if res.Skipped {
			continue
		}
		rcp := findRecipe(recipes, res.Recipe)
		if rcp == nil {
			continue
		}
		key := manifest.DigestOf(rcp.Source, version.Plain)
		payload := &manifest.Payload{
			Recipe:    res.Recipe,
			Name:      res.Name,
			Artifacts: res.Artifacts,
			Options:   rcp.Options,
		}
		if err := cache.Put(key, payload); err != nil {
			return fmt.Errorf("failed to update manifest cache: %w", err)
		}
	}

	reportBatch(cmd, results)
	return nil
}

func runBatchPlain(cmd *cobra.Command, req pipeline.Request) ([]pipeline.Result, error) {
	return pipeline.Run(cmd.Context(), req)
}

func findRecipe(recipes []*recipe.Recipe, path string) *recipe.Recipe {
	for _, rcp := range recipes {
		if rcp.Path == path {
			return rcp
		}
	}
	return nil
}

func reportBatch(cmd *cobra.Command, results []pipeline.Result) {
	success := color.New(color.FgGreen)
	muted := color.New(color.Faint)
	for _, res := range results {
		if res.Skipped {
			muted.Fprintf(cmd.OutOrStdout(), "up to date %s\n", res.Recipe)
			continue
		}
		for _, artifact := range res.Artifacts {
			success.Fprintf(cmd.OutOrStdout(), "generated %s\n", artifact)
		}
	}
}
