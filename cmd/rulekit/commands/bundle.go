// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rulekit/cmd/rulekit/internal/clierr"
	"rulekit/internal/bundle"
	"rulekit/internal/index"
)

// NewBundleCommand builds the rule-bundling command.
func NewBundleCommand(rulesDir *string) *cobra.Command {
	var (
		task         string
		language     string
		sectionsCSV  string
		preset       string
		output       string
		createName   string
		optimizePath string
		maxTokens    int
	)

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Bundle rules for efficient consumption",
		Long: "Select a token-budget-aware subset of rules, by task description,\n" +
			"by criteria, from a preset, or from explicit rule files.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := settings(rulesDir)

			ix, err := index.Load(cfg.IndexPath)
			if err != nil {
				return clierr.Wrap(1, "cannot load rules index", err)
			}
			logger.Debug("rules index loaded", "path", cfg.IndexPath, "rules", len(ix.Rules))

			store := bundle.NewStore(cfg.BundlesDir)
			bundler := bundle.New(ix, cfg.RulesDir, store)

			var sections []string
			if sectionsCSV != "" {
				sections = strings.Split(sectionsCSV, ",")
			}

			switch {
			case task != "":
				b := bundler.ForTask(task)
				fmt.Fprintln(cmd.OutOrStdout(), bundle.Summary(b))
				fmt.Fprintf(cmd.OutOrStdout(), "\nOptimized bundle created for: %s\n", task)
				return nil

			case language != "":
				b := bundler.ByCriteria(language, nil, sections)
				fmt.Fprintln(cmd.OutOrStdout(), bundle.Summary(b))
				return nil

			case preset != "":
				p, ok := bundle.Presets()[preset]
				if !ok {
					return clierr.Newf(1, "unknown bundle %q, available: %s",
						preset, strings.Join(bundle.PresetNames(), ", "))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Creating bundle: %s\n", p.Description)

				b, err := bundler.FromPreset(preset)
				if err != nil {
					return clierr.Wrap(1, "building preset bundle", err)
				}
				if output != "" {
					if err := bundle.WriteFile(output, b); err != nil {
						return clierr.Wrap(1, "saving bundle", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Bundle saved to: %s\n", output)
					return nil
				}
				return printJSON(cmd, b)

			case createName != "":
				if len(args) == 0 {
					return clierr.New(1, "--create-bundle requires at least one rule file")
				}
				if err := store.Init(); err != nil {
					return clierr.Wrap(1, "initializing bundle store", err)
				}
				path, err := bundler.CreateNamed(createName, args, sections)
				if err != nil {
					return clierr.Wrap(1, "creating bundle", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Bundle created: %s\n", path)
				return nil

			case optimizePath != "":
				b, err := bundle.ReadFile(optimizePath)
				if err != nil {
					return clierr.Wrap(1, "cannot load bundle", err)
				}
				optimized, err := bundle.Optimize(b, maxTokens)
				if err != nil {
					return clierr.Wrap(1, "optimizing bundle", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Original tokens: %d\n", bundle.EstimateTokens(b))
				fmt.Fprintf(cmd.OutOrStdout(), "Optimized tokens: %d\n", bundle.EstimateTokens(optimized))
				if output != "" {
					if err := bundle.WriteFile(output, optimized); err != nil {
						return clierr.Wrap(1, "saving optimized bundle", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Optimized bundle saved to: %s\n", output)
				}
				return nil

			default:
				return clierr.New(1, "one of --task, --language, --bundle, --create-bundle or --optimize is required")
			}
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "bundle rules relevant to a task description")
	cmd.Flags().StringVar(&language, "language", "", "bundle rules for a language")
	cmd.Flags().StringVar(&sectionsCSV, "sections", "", "comma-separated sections to extract")
	cmd.Flags().StringVar(&preset, "bundle", "", "build a predefined bundle")
	cmd.Flags().StringVar(&output, "output", "", "write the bundle to a file")
	cmd.Flags().StringVar(&createName, "create-bundle", "", "create a named bundle from rule files")
	cmd.Flags().StringVar(&optimizePath, "optimize", "", "optimize an existing bundle file")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 2000, "token budget for --optimize")

	return cmd
}
