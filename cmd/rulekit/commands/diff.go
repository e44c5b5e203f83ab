// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rulekit/cmd/rulekit/internal/clierr"
	"rulekit/internal/diff"
	"rulekit/internal/index"
)

// NewDiffCommand builds the rule-comparison command.
func NewDiffCommand(rulesDir *string) *cobra.Command {
	var (
		category     string
		language     string
		changesSince string
		migration    bool
	)

	cmd := &cobra.Command{
		Use:   "diff [<rule-file-1> <rule-file-2>]",
		Short: "Compare rule documents and track changes",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := settings(rulesDir)

			switch {
			case category != "":
				ix, err := index.Load(cfg.IndexPath)
				if err != nil {
					return clierr.Wrap(1, "cannot load rules index", err)
				}
				comparisons := diff.New(ix, cfg.RulesDir).CompareCategory(category, language)

				fmt.Fprintf(cmd.OutOrStdout(), "Rule similarities in category %q:\n", category)
				for i, comp := range comparisons {
					if i == 10 {
						break
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %s ↔ %s: %.0f%%\n",
						comp.Rule1, comp.Rule2, comp.Similarity*100)
				}
				return nil

			case changesSince != "":
				ix, err := index.Load(cfg.IndexPath)
				if err != nil {
					return clierr.Wrap(1, "cannot load rules index", err)
				}
				changes, errs := ix.ChangesSince(changesSince)
				if len(changes) == 0 && len(errs) > 0 {
					return clierr.Wrap(1, "listing changes", errs[0])
				}
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", e)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Rules changed since %s:\n", changesSince)
				for _, change := range changes {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s (v%s) - %s\n",
						change.RuleID, change.Version, change.LastUpdated)
					fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", change.Summary)
				}
				return nil

			case migration:
				if len(args) != 2 {
					return clierr.New(1, "--migration requires <old-rule> <new-rule>")
				}
				guide, err := diff.MigrationGuide(args[0], args[1])
				if err != nil {
					return clierr.Wrap(1, "generating migration guide", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), guide)
				return nil

			default:
				if len(args) != 2 {
					return clierr.New(1, "diff requires two rule files")
				}
				result, err := diff.Documents(args[0], args[1])
				if err != nil {
					return clierr.Wrap(1, "cannot diff rule files", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), diff.FormatText(result))
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "compare all rules in a category")
	cmd.Flags().StringVar(&language, "language", "", "language filter for --category")
	cmd.Flags().StringVar(&changesSince, "changes-since", "", "list rules updated since a date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&migration, "migration", false, "generate a migration guide between two rule versions")

	return cmd
}
