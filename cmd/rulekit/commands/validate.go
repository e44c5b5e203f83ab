// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rulekit/cmd/rulekit/internal/clierr"
	"rulekit/internal/validate"
)

// NewValidateCommand builds the rule-validation command. Errors fail the
// run with exit code 1; warnings are printed but advisory.
func NewValidateCommand(rulesDir *string) *cobra.Command {
	var (
		all bool
		fix bool
	)

	cmd := &cobra.Command{
		Use:   "validate [<rule-file>]",
		Short: "Validate rule documents against the schemas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := settings(rulesDir)

			validator, err := validate.New(cfg.SchemaDir)
			if err != nil {
				return clierr.Wrap(1, "cannot load schemas", err)
			}

			if all {
				reports, valid, err := validator.All(cfg.RulesDir)
				if err != nil {
					return clierr.Wrap(1, "validating rules", err)
				}

				clean := true
				for _, report := range reports {
					if report.Clean() {
						continue
					}
					clean = false
					fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", report.Path)
					printFindings(cmd, report.Errors, report.Warnings)
				}
				if clean {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ All %d rules are valid!\n", len(reports))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "\nValidation completed with issues")
				}
				if !valid {
					return clierr.New(1, "validation failed")
				}
				return nil
			}

			if len(args) != 1 {
				return clierr.New(1, "validate requires a rule file (or --all)")
			}
			path := args[0]

			if fix {
				fmt.Fprintf(cmd.OutOrStdout(), "Attempting to fix common issues in %s...\n", path)
				changed, err := validate.Fix(path)
				if err != nil {
					return clierr.Wrap(1, "fixing rule file", err)
				}
				if changed {
					fmt.Fprintln(cmd.OutOrStdout(), "✓ Fixed some issues. Re-validating...")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "No automatic fixes applied.")
				}
			}

			errs, warnings := validator.File(path)
			if len(errs) == 0 && len(warnings) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid!\n", path)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nValidation results for %s:\n", path)
			printFindings(cmd, errs, warnings)
			if len(errs) > 0 {
				return clierr.New(1, "validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "validate every rule under the rules directory")
	cmd.Flags().BoolVar(&fix, "fix", false, "apply best-effort fixes before validating")

	return cmd
}

func printFindings(cmd *cobra.Command, errs, warnings []string) {
	for _, e := range errs {
		fmt.Fprintf(cmd.OutOrStdout(), "  ERROR: %s\n", e)
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "  WARNING: %s\n", w)
	}
}
