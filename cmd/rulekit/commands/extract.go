// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rulekit/cmd/rulekit/internal/clierr"
	"rulekit/internal/extract"
	"rulekit/internal/ruledoc"
)

// NewExtractCommand builds the section-extraction command.
func NewExtractCommand(rulesDir *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "extract <rule-file> <section>",
		Short: "Extract a section from a rule document",
		Long: "Extract a named section, a typed record list (requirements, antipatterns,\n" +
			"good_examples, bad_examples, patterns) or everything at once (all).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, section := args[0], args[1]

			doc, err := ruledoc.Load(path)
			if err != nil {
				return clierr.Wrap(1, "cannot load rule file", err)
			}
			ex := extract.New(doc)
			logger.Debug("loaded rule document", "path", path, "section", section)

			if extract.KindOf(section) == extract.KindAll {
				result := ex.All()
				if asJSON {
					return printJSON(cmd, result)
				}
				printAllText(cmd, result)
				return nil
			}

			value, ok := ex.Extract(section)
			if !ok {
				return clierr.Newf(1, "section %q not found in %s", section, path)
			}
			if text, isText := value.(string); isText && !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			return printJSON(cmd, value)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printAllText prints each non-empty part of a full extraction as a titled
// segment.
func printAllText(cmd *cobra.Command, r *extract.Result) {
	out := cmd.OutOrStdout()

	segment := func(title string, v any) {
		switch val := v.(type) {
		case string:
			if val == "" {
				return
			}
			fmt.Fprintf(out, "\n=== %s ===\n%s\n", strings.ToUpper(title), val)
		default:
			data, err := json.MarshalIndent(v, "", "  ")
			if err != nil || string(data) == "null" {
				return
			}
			fmt.Fprintf(out, "\n=== %s ===\n%s\n", strings.ToUpper(title), data)
		}
	}

	if len(r.Metadata) > 0 {
		segment("metadata", r.Metadata)
	}
	segment("rule_summary", r.RuleSummary)
	if len(r.Requirements) > 0 {
		segment("requirements", r.Requirements)
	}
	if len(r.Antipatterns) > 0 {
		segment("antipatterns", r.Antipatterns)
	}
	if len(r.GoodExamples) > 0 {
		segment("good_examples", r.GoodExamples)
	}
	if len(r.BadExamples) > 0 {
		segment("bad_examples", r.BadExamples)
	}
	if r.Patterns != nil {
		segment("patterns", r.Patterns)
	}
	segment("metrics", r.Metrics)
	segment("automated_checks", r.AutomatedChecks)
}
