// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands wires the rulekit CLI: section extraction, bundling,
// diffing and validation of markdown rule documents.
package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"rulekit/internal/config"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// NewRootCmd constructs the rulekit root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("RULEKIT_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	var (
		verbose  bool
		rulesDir string
	)

	cmd := &cobra.Command{
		Use:           "rulekit",
		Short:         "rulekit - tooling for machine-readable coding rules",
		Long:          "rulekit extracts, bundles, diffs and validates markdown rule documents.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVar(&rulesDir, "rules-dir", "", "rules directory (default \"rules\", env RULEKIT_RULES_DIR)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of rulekit",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rulekit version %s\n", version)
		},
	})

	cmd.AddCommand(NewExtractCommand(&rulesDir))
	cmd.AddCommand(NewBundleCommand(&rulesDir))
	cmd.AddCommand(NewDiffCommand(&rulesDir))
	cmd.AddCommand(NewValidateCommand(&rulesDir))

	return cmd
}

func settings(rulesDir *string) *config.Settings {
	flag := ""
	if rulesDir != nil {
		flag = *rulesDir
	}
	return config.Load(flag)
}
