// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulekit/cmd/rulekit/internal/clierr"
)

func writeRuleVersion(t *testing.T, dir, name, severity, reqText string) string {
	t.Helper()
	content := strings.Join([]string{
		"---",
		"rule_id: go-small-funcs",
		"language: go",
		"category: code-quality",
		"severity: " + severity,
		"version: 1.0.0",
		`last_updated: "2024-05-01"`,
		"---",
		"",
		"## RULE_SUMMARY",
		"Keep functions short.",
		"",
		"## MUST_FOLLOW",
		"1. **[REQ001]** " + reqText,
		"",
		"## MUST_NOT_DO",
		"1. **[ANT001]** Do not mix IO with business logic",
		"",
	}, "\n")
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiffCommandTwoFiles(t *testing.T) {
	dir := t.TempDir()
	v1 := writeRuleVersion(t, dir, "v1.md", "info", "One function does one thing")
	v2 := writeRuleVersion(t, dir, "v2.md", "error", "One function does exactly one thing")

	out, err := runCommand(t, "diff", v1, v2)
	require.NoError(t, err)
	assert.Contains(t, out, "⚠️  BREAKING CHANGES DETECTED:")
	assert.Contains(t, out, "Severity changed from info to error")
	assert.Contains(t, out, "REQUIREMENTS MODIFIED (1):")
}

func TestDiffCommandMigrationGuide(t *testing.T) {
	dir := t.TempDir()
	v1 := writeRuleVersion(t, dir, "v1.md", "info", "One function does one thing")
	v2 := writeRuleVersion(t, dir, "v2.md", "error", "One function does one thing")

	out, err := runCommand(t, "diff", "--migration", v1, v2)
	require.NoError(t, err)
	assert.Contains(t, out, "# Migration Guide")
	assert.Contains(t, out, "Migrating from v1.md to v2.md")
	assert.Contains(t, out, "## Migration Steps")
}

func TestDiffCommandChangesSince(t *testing.T) {
	rulesDir := setupRulesDir(t)

	out, err := runCommand(t, "diff", "--changes-since", "2024-01-01", "--rules-dir", rulesDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Rules changed since 2024-01-01:")
	assert.Contains(t, out, "  go-small-funcs (v1.0.0) - 2024-05-01")
	assert.Contains(t, out, "    Keep functions short")
}

func TestDiffCommandChangesSinceBadDate(t *testing.T) {
	rulesDir := setupRulesDir(t)

	_, err := runCommand(t, "diff", "--changes-since", "yesterday", "--rules-dir", rulesDir)
	require.Error(t, err)
	assert.Equal(t, 1, clierr.ExitCodeOf(err))
}

func TestDiffCommandRequiresTwoFiles(t *testing.T) {
	_, err := runCommand(t, "diff")
	require.Error(t, err)
	assert.Equal(t, 1, clierr.ExitCodeOf(err))
}
