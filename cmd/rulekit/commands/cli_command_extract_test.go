// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulekit/cmd/rulekit/internal/clierr"
)

const sampleRule = `---
rule_id: go-small-funcs
language: go
category: code-quality
severity: info
version: 1.0.0
last_updated: "2024-05-01"
---

# Small Functions

## RULE_SUMMARY
Keep functions short.

## MUST_FOLLOW
1. **[REQ001]** One function does one thing
   - Rationale: Small units are testable

## MUST_NOT_DO
1. **[ANT001]** Do not mix IO with business logic
`

func writeSampleRule(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "go-small-funcs.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleRule), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := bytes.NewBufferString("")
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExtractCommandPlainSection(t *testing.T) {
	path := writeSampleRule(t)

	out, err := runCommand(t, "extract", path, "RULE_SUMMARY")
	require.NoError(t, err)
	assert.Equal(t, "Keep functions short.\n", out)
}

func TestExtractCommandTypedSectionIsJSON(t *testing.T) {
	path := writeSampleRule(t)

	out, err := runCommand(t, "extract", path, "requirements")
	require.NoError(t, err)

	var reqs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &reqs))
	require.Len(t, reqs, 1)
	assert.Equal(t, "REQ001", reqs[0]["id"])
	assert.Equal(t, "One function does one thing", reqs[0]["requirement"])
}

func TestExtractCommandAll(t *testing.T) {
	path := writeSampleRule(t)

	out, err := runCommand(t, "extract", path, "all", "--json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Keep functions short.", result["rule_summary"])
	assert.Contains(t, result, "requirements")
	assert.Contains(t, result, "antipatterns")
}

func TestExtractCommandSectionNotFound(t *testing.T) {
	path := writeSampleRule(t)

	_, err := runCommand(t, "extract", path, "CONTEXT_AND_RATIONALE")
	require.Error(t, err)
	assert.Equal(t, 1, clierr.ExitCodeOf(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestExtractCommandPatternsAlwaysStructured(t *testing.T) {
	path := writeSampleRule(t)

	// A document without patterns still yields the empty structure.
	out, err := runCommand(t, "extract", path, "patterns")
	require.NoError(t, err)

	var set map[string][]any
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	require.Contains(t, set, "good")
	require.Contains(t, set, "bad")
	assert.Empty(t, set["good"])
	assert.Empty(t, set["bad"])
}

func TestExtractCommandUnreadableFile(t *testing.T) {
	_, err := runCommand(t, "extract", filepath.Join(t.TempDir(), "absent.md"), "RULE_SUMMARY")
	require.Error(t, err)
	assert.Equal(t, 1, clierr.ExitCodeOf(err))
}
