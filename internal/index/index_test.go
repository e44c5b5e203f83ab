// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIndex = `{
  "rules": {
    "typescript-test-naming": {
      "file_path": "typescript-test-naming.md",
      "language": "typescript",
      "category": "test-naming",
      "severity": "error",
      "tags": ["testing", "naming"],
      "prerequisites": ["universal-test-naming"],
      "summary": "Behavior-first test names",
      "version": "1.2.0",
      "last_updated": "2024-03-05"
    },
    "universal-test-naming": {
      "file_path": "universal-test-naming.md",
      "language": "universal",
      "category": "test-naming",
      "severity": "warning",
      "summary": "Plain-language test names",
      "version": "1.0.0",
      "last_updated": "2024-01-10"
    },
    "python-security": {
      "file_path": "python-security.md",
      "language": "python",
      "category": "security",
      "severity": "error",
      "version": "0.9.0",
      "last_updated": "soon"
    }
  }
}
`

func writeIndex(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules-index.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleIndex), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	ix, err := Load(writeIndex(t))
	require.NoError(t, err)

	require.Len(t, ix.Rules, 3)
	entry := ix.Rules["typescript-test-naming"]
	assert.Equal(t, "typescript-test-naming.md", entry.FilePath)
	assert.Equal(t, "typescript", entry.Language)
	assert.Equal(t, []string{"testing", "naming"}, entry.Tags)
	assert.Equal(t, []string{"universal-test-naming"}, entry.Prerequisites)
}

func TestLoadMissingFileYieldsEmptyIndex(t *testing.T) {
	ix, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Empty(t, ix.Rules)
	assert.Empty(t, ix.IDs())
}

func TestLoadMalformedIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules-index.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestIDsAreSorted(t *testing.T) {
	ix, err := Load(writeIndex(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"python-security",
		"typescript-test-naming",
		"universal-test-naming",
	}, ix.IDs())
}

func TestChangesSince(t *testing.T) {
	ix, err := Load(writeIndex(t))
	require.NoError(t, err)

	changes, errs := ix.ChangesSince("2024-02-01")
	require.Len(t, changes, 1)
	assert.Equal(t, "typescript-test-naming", changes[0].RuleID)
	assert.Equal(t, "1.2.0", changes[0].Version)

	// The entry with an unparseable date is reported, not fatal.
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "python-security")
}

func TestChangesSinceNewestFirst(t *testing.T) {
	ix, err := Load(writeIndex(t))
	require.NoError(t, err)

	changes, _ := ix.ChangesSince("2024-01-01")
	require.Len(t, changes, 2)
	assert.Equal(t, "typescript-test-naming", changes[0].RuleID)
	assert.Equal(t, "universal-test-naming", changes[1].RuleID)
}

func TestChangesSinceCutoffDateIsInclusive(t *testing.T) {
	ix, err := Load(writeIndex(t))
	require.NoError(t, err)

	changes, _ := ix.ChangesSince("2024-03-05")
	require.Len(t, changes, 1)
	assert.Equal(t, "typescript-test-naming", changes[0].RuleID)
}

func TestChangesSinceInvalidCutoff(t *testing.T) {
	ix := &Index{Rules: map[string]Entry{}}

	changes, errs := ix.ChangesSince("03/05/2024")
	assert.Nil(t, changes)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "YYYY-MM-DD")
}
