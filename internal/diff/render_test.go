// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulekit/internal/testutil/golden"
)

func TestFormatText(t *testing.T) {
	r, err := Documents("testdata/rule-v1.md", "testdata/rule-v2.md")
	require.NoError(t, err)

	out := FormatText(r)
	assert.Contains(t, out, "⚠️  BREAKING CHANGES DETECTED:")
	assert.Contains(t, out, "   - Severity changed from error to warning")
	assert.Contains(t, out, "METADATA CHANGES:")
	assert.Contains(t, out, "  severity: error → warning")
	assert.Contains(t, out, "REQUIREMENTS ADDED (1):")
	assert.Contains(t, out, "  + REQ003: Keep test names under 80 characters")
	assert.Contains(t, out, "REQUIREMENTS MODIFIED (1):")
	assert.Contains(t, out, "  ~ REQ002 (similarity: 93%)")
	assert.Contains(t, out, "  Good examples: 2 → 1")
	assert.Contains(t, out, "  Bad examples: 1 → 1")
}

func TestFormatTextCleanDiff(t *testing.T) {
	r, err := Documents("testdata/rule-v1.md", "testdata/rule-v1.md")
	require.NoError(t, err)

	out := FormatText(r)
	assert.NotContains(t, out, "BREAKING")
	assert.NotContains(t, out, "METADATA CHANGES:")
	assert.Contains(t, out, "EXAMPLE CHANGES:")
}

func TestMigrationGuide(t *testing.T) {
	guide, err := MigrationGuide("testdata/rule-v1.md", "testdata/rule-v2.md")
	require.NoError(t, err)

	golden.Assert(t, "migration-guide", guide)
}
