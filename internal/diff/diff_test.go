// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentsSelfDiffIsEmpty(t *testing.T) {
	r, err := Documents("testdata/rule-v1.md", "testdata/rule-v1.md")
	require.NoError(t, err)

	assert.Empty(t, r.MetadataChanges.Added)
	assert.Empty(t, r.MetadataChanges.Removed)
	assert.Empty(t, r.MetadataChanges.Modified)
	assert.Empty(t, r.RequirementChanges.Added)
	assert.Empty(t, r.RequirementChanges.Removed)
	assert.Empty(t, r.RequirementChanges.Modified)
	assert.Empty(t, r.AntipatternChanges.Added)
	assert.Empty(t, r.AntipatternChanges.Removed)
	assert.Empty(t, r.AntipatternChanges.Modified)

	assert.False(t, r.Summary.SeverityChanged)
	assert.False(t, r.Summary.CategoryChanged)
	assert.False(t, r.Summary.LanguageChanged)
	require.NotNil(t, r.Summary.BreakingChanges)
	assert.Empty(t, r.Summary.BreakingChanges)

	assert.Equal(t, ExampleDelta{TotalBefore: 2, TotalAfter: 2}, r.ExampleChanges.GoodExamples)
}

func TestDocuments(t *testing.T) {
	r, err := Documents("testdata/rule-v1.md", "testdata/rule-v2.md")
	require.NoError(t, err)

	modified := r.MetadataChanges.Modified
	require.Len(t, modified, 3)
	assert.Equal(t, ValueChange{Old: "error", New: "warning"}, modified["severity"])
	assert.Equal(t, ValueChange{Old: "1.0.0", New: "1.1.0"}, modified["version"])
	assert.Equal(t, ValueChange{Old: "2024-01-15", New: "2024-03-01"}, modified["last_updated"])

	reqs := r.RequirementChanges
	require.Len(t, reqs.Added, 1)
	assert.Equal(t, "REQ003", reqs.Added[0].ID)
	assert.Empty(t, reqs.Removed)
	require.Len(t, reqs.Modified, 1)
	assert.Equal(t, "REQ002", reqs.Modified[0].ID)
	assert.Equal(t, "Use the unit under test as the describe block name", reqs.Modified[0].Old.Requirement)
	assert.Equal(t, "Use the unit under test as the describe block title", reqs.Modified[0].New.Requirement)
	assert.Greater(t, reqs.Modified[0].Similarity, 0.9)

	assert.Empty(t, r.AntipatternChanges.Added)
	assert.Empty(t, r.AntipatternChanges.Removed)
	assert.Empty(t, r.AntipatternChanges.Modified)

	assert.Equal(t, ExampleDelta{
		Added:       -1,
		Removed:     1,
		TotalBefore: 2,
		TotalAfter:  1,
	}, r.ExampleChanges.GoodExamples)
	assert.Equal(t, ExampleDelta{TotalBefore: 1, TotalAfter: 1}, r.ExampleChanges.BadExamples)

	assert.True(t, r.Summary.SeverityChanged)
	assert.False(t, r.Summary.CategoryChanged)
	assert.False(t, r.Summary.LanguageChanged)
	assert.Equal(t, []string{"Severity changed from error to warning"}, r.Summary.BreakingChanges)
}

func TestDocumentsMissingFile(t *testing.T) {
	_, err := Documents("testdata/rule-v1.md", "testdata/absent.md")
	require.Error(t, err)
}

func TestSummarizeLanguageChange(t *testing.T) {
	s := summarize(
		map[string]any{"language": "typescript", "severity": "error"},
		map[string]any{"language": "javascript", "severity": "error"},
	)

	assert.True(t, s.LanguageChanged)
	assert.False(t, s.SeverityChanged)
	assert.Equal(t, []string{"Language changed from typescript to javascript"}, s.BreakingChanges)
}

func TestSummarizeMissingValuesReadAsNone(t *testing.T) {
	s := summarize(map[string]any{}, map[string]any{"severity": "error"})

	assert.Equal(t, []string{"Severity changed from none to error"}, s.BreakingChanges)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("same text", "same text"))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))

	mid := Similarity("use the name", "use the title")
	assert.Greater(t, mid, 0.5)
	assert.Less(t, mid, 1.0)
}
