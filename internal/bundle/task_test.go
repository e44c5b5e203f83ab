// SPDX-License-Identifier: AGPL-3.0-or-later

package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTask(t *testing.T) {
	tests := []struct {
		name       string
		task       string
		action     string
		languages  []string
		categories []string
	}{
		{
			name:       "review typescript tests",
			task:       "Review TypeScript code for testing issues",
			action:     ActionReview,
			languages:  []string{"typescript"},
			categories: []string{"test-naming"},
		},
		{
			name:       "generate python",
			task:       "generate a python module",
			action:     ActionGenerate,
			languages:  []string{"python"},
			categories: nil,
		},
		{
			name:       "fix security",
			task:       "fix the vulnerability in the auth flow",
			action:     ActionFix,
			languages:  nil,
			categories: []string{"security"},
		},
		{
			name:       "learn git",
			task:       "explain our branch strategy",
			action:     ActionLearn,
			languages:  nil,
			categories: []string{"git-workflow"},
		},
		{
			name:   "no trigger words",
			task:   "something else entirely",
			action: ActionUnknown,
		},
		{
			name:   "first matching action wins",
			task:   "review and fix the module",
			action: ActionReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := AnalyzeTask(tt.task)
			assert.Equal(t, tt.action, ctx.Action)
			assert.Equal(t, tt.languages, ctx.Languages)
			assert.Equal(t, tt.categories, ctx.Categories)
		})
	}
}

func TestAnalyzeTaskKeywords(t *testing.T) {
	ctx := AnalyzeTask("Review TypeScript code for testing issues")

	// Words of four letters or more, minus stopwords; "for" is too short.
	assert.Equal(t, []string{"review", "typescript", "code", "testing", "issues"}, ctx.Keywords)

	ctx = AnalyzeTask("check that this code works with care")
	assert.NotContains(t, ctx.Keywords, "that")
	assert.NotContains(t, ctx.Keywords, "this")
	assert.NotContains(t, ctx.Keywords, "with")
}

func TestSectionsForAction(t *testing.T) {
	assert.Equal(t, []string{"RULE_SUMMARY", "MUST_NOT_DO", "antipatterns"},
		SectionsForAction(ActionReview))
	assert.Equal(t, []string{"RULE_SUMMARY", "MUST_FOLLOW", "requirements", "good_examples"},
		SectionsForAction(ActionGenerate))
	assert.Equal(t, []string{"RULE_SUMMARY", "antipatterns", "good_examples"},
		SectionsForAction(ActionFix))
	assert.Equal(t, []string{"RULE_SUMMARY", "CONTEXT_AND_RATIONALE"},
		SectionsForAction(ActionLearn))
	assert.Equal(t, []string{"RULE_SUMMARY", "requirements", "antipatterns"},
		SectionsForAction(ActionUnknown))
}

func TestSelectRules(t *testing.T) {
	bundler := testBundler()

	ctx := AnalyzeTask("Review TypeScript code for testing issues")
	ids := bundler.selectRules(ctx)

	// typescript rule: language 10 + category 8 + "testing" tag 3.
	// universal rule: universal 2 + category 8 + "testing" tag 3.
	// python-security scores 0 and stays out.
	assert.Equal(t, []string{"typescript-test-naming", "universal-test-naming"}, ids)
}

func TestSelectRulesPullsPrerequisites(t *testing.T) {
	ix := testIndex()
	entry := ix.Rules["typescript-test-naming"]
	entry.Prerequisites = []string{"python-security"}
	ix.Rules["typescript-test-naming"] = entry
	bundler := New(ix, "testdata/rules", nil)

	ids := bundler.selectRules(TaskContext{Languages: []string{"typescript"}})

	// Language match alone (10) clears the threshold; the prerequisite is
	// pulled in even though it scores zero itself.
	assert.Equal(t, []string{"python-security", "typescript-test-naming"}, ids)
}

func TestForTask(t *testing.T) {
	b := testBundler().ForTask("Review TypeScript code for testing issues")

	require.Len(t, b.Rules, 2)
	ts := b.Rules["typescript-test-naming"]
	require.NotNil(t, ts)
	assert.Contains(t, ts.Sections, "summary")
	assert.Contains(t, ts.Sections, "antipatterns")
	assert.NotContains(t, ts.Sections, "requirements")
	assert.NotContains(t, ts.Sections, "good_examples")

	require.NotNil(t, b.Metadata)
	assert.Equal(t, "Review TypeScript code for testing issues", b.Metadata["task"])
	assert.Equal(t, 2, b.Metadata["rule_count"])
	assert.Greater(t, b.Metadata["token_estimate"].(int), 0)

	ctx := b.Metadata["context"].(TaskContext)
	assert.Equal(t, ActionReview, ctx.Action)
}
