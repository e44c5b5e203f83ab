// SPDX-License-Identifier: AGPL-3.0-or-later

package bundle

import (
	"regexp"
	"sort"
	"strings"

	"rulekit/internal/extract"
)

// TaskContext is the classification of a free-text task description.
type TaskContext struct {
	Action     string   `json:"action"`
	Languages  []string `json:"languages"`
	Categories []string `json:"categories"`
	Keywords   []string `json:"keywords"`
}

// Task actions, in detection priority order.
const (
	ActionReview   = "review"
	ActionGenerate = "generate"
	ActionFix      = "fix"
	ActionLearn    = "learn"
	ActionUnknown  = "unknown"
)

// actionTable maps each action to its trigger words. First matching action
// wins, in the order listed.
var actionTable = []struct {
	action string
	words  []string
}{
	{ActionReview, []string{"review", "check", "validate", "audit"}},
	{ActionGenerate, []string{"generate", "create", "write", "implement"}},
	{ActionFix, []string{"fix", "repair", "correct", "update"}},
	{ActionLearn, []string{"learn", "understand", "explain"}},
}

var languageTable = []struct {
	language string
	words    []string
}{
	{"typescript", []string{"typescript", "ts", "tsx"}},
	{"javascript", []string{"javascript", "js", "jsx"}},
	{"python", []string{"python", "py"}},
	{"csharp", []string{"c#", "csharp", "dotnet", ".net"}},
	{"go", []string{"go", "golang"}},
	{"java", []string{"java"}},
	{"ruby", []string{"ruby", "rb"}},
}

var categoryTable = []struct {
	category string
	words    []string
}{
	{"test-naming", []string{"test", "testing", "spec", "unit test"}},
	{"code-quality", []string{"quality", "clean code", "refactor", "code review"}},
	{"security", []string{"security", "secure", "vulnerability", "owasp"}},
	{"git-workflow", []string{"git", "commit", "branch", "pull request", "pr"}},
}

var (
	keywordRe = regexp.MustCompile(`\b\w{4,}\b`)
	stopwords = map[string]bool{
		"that": true, "this": true, "with": true, "from": true, "have": true,
	}
)

// AnalyzeTask classifies a task description by keyword membership against
// fixed tables. Matching is substring-based on the lowercased text.
func AnalyzeTask(task string) TaskContext {
	lower := strings.ToLower(task)
	ctx := TaskContext{Action: ActionUnknown}

	for _, row := range actionTable {
		if containsAny(lower, row.words) {
			ctx.Action = row.action
			break
		}
	}
	for _, row := range languageTable {
		if containsAny(lower, row.words) {
			ctx.Languages = append(ctx.Languages, row.language)
		}
	}
	for _, row := range categoryTable {
		if containsAny(lower, row.words) {
			ctx.Categories = append(ctx.Categories, row.category)
		}
	}
	for _, word := range keywordRe.FindAllString(lower, -1) {
		if !stopwords[word] {
			ctx.Keywords = append(ctx.Keywords, word)
		}
	}

	return ctx
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// SectionsForAction returns the fixed section list each action pulls.
func SectionsForAction(action string) []string {
	switch action {
	case ActionReview:
		return []string{extract.SectionRuleSummary, extract.SectionMustNotDo, extract.SectionAntipatterns}
	case ActionGenerate:
		return []string{extract.SectionRuleSummary, extract.SectionMustFollow, extract.SectionRequirements, extract.SectionGoodExamples}
	case ActionFix:
		return []string{extract.SectionRuleSummary, extract.SectionAntipatterns, extract.SectionGoodExamples}
	case ActionLearn:
		return []string{extract.SectionRuleSummary, extract.SectionContext}
	default:
		return []string{extract.SectionRuleSummary, extract.SectionRequirements, extract.SectionAntipatterns}
	}
}

// selectionThreshold is the minimum relevance score for a rule to enter a
// task bundle.
const selectionThreshold = 8

// selectRules scores every indexed rule against the task context and closes
// the selection over prerequisites, one level deep.
func (b *Bundler) selectRules(ctx TaskContext) []string {
	selected := map[string]bool{}

	for id, entry := range b.index.Rules {
		score := 0

		if contains(ctx.Languages, entry.Language) {
			score += 10
		} else if entry.Language == "universal" {
			score += 2
		}
		if contains(ctx.Categories, entry.Category) {
			score += 8
		}

		tagText := strings.ToLower(strings.Join(entry.Tags, " "))
		for _, keyword := range ctx.Keywords {
			if strings.Contains(tagText, keyword) {
				score += 3
			}
		}

		if score >= selectionThreshold {
			selected[id] = true
		}
	}

	// One level only; prerequisites of prerequisites are not pulled in.
	withDeps := map[string]bool{}
	for id := range selected {
		withDeps[id] = true
		for _, prereq := range b.index.Rules[id].Prerequisites {
			withDeps[prereq] = true
		}
	}

	ids := make([]string, 0, len(withDeps))
	for id := range withDeps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ForTask builds a bundle for a free-text task: classify, score and select
// rules, and pull only the sections the detected action needs.
func (b *Bundler) ForTask(task string) *Bundle {
	ctx := AnalyzeTask(task)
	ids := b.selectRules(ctx)
	bundle := b.Build(ids, SectionsForAction(ctx.Action))

	// Token estimate covers the rule payload, not the metadata wrapper.
	bundle.Metadata = map[string]any{
		"task":           task,
		"context":        ctx,
		"token_estimate": EstimateTokens(bundle),
		"rule_count":     len(ids),
	}
	return bundle
}
