// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bundle selects subsets of rule content sized for a consumption
// budget. Bundles are built fresh per request from the rules index and the
// rule files on disk.
package bundle

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"rulekit/internal/extract"
	"rulekit/internal/index"
	"rulekit/internal/ruledoc"
)

// RuleMeta is the index subset carried per bundled rule.
type RuleMeta struct {
	RuleID   string `json:"rule_id"`
	Category string `json:"category"`
	Language string `json:"language"`
	Severity string `json:"severity"`
}

// Rule is one bundled rule: its metadata plus only the extracted sections
// the request asked for. Section values are strings, record lists, or null
// when the document lacks the section.
type Rule struct {
	Metadata RuleMeta       `json:"metadata"`
	Sections map[string]any `json:"sections"`
}

// Bundle is the full aggregation handed to a consumer.
type Bundle struct {
	Rules    map[string]*Rule `json:"rules"`
	Metadata map[string]any   `json:"metadata,omitempty"`
}

// EstimateTokens returns the heuristic size proxy for a bundle: serialized
// JSON length divided by 4 characters per token. Not a real tokenizer.
func EstimateTokens(b *Bundle) int {
	data, err := json.Marshal(b)
	if err != nil {
		return 0
	}
	return len(data) / 4
}

// Bundler builds bundles against one index and rules directory.
type Bundler struct {
	index    *index.Index
	rulesDir string
	store    *Store
}

// New returns a Bundler. The store may be nil when named-bundle persistence
// is not needed.
func New(ix *index.Index, rulesDir string, store *Store) *Bundler {
	return &Bundler{index: ix, rulesDir: rulesDir, store: store}
}

// Build extracts the requested sections for each rule ID. Rules missing from
// the index or whose file cannot be loaded are skipped, not errors; a bundle
// reflects what was actually available.
func (b *Bundler) Build(ruleIDs, sections []string) *Bundle {
	bundle := &Bundle{Rules: map[string]*Rule{}}

	sorted := append([]string(nil), ruleIDs...)
	sort.Strings(sorted)

	for _, id := range sorted {
		entry, ok := b.index.Rules[id]
		if !ok {
			continue
		}
		doc, err := ruledoc.Load(b.rulePath(entry))
		if err != nil {
			continue
		}
		ex := extract.New(doc)

		rule := &Rule{
			Metadata: RuleMeta{
				RuleID:   id,
				Category: entry.Category,
				Language: entry.Language,
				Severity: entry.Severity,
			},
			Sections: map[string]any{},
		}

		for _, section := range sections {
			switch section {
			case extract.SectionRuleSummary:
				rule.Sections["summary"] = nullableSection(ex, extract.SectionRuleSummary)
			case extract.SectionRequirements, extract.SectionMustFollow:
				reqs := ex.Requirements()
				if reqs == nil {
					reqs = []ruledoc.Requirement{}
				}
				rule.Sections["requirements"] = reqs
			case extract.SectionAntipatterns, extract.SectionMustNotDo:
				ants := ex.Antipatterns()
				if ants == nil {
					ants = []ruledoc.Antipattern{}
				}
				rule.Sections["antipatterns"] = ants
			case extract.SectionGoodExamples:
				// Only the first example makes the bundle; the rest is
				// token weight.
				examples := ex.Examples(extract.GoodExamples)
				if len(examples) > 1 {
					examples = examples[:1]
				}
				if examples == nil {
					examples = []ruledoc.Example{}
				}
				rule.Sections["good_examples"] = examples
			case extract.SectionContext:
				rule.Sections["context"] = nullableSection(ex, extract.SectionContext)
			}
		}

		bundle.Rules[id] = rule
	}

	return bundle
}

func (b *Bundler) rulePath(entry index.Entry) string {
	if b.rulesDir == "" {
		return entry.FilePath
	}
	return filepath.Join(b.rulesDir, entry.FilePath)
}

// nullableSection keeps the section key present with a null value when the
// document lacks it, so consumers can tell "asked for but absent" apart from
// "never requested".
func nullableSection(ex *extract.Extractor, name string) any {
	if text, ok := ex.Section(name); ok {
		return text
	}
	return nil
}

// ByCriteria bundles every indexed rule matching an exact language and/or
// category membership. Nil criteria match everything.
func (b *Bundler) ByCriteria(language string, categories, sections []string) *Bundle {
	var selected []string
	for _, id := range b.index.IDs() {
		entry := b.index.Rules[id]
		if language != "" && entry.Language != language {
			continue
		}
		if len(categories) > 0 && !contains(categories, entry.Category) {
			continue
		}
		selected = append(selected, id)
	}

	if len(sections) == 0 {
		sections = []string{extract.SectionRuleSummary, extract.SectionRequirements, extract.SectionAntipatterns}
	}
	return b.Build(selected, sections)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Summary renders a bundle for human reading.
func Summary(b *Bundle) string {
	var lines []string

	if b.Metadata != nil {
		name := "Unnamed"
		if v, ok := b.Metadata["name"]; ok {
			name = fmt.Sprintf("%v", v)
		}
		count := fmt.Sprintf("%d", len(b.Rules))
		if v, ok := b.Metadata["rule_count"]; ok {
			count = fmt.Sprintf("%v", v)
		}
		tokens := "Unknown"
		if v, ok := b.Metadata["token_estimate"]; ok {
			tokens = fmt.Sprintf("%v", v)
		}
		lines = append(lines,
			"Bundle: "+name,
			"Rules: "+count,
			"Estimated tokens: "+tokens,
			"")
	}

	lines = append(lines, "Included Rules:")
	ids := make([]string, 0, len(b.Rules))
	for id := range b.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		rule := b.Rules[id]
		lines = append(lines, fmt.Sprintf("  - %s (%s/%s) [%s]",
			id, rule.Metadata.Language, rule.Metadata.Category, rule.Metadata.Severity))

		sections := make([]string, 0, len(rule.Sections))
		for name := range rule.Sections {
			sections = append(sections, name)
		}
		sort.Strings(sections)
		lines = append(lines, "    Sections: "+strings.Join(sections, ", "))
	}

	return strings.Join(lines, "\n")
}
