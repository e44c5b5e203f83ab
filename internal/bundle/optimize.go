// SPDX-License-Identifier: AGPL-3.0-or-later

package bundle

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Optimize trims a bundle until its token estimate fits maxTokens. Reduction
// is staged and lossy: drop good examples, then context sections, then
// collapse every rule to its summary plus at most three antipatterns (or,
// failing those, three requirements). Dropped content is unrecoverable from
// the returned bundle.
//
// A bundle already within budget is returned as-is, which makes Optimize
// idempotent once under budget. The input is never mutated otherwise; the
// trimmed result is a fresh copy.
func Optimize(b *Bundle, maxTokens int) (*Bundle, error) {
	if EstimateTokens(b) <= maxTokens {
		return b, nil
	}

	opt, err := clone(b)
	if err != nil {
		return nil, err
	}
	ids := sortedRuleIDs(opt)

	for _, id := range ids {
		if _, ok := opt.Rules[id].Sections["good_examples"]; ok {
			delete(opt.Rules[id].Sections, "good_examples")
			if EstimateTokens(opt) <= maxTokens {
				return opt, nil
			}
		}
	}

	for _, id := range ids {
		if _, ok := opt.Rules[id].Sections["context"]; ok {
			delete(opt.Rules[id].Sections, "context")
			if EstimateTokens(opt) <= maxTokens {
				return opt, nil
			}
		}
	}

	for _, id := range ids {
		sections := opt.Rules[id].Sections
		collapsed := map[string]any{}
		if summary, ok := sections["summary"]; ok {
			collapsed["summary"] = summary
		}
		if ants, ok := listSection(sections, "antipatterns"); ok && len(ants) > 0 {
			collapsed["antipatterns"] = truncate(ants, 3)
		} else if reqs, ok := listSection(sections, "requirements"); ok {
			collapsed["requirements"] = truncate(reqs, 3)
		}
		opt.Rules[id].Sections = collapsed
	}

	return opt, nil
}

// clone deep-copies a bundle through its JSON form. This also normalizes
// section values to plain JSON types, so Optimize behaves identically on
// bundles built in-process and bundles loaded from disk.
func clone(b *Bundle) (*Bundle, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("copying bundle: %w", err)
	}
	var out Bundle
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("copying bundle: %w", err)
	}
	if out.Rules == nil {
		out.Rules = map[string]*Rule{}
	}
	return &out, nil
}

func sortedRuleIDs(b *Bundle) []string {
	ids := make([]string, 0, len(b.Rules))
	for id := range b.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func listSection(sections map[string]any, name string) ([]any, bool) {
	v, ok := sections[name]
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	return list, ok
}

func truncate(list []any, n int) []any {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
