// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff computes structural differences between rule documents:
// keyed set differences over extracted records, count deltas over examples,
// and a change summary flagging breaking metadata moves.
package diff

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	"rulekit/internal/extract"
	"rulekit/internal/ruledoc"
)

// Result is the full structured diff of two documents.
type Result struct {
	MetadataChanges    MetadataChanges    `json:"metadata_changes"`
	RequirementChanges RequirementChanges `json:"requirement_changes"`
	AntipatternChanges AntipatternChanges `json:"antipattern_changes"`
	ExampleChanges     ExampleChanges     `json:"example_changes"`
	Summary            Summary            `json:"summary"`
}

// MetadataChanges is a keyed diff over front-matter fields.
type MetadataChanges struct {
	Added    map[string]any         `json:"added"`
	Removed  map[string]any         `json:"removed"`
	Modified map[string]ValueChange `json:"modified"`
}

// ValueChange carries a field's before and after values.
type ValueChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// RequirementChanges is a keyed diff over REQ records.
type RequirementChanges struct {
	Added    []ruledoc.Requirement `json:"added"`
	Removed  []ruledoc.Requirement `json:"removed"`
	Modified []RequirementChange   `json:"modified"`
}

// RequirementChange is one modified requirement with a character-level
// similarity ratio between the old and new texts, in [0,1].
type RequirementChange struct {
	ID         string              `json:"id"`
	Old        ruledoc.Requirement `json:"old"`
	New        ruledoc.Requirement `json:"new"`
	Similarity float64             `json:"similarity"`
}

// AntipatternChanges is a keyed diff over ANT records.
type AntipatternChanges struct {
	Added    []ruledoc.Antipattern `json:"added"`
	Removed  []ruledoc.Antipattern `json:"removed"`
	Modified []AntipatternChange   `json:"modified"`
}

// AntipatternChange is one modified antipattern.
type AntipatternChange struct {
	ID  string              `json:"id"`
	Old ruledoc.Antipattern `json:"old"`
	New ruledoc.Antipattern `json:"new"`
}

// ExampleChanges tracks example counts only; examples carry no stable
// identity worth diffing per record.
type ExampleChanges struct {
	GoodExamples ExampleDelta `json:"good_examples"`
	BadExamples  ExampleDelta `json:"bad_examples"`
}

// ExampleDelta is a net count change. Removed is floored at zero.
type ExampleDelta struct {
	Added       int `json:"added"`
	Removed     int `json:"removed"`
	TotalBefore int `json:"total_before"`
	TotalAfter  int `json:"total_after"`
}

// Summary flags metadata changes that matter to consumers. Only severity and
// language changes are listed as breaking; category moves are tracked but
// not breaking.
type Summary struct {
	SeverityChanged bool     `json:"severity_changed"`
	CategoryChanged bool     `json:"category_changed"`
	LanguageChanged bool     `json:"language_changed"`
	BreakingChanges []string `json:"breaking_changes"`
}

// Documents diffs two rule files. Reading either file is the only hard
// failure; structural absences diff as empty.
func Documents(pathA, pathB string) (*Result, error) {
	docA, err := ruledoc.Load(pathA)
	if err != nil {
		return nil, err
	}
	docB, err := ruledoc.Load(pathB)
	if err != nil {
		return nil, err
	}

	a := extract.New(docA).All()
	b := extract.New(docB).All()

	return &Result{
		MetadataChanges:    diffMetadata(a.Metadata, b.Metadata),
		RequirementChanges: diffRequirements(a.Requirements, b.Requirements),
		AntipatternChanges: diffAntipatterns(a.Antipatterns, b.Antipatterns),
		ExampleChanges: ExampleChanges{
			GoodExamples: exampleDelta(len(a.GoodExamples), len(b.GoodExamples)),
			BadExamples:  exampleDelta(len(a.BadExamples), len(b.BadExamples)),
		},
		Summary: summarize(a.Metadata, b.Metadata),
	}, nil
}

func diffMetadata(before, after map[string]any) MetadataChanges {
	changes := MetadataChanges{
		Added:    map[string]any{},
		Removed:  map[string]any{},
		Modified: map[string]ValueChange{},
	}

	for _, key := range unionKeys(before, after) {
		oldVal, inOld := before[key]
		newVal, inNew := after[key]
		switch {
		case !inOld:
			changes.Added[key] = newVal
		case !inNew:
			changes.Removed[key] = oldVal
		case !reflect.DeepEqual(oldVal, newVal):
			changes.Modified[key] = ValueChange{Old: oldVal, New: newVal}
		}
	}
	return changes
}

func diffRequirements(before, after []ruledoc.Requirement) RequirementChanges {
	changes := RequirementChanges{
		Added:    []ruledoc.Requirement{},
		Removed:  []ruledoc.Requirement{},
		Modified: []RequirementChange{},
	}

	byIDOld := map[string]ruledoc.Requirement{}
	for _, r := range before {
		byIDOld[r.ID] = r
	}
	byIDNew := map[string]ruledoc.Requirement{}
	for _, r := range after {
		byIDNew[r.ID] = r
	}

	for _, id := range unionIDs(byIDOld, byIDNew) {
		oldReq, inOld := byIDOld[id]
		newReq, inNew := byIDNew[id]
		switch {
		case !inOld:
			changes.Added = append(changes.Added, newReq)
		case !inNew:
			changes.Removed = append(changes.Removed, oldReq)
		case oldReq != newReq:
			changes.Modified = append(changes.Modified, RequirementChange{
				ID:         id,
				Old:        oldReq,
				New:        newReq,
				Similarity: Similarity(oldReq.Requirement, newReq.Requirement),
			})
		}
	}
	return changes
}

func diffAntipatterns(before, after []ruledoc.Antipattern) AntipatternChanges {
	changes := AntipatternChanges{
		Added:    []ruledoc.Antipattern{},
		Removed:  []ruledoc.Antipattern{},
		Modified: []AntipatternChange{},
	}

	byIDOld := map[string]ruledoc.Antipattern{}
	for _, a := range before {
		byIDOld[a.ID] = a
	}
	byIDNew := map[string]ruledoc.Antipattern{}
	for _, a := range after {
		byIDNew[a.ID] = a
	}

	ids := make([]string, 0, len(byIDOld)+len(byIDNew))
	seen := map[string]bool{}
	for id := range byIDOld {
		seen[id] = true
		ids = append(ids, id)
	}
	for id := range byIDNew {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		oldAnt, inOld := byIDOld[id]
		newAnt, inNew := byIDNew[id]
		switch {
		case !inOld:
			changes.Added = append(changes.Added, newAnt)
		case !inNew:
			changes.Removed = append(changes.Removed, oldAnt)
		case oldAnt != newAnt:
			changes.Modified = append(changes.Modified, AntipatternChange{ID: id, Old: oldAnt, New: newAnt})
		}
	}
	return changes
}

func exampleDelta(before, after int) ExampleDelta {
	removed := 0
	if after < before {
		removed = before - after
	}
	return ExampleDelta{
		Added:       after - before,
		Removed:     removed,
		TotalBefore: before,
		TotalAfter:  after,
	}
}

func summarize(before, after map[string]any) Summary {
	s := Summary{BreakingChanges: []string{}}

	if !reflect.DeepEqual(before["severity"], after["severity"]) {
		s.SeverityChanged = true
		s.BreakingChanges = append(s.BreakingChanges,
			"Severity changed from "+scalar(before["severity"])+" to "+scalar(after["severity"]))
	}
	if !reflect.DeepEqual(before["category"], after["category"]) {
		s.CategoryChanged = true
	}
	if !reflect.DeepEqual(before["language"], after["language"]) {
		s.LanguageChanged = true
		s.BreakingChanges = append(s.BreakingChanges,
			"Language changed from "+scalar(before["language"])+" to "+scalar(after["language"]))
	}
	return s
}

func scalar(v any) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%v", v)
}

// Similarity is a character-level longest-matching-blocks ratio in [0,1]
// between two texts.
func Similarity(a, b string) float64 {
	m := difflib.NewMatcher(splitChars(a), splitChars(b))
	return m.Ratio()
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func unionKeys(a, b map[string]any) []string {
	seen := map[string]bool{}
	var keys []string
	for k := range a {
		seen[k] = true
		keys = append(keys, k)
	}
	for k := range b {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func unionIDs(a, b map[string]ruledoc.Requirement) []string {
	seen := map[string]bool{}
	var ids []string
	for id := range a {
		seen[id] = true
		ids = append(ids, id)
	}
	for id := range b {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
