// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import "rulekit/internal/ruledoc"

// Canonical section names used across the rule format.
const (
	SectionRuleSummary     = "RULE_SUMMARY"
	SectionContext         = "CONTEXT_AND_RATIONALE"
	SectionMustFollow      = "MUST_FOLLOW"
	SectionMustNotDo       = "MUST_NOT_DO"
	SectionRequirements    = "requirements"
	SectionAntipatterns    = "antipatterns"
	SectionGoodExamples    = "good_examples"
	SectionBadExamples     = "bad_examples"
	SectionPatterns        = "patterns"
	SectionMetrics         = "metrics"
	SectionAutomatedChecks = "AUTOMATED_CHECKS"
)

// Kind is the typed dispatch target for a requested section name.
type Kind int

const (
	// KindSection is any free-form section addressed by name.
	KindSection Kind = iota
	KindRequirements
	KindAntipatterns
	KindGoodExamples
	KindBadExamples
	KindPatterns
	KindAll
)

// KindOf maps a requested name to its extraction kind. Unknown names are
// free-form sections, resolved by marker or heading.
func KindOf(name string) Kind {
	switch name {
	case SectionRequirements:
		return KindRequirements
	case SectionAntipatterns:
		return KindAntipatterns
	case SectionGoodExamples:
		return KindGoodExamples
	case SectionBadExamples:
		return KindBadExamples
	case SectionPatterns:
		return KindPatterns
	case "all":
		return KindAll
	default:
		return KindSection
	}
}

// Extract resolves a named section to its typed value. The boolean reports
// whether anything was found; callers treat false as "section absent".
// Patterns are the exception: they always resolve, to a set with empty good
// and bad lists when the document has none.
func (e *Extractor) Extract(name string) (any, bool) {
	switch KindOf(name) {
	case KindRequirements:
		reqs := e.Requirements()
		return reqs, len(reqs) > 0
	case KindAntipatterns:
		ants := e.Antipatterns()
		return ants, len(ants) > 0
	case KindGoodExamples:
		ex := e.Examples(GoodExamples)
		return ex, len(ex) > 0
	case KindBadExamples:
		ex := e.Examples(BadExamples)
		return ex, len(ex) > 0
	case KindPatterns:
		set := e.Patterns()
		if set.Good == nil {
			set.Good = []ruledoc.PatternEntry{}
		}
		if set.Bad == nil {
			set.Bad = []ruledoc.PatternEntry{}
		}
		return set, true
	case KindAll:
		return e.All(), true
	default:
		return e.Section(name)
	}
}

// Result aggregates every extractable part of one document. Absent sections
// stay zero-valued and are omitted from JSON rather than faked as empty.
type Result struct {
	Metadata        map[string]any        `json:"metadata,omitempty"`
	RuleSummary     string                `json:"rule_summary,omitempty"`
	Requirements    []ruledoc.Requirement `json:"requirements,omitempty"`
	Antipatterns    []ruledoc.Antipattern `json:"antipatterns,omitempty"`
	GoodExamples    []ruledoc.Example     `json:"good_examples,omitempty"`
	BadExamples     []ruledoc.Example     `json:"bad_examples,omitempty"`
	Patterns        *ruledoc.PatternSet   `json:"patterns,omitempty"`
	Metrics         string                `json:"metrics,omitempty"`
	AutomatedChecks string                `json:"automated_checks,omitempty"`
}

// All extracts every known section and the front matter in one pass.
func (e *Extractor) All() *Result {
	r := &Result{
		Metadata:     e.doc.Metadata,
		Requirements: e.Requirements(),
		Antipatterns: e.Antipatterns(),
		GoodExamples: e.Examples(GoodExamples),
		BadExamples:  e.Examples(BadExamples),
	}
	r.RuleSummary, _ = e.Section(SectionRuleSummary)
	r.Metrics, _ = e.Section(SectionMetrics)
	r.AutomatedChecks, _ = e.Section(SectionAutomatedChecks)

	if set := e.Patterns(); len(set.Good) > 0 || len(set.Bad) > 0 {
		r.Patterns = &set
	}
	return r
}
