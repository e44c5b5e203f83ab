// SPDX-License-Identifier: AGPL-3.0-or-later

package ruledoc

// Requirement is one MUST_FOLLOW record, tagged **[REQnnn]** in the document.
type Requirement struct {
	ID          string `json:"id"`
	Requirement string `json:"requirement"`
	Rationale   string `json:"rationale,omitempty"`
	Impact      string `json:"impact,omitempty"`
}

// Antipattern is one MUST_NOT_DO record, tagged **[ANTnnn]**. Its numbering
// space is independent of requirements.
type Antipattern struct {
	ID          string `json:"id"`
	Antipattern string `json:"antipattern"`
	Why         string `json:"why,omitempty"`
	Instead     string `json:"instead,omitempty"`
}

// Example is one GOOD_EXAMPLE or BAD_EXAMPLE block: heading, fenced code and
// the mandatory "Why this is good/bad" explanation. Language is the code
// fence tag, not the rule's own language.
type Example struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
}

// PatternEntry is one PATTERN_GOOD/PATTERN_BAD bullet. AvoidBecause is only
// meaningful on bad patterns.
type PatternEntry struct {
	ID           string `json:"id"`
	Pattern      string `json:"pattern"`
	Example      string `json:"example,omitempty"`
	Matches      string `json:"matches,omitempty"`
	AvoidBecause string `json:"avoid_because,omitempty"`
}

// PatternSet groups pattern entries by polarity.
type PatternSet struct {
	Good []PatternEntry `json:"good"`
	Bad  []PatternEntry `json:"bad"`
}
