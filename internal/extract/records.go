// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"regexp"
	"strings"

	"rulekit/internal/ruledoc"
)

var (
	itemBoundaryRe = regexp.MustCompile(`(?m)^\d+\.[ \t]*`)
	recordIDRe     = regexp.MustCompile(`\*\*\[(\w+)\]\*\* `)
)

// record is one parsed "**[ID]** text" item with up to two continuation
// fields, before it is shaped into a Requirement or Antipattern.
type record struct {
	id     string
	text   string
	field1 string
	field2 string
}

// Requirements returns every REQ record from the requirements section,
// falling back to the MUST_FOLLOW heading. Entries without an ID tag are
// silently skipped.
func (e *Extractor) Requirements() []ruledoc.Requirement {
	section, ok := e.Section("requirements")
	if !ok {
		section, ok = e.Section("MUST_FOLLOW")
	}
	if !ok {
		return nil
	}

	var reqs []ruledoc.Requirement
	for _, r := range parseRecords(section, "Rationale", "Impact") {
		reqs = append(reqs, ruledoc.Requirement{
			ID:          r.id,
			Requirement: r.text,
			Rationale:   r.field1,
			Impact:      r.field2,
		})
	}
	return reqs
}

// Antipatterns returns every ANT record from the antipatterns section,
// falling back to the MUST_NOT_DO heading.
func (e *Extractor) Antipatterns() []ruledoc.Antipattern {
	section, ok := e.Section("antipatterns")
	if !ok {
		section, ok = e.Section("MUST_NOT_DO")
	}
	if !ok {
		return nil
	}

	var ants []ruledoc.Antipattern
	for _, r := range parseRecords(section, "Why", "Instead") {
		ants = append(ants, ruledoc.Antipattern{
			ID:          r.id,
			Antipattern: r.text,
			Why:         r.field1,
			Instead:     r.field2,
		})
	}
	return ants
}

// parseRecords splits the section at numbered-item boundaries and parses one
// record per item. Each record is "**[ID]** text" with optional indented
// "- <label>:" continuation lines; text runs to the next numbered item.
func parseRecords(section, label1, label2 string) []record {
	var records []record
	for _, chunk := range splitItems(section) {
		loc := recordIDRe.FindStringSubmatchIndex(chunk)
		if loc == nil {
			continue
		}

		r := record{id: chunk[loc[2]:loc[3]]}
		body := chunk[loc[1]:]

		marker1 := "\n   - " + label1 + ": "
		marker2 := "\n   - " + label2 + ": "
		i1 := strings.Index(body, marker1)
		i2 := strings.Index(body, marker2)

		textEnd := len(body)
		if i1 != -1 && i1 < textEnd {
			textEnd = i1
		}
		if i2 != -1 && i2 < textEnd {
			textEnd = i2
		}
		r.text = strings.TrimSpace(body[:textEnd])

		if i1 != -1 {
			end := len(body)
			if i2 != -1 && i2 > i1 {
				end = i2
			}
			r.field1 = strings.TrimSpace(body[i1+len(marker1) : end])
		}
		if i2 != -1 {
			r.field2 = strings.TrimSpace(body[i2+len(marker2):])
		}

		records = append(records, r)
	}
	return records
}

// splitItems cuts section text into item chunks, keeping any text before the
// first numbered item so records outside numbered lists still parse.
func splitItems(section string) []string {
	bounds := itemBoundaryRe.FindAllStringIndex(section, -1)
	if len(bounds) == 0 {
		return []string{section}
	}

	var chunks []string
	if bounds[0][0] > 0 {
		chunks = append(chunks, section[:bounds[0][0]])
	}
	for i, b := range bounds {
		end := len(section)
		if i+1 < len(bounds) {
			end = bounds[i+1][0]
		}
		chunks = append(chunks, section[b[1]:end])
	}
	return chunks
}
