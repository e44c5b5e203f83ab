// SPDX-License-Identifier: AGPL-3.0-or-later

// Package extract recovers typed records from a rule document's markdown body
// without a general markdown parser. Extraction is tolerant: missing structure
// yields absent results, never errors.
package extract

import (
	"strings"

	"rulekit/internal/ruledoc"
)

// Extractor reads sections and records out of a single document.
type Extractor struct {
	doc *ruledoc.Document
}

// New returns an Extractor over the given document.
func New(doc *ruledoc.Document) *Extractor {
	return &Extractor{doc: doc}
}

// Section returns the named section's text, trimmed. An explicit
// <!-- EXTRACT:name:start/end --> marker pair always wins over a heading
// match; markers are the author saying exactly what to extract.
// The second return is false when the section is absent, which is not an
// error condition.
func (e *Extractor) Section(name string) (string, bool) {
	if text, ok := e.sectionByMarkers(name); ok {
		return text, true
	}
	return e.sectionByHeading(name)
}

func (e *Extractor) sectionByMarkers(name string) (string, bool) {
	start := "<!-- EXTRACT:" + name + ":start -->"
	end := "<!-- EXTRACT:" + name + ":end -->"

	i := strings.Index(e.doc.Content, start)
	if i == -1 {
		return "", false
	}
	rest := e.doc.Content[i+len(start):]
	j := strings.Index(rest, end)
	if j == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:j]), true
}

// sectionByHeading matches a line reading exactly "## <NAME>" with the name
// uppercased and dashes turned to underscores, and captures everything until
// the next heading line or end of document.
func (e *Extractor) sectionByHeading(name string) (string, bool) {
	heading := "## " + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))

	lines := strings.Split(e.doc.Content, "\n")
	for i, line := range lines {
		if strings.TrimRight(line, "\r") != heading {
			continue
		}
		var body []string
		for _, next := range lines[i+1:] {
			if strings.HasPrefix(next, "##") {
				break
			}
			body = append(body, next)
		}
		return strings.TrimSpace(strings.Join(body, "\n")), true
	}
	return "", false
}
