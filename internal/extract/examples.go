// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"regexp"
	"strings"

	"rulekit/internal/ruledoc"
)

// ExampleKind selects good or bad examples.
type ExampleKind string

const (
	GoodExamples ExampleKind = "good"
	BadExamples  ExampleKind = "bad"
)

var exampleHeadingRe = regexp.MustCompile(`(?m)^### (GOOD|BAD)_EXAMPLE_(\d+): (.*)$`)

// Examples returns every example block of the given kind. A block is a
// "### {KIND}_EXAMPLE_n: title" heading, a fenced code block with a language
// tag, and a "**Why this is {kind}**:" explanation. Blocks missing the
// explanation line are not captured. The fence is matched lazily before any
// truncation, so code containing "###" (shell comment dividers, embedded
// markdown) survives; only the explanation stops at the next "###".
func (e *Extractor) Examples(kind ExampleKind) []ruledoc.Example {
	upper := strings.ToUpper(string(kind))
	bodyRe := regexp.MustCompile("(?s)```(\\w+)\\n(.*?)```\\n\\*\\*Why this is " + string(kind) + "\\*\\*: ")

	content := e.doc.Content
	headings := exampleHeadingRe.FindAllStringSubmatchIndex(content, -1)

	var examples []ruledoc.Example
	for _, h := range headings {
		if content[h[2]:h[3]] != upper {
			continue
		}

		tail := content[h[1]:]
		m := bodyRe.FindStringSubmatchIndex(tail)
		if m == nil {
			continue
		}

		explanation := tail[m[1]:]
		if next := strings.Index(explanation, "###"); next != -1 {
			explanation = explanation[:next]
		}

		examples = append(examples, ruledoc.Example{
			ID:          upper + "_EXAMPLE_" + content[h[4]:h[5]],
			Title:       content[h[6]:h[7]],
			Language:    tail[m[2]:m[3]],
			Code:        strings.TrimSpace(tail[m[4]:m[5]]),
			Explanation: strings.TrimSpace(explanation),
		})
	}
	return examples
}

var patternBulletRe = regexp.MustCompile("^- \\*\\*(PATTERN_(GOOD|BAD)_\\d+)\\*\\*: `(.*)`")

// Patterns returns the pattern-matching bullets from the patterns section,
// split by polarity. Optional Example/Matches/Avoid because continuation
// lines attach to the preceding bullet; "Avoid because" only applies to bad
// patterns.
func (e *Extractor) Patterns() ruledoc.PatternSet {
	var set ruledoc.PatternSet

	section, ok := e.Section("patterns")
	if !ok {
		return set
	}

	var current *ruledoc.PatternEntry
	flush := func(polarity string) {
		if current == nil {
			return
		}
		if polarity == "GOOD" {
			current.AvoidBecause = ""
			set.Good = append(set.Good, *current)
		} else {
			set.Bad = append(set.Bad, *current)
		}
		current = nil
	}

	polarity := ""
	for _, line := range strings.Split(section, "\n") {
		if m := patternBulletRe.FindStringSubmatch(line); m != nil {
			flush(polarity)
			polarity = m[2]
			current = &ruledoc.PatternEntry{ID: m[1], Pattern: m[3]}
			continue
		}
		if current == nil {
			continue
		}
		switch {
		case strings.HasPrefix(line, "  - Example: "):
			current.Example = strings.TrimSpace(strings.TrimPrefix(line, "  - Example: "))
		case strings.HasPrefix(line, "  - Matches: "):
			current.Matches = strings.TrimSpace(strings.TrimPrefix(line, "  - Matches: "))
		case strings.HasPrefix(line, "  - Avoid because: "):
			current.AvoidBecause = strings.TrimSpace(strings.TrimPrefix(line, "  - Avoid because: "))
		}
	}
	flush(polarity)

	return set
}
