// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	reqOneDigitRe  = regexp.MustCompile(`\*\*\[REQ(\d)\]\*\*`)
	reqTwoDigitRe  = regexp.MustCompile(`\*\*\[REQ(\d\d)\]\*\*`)
	antOneDigitRe  = regexp.MustCompile(`\*\*\[ANT(\d)\]\*\*`)
	antTwoDigitRe  = regexp.MustCompile(`\*\*\[ANT(\d\d)\]\*\*`)
	goodExampleRe  = regexp.MustCompile(`### Good Example (\d)`)
	badExampleRe   = regexp.MustCompile(`### Bad Example (\d)`)
	subSectionRe   = regexp.MustCompile(`(?m)^### `)
	mustFollowLine = "### MUST_FOLLOW\n"
)

// Fix applies best-effort textual repairs in place: pad one- and two-digit
// REQ/ANT IDs to three digits, rename loose example headings, and wrap an
// existing MUST_FOLLOW section in extraction markers when missing. It
// returns whether the file changed. Fix does not re-validate; callers
// re-invoke validation themselves.
func Fix(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading rule file %s: %w", path, err)
	}
	original := string(data)
	content := original

	content = reqOneDigitRe.ReplaceAllString(content, "**[REQ00${1}]**")
	content = reqTwoDigitRe.ReplaceAllString(content, "**[REQ0${1}]**")
	content = antOneDigitRe.ReplaceAllString(content, "**[ANT00${1}]**")
	content = antTwoDigitRe.ReplaceAllString(content, "**[ANT0${1}]**")

	content = goodExampleRe.ReplaceAllString(content, "### GOOD_EXAMPLE_00${1}")
	content = badExampleRe.ReplaceAllString(content, "### BAD_EXAMPLE_00${1}")

	content = insertRequirementMarkers(content)

	if content == original {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("writing rule file %s: %w", path, err)
	}
	return true, nil
}

// insertRequirementMarkers wraps the MUST_FOLLOW section in
// EXTRACT:requirements markers if it has none. The end marker goes before
// the next "### " heading; with no following heading only the start marker
// is inserted.
func insertRequirementMarkers(content string) string {
	if !strings.Contains(content, "## MUST_FOLLOW") {
		return content
	}
	if strings.Contains(content, "<!-- EXTRACT:requirements:start -->") {
		return content
	}
	i := strings.Index(content, mustFollowLine)
	if i == -1 {
		return content
	}

	insertAt := i + len(mustFollowLine)
	content = content[:insertAt] + "<!-- EXTRACT:requirements:start -->\n" + content[insertAt:]

	rest := content[insertAt:]
	for _, loc := range subSectionRe.FindAllStringIndex(rest, -1) {
		if strings.HasPrefix(rest[loc[0]:], "### MUST_FOLLOW") {
			continue
		}
		at := insertAt + loc[0]
		return content[:at] + "<!-- EXTRACT:requirements:end -->\n" + content[at:]
	}
	return content
}
