// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"rulekit/internal/ruledoc"
)

// standardMarkers are the extraction-marker names the format defines. Other
// names work but draw a warning.
var standardMarkers = map[string]bool{
	"requirements": true,
	"antipatterns": true,
	"patterns":     true,
	"metrics":      true,
}

var (
	markerRe      = regexp.MustCompile(`<!-- EXTRACT:(\w+):(start|end) -->`)
	reqIDRe       = regexp.MustCompile(`\*\*\[REQ(\d+)\]\*\*`)
	antIDRe       = regexp.MustCompile(`\*\*\[ANT(\d+)\]\*\*`)
	reqAnywhereRe = regexp.MustCompile(`\*\*\[REQ\d+\]\*\*`)
	antAnywhereRe = regexp.MustCompile(`\*\*\[ANT\d+\]\*\*`)
	goodHeadingRe = regexp.MustCompile(`### GOOD_EXAMPLE_\d+`)
	badHeadingRe  = regexp.MustCompile(`### BAD_EXAMPLE_\d+`)
)

// File validates one rule document. All findings are aggregated; nothing
// short-circuits, so the caller sees the complete picture in one pass.
func (v *Validator) File(path string) (errs, warnings []string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("File not found: %s", path)}, nil
	}
	content := string(data)

	meta, metaErr := ruledoc.ParseFrontMatter(content)
	if metaErr != nil {
		errs = append(errs, fmt.Sprintf("Invalid YAML metadata: %v", metaErr))
	}
	if meta == nil {
		errs = append(errs, "No YAML front matter found")
	} else {
		errs = append(errs, v.metadataErrors(meta)...)
	}

	structErrs, structWarns := v.contentStructure(content)
	errs = append(errs, structErrs...)
	warnings = append(warnings, structWarns...)

	markerErrs, markerWarns := extractionMarkers(content)
	errs = append(errs, markerErrs...)
	warnings = append(warnings, markerWarns...)

	warnings = append(warnings, idSequencing(content)...)
	warnings = append(warnings, exampleCounts(content)...)

	return errs, warnings
}

func (v *Validator) metadataErrors(meta map[string]any) []string {
	var errs []string

	for _, field := range v.metadata.Required {
		if _, ok := meta[field]; !ok {
			errs = append(errs, "Missing required metadata field: "+field)
		}
	}

	fields := make([]string, 0, len(meta))
	for field := range meta {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		schema, ok := v.metadata.Properties[field]
		if !ok {
			continue
		}
		errs = append(errs, fieldErrors(field, meta[field], schema)...)
	}
	return errs
}

func fieldErrors(field string, value any, schema FieldSchema) []string {
	var errs []string

	switch schema.Type {
	case "string":
		if _, ok := value.(string); !ok {
			errs = append(errs, fmt.Sprintf("%s: Expected string, got %T", field, value))
		}
	case "array":
		if _, ok := value.([]any); !ok {
			errs = append(errs, fmt.Sprintf("%s: Expected array, got %T", field, value))
		}
	}

	if len(schema.Enum) > 0 && !enumContains(schema.Enum, value) {
		errs = append(errs, fmt.Sprintf("%s: Invalid value '%v'. Must be one of: %v", field, value, schema.Enum))
	}

	if schema.Pattern != "" {
		if s, ok := value.(string); ok {
			// Anchored at the start like a conventional pattern match.
			re, err := regexp.Compile("^(?:" + schema.Pattern + ")")
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: Invalid schema pattern %s", field, schema.Pattern))
			} else if !re.MatchString(s) {
				errs = append(errs, fmt.Sprintf("%s: Value '%s' doesn't match pattern %s", field, s, schema.Pattern))
			}
		}
	}

	if schema.Format == "date" {
		if s, ok := value.(string); ok {
			if _, err := time.Parse("2006-01-02", s); err != nil {
				errs = append(errs, field+": Invalid date format. Use YYYY-MM-DD")
			}
		}
	}

	return errs
}

func enumContains(enum []any, value any) bool {
	for _, allowed := range enum {
		if reflect.DeepEqual(allowed, value) {
			return true
		}
	}
	return false
}

func (v *Validator) contentStructure(content string) (errs, warnings []string) {
	for _, section := range v.content.RequiredSections {
		if !strings.Contains(content, "## "+section) {
			errs = append(errs, "Missing required section: "+section)
		}
	}

	// Subheading variants of these sections are exempt from the record
	// format.
	if strings.Contains(content, "## MUST_FOLLOW") && !strings.Contains(content, "### MUST_FOLLOW") &&
		!reqAnywhereRe.MatchString(content) {
		warnings = append(warnings, "MUST_FOLLOW section should use REQ### format")
	}
	if strings.Contains(content, "## MUST_NOT_DO") && !strings.Contains(content, "### MUST_NOT_DO") &&
		!antAnywhereRe.MatchString(content) {
		warnings = append(warnings, "MUST_NOT_DO section should use ANT### format")
	}
	return errs, warnings
}

func extractionMarkers(content string) (errs, warnings []string) {
	starts := map[string]bool{}
	ends := map[string]bool{}
	for _, m := range markerRe.FindAllStringSubmatch(content, -1) {
		if m[2] == "start" {
			starts[m[1]] = true
		} else {
			ends[m[1]] = true
		}
	}

	for _, name := range sortedNames(starts) {
		if !ends[name] {
			errs = append(errs, "Missing end marker for EXTRACT:"+name)
		}
	}
	for _, name := range sortedNames(ends) {
		if !starts[name] {
			errs = append(errs, "Missing start marker for EXTRACT:"+name)
		}
	}
	for _, name := range sortedNames(starts) {
		if !standardMarkers[name] {
			warnings = append(warnings, "Non-standard extraction marker: "+name)
		}
	}
	return errs, warnings
}

// idSequencing checks that REQ and ANT numbers, independently, run 001..N.
// Only the first gap per family is reported; a single renumbering fixes the
// rest anyway.
func idSequencing(content string) []string {
	var warnings []string
	if w := sequenceWarning(content, reqIDRe, "REQ"); w != "" {
		warnings = append(warnings, w)
	}
	if w := sequenceWarning(content, antIDRe, "ANT"); w != "" {
		warnings = append(warnings, w)
	}
	return warnings
}

func sequenceWarning(content string, re *regexp.Regexp, prefix string) string {
	var numbers []int
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	if len(numbers) == 0 {
		return ""
	}

	sort.Ints(numbers)
	for i, n := range numbers {
		want := i + 1
		if n != want {
			return fmt.Sprintf("%s IDs are not sequential. Expected %s%03d, found %s%03d",
				prefix, prefix, want, prefix, n)
		}
	}
	return ""
}

func exampleCounts(content string) []string {
	var warnings []string
	if len(goodHeadingRe.FindAllString(content, -1)) < 2 {
		warnings = append(warnings, "Should have at least 2 GOOD_EXAMPLE sections")
	}
	if len(badHeadingRe.FindAllString(content, -1)) < 1 {
		warnings = append(warnings, "Should have at least 1 BAD_EXAMPLE section")
	}
	return warnings
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
