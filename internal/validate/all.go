// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skipParts are directory names under the rules tree that hold support
// files, not rule documents.
var skipParts = map[string]bool{
	"templates": true,
	"tools":     true,
	"schemas":   true,
	"bundles":   true,
}

// FileReport is the validation outcome for one file.
type FileReport struct {
	Path     string
	Errors   []string
	Warnings []string
}

// Clean reports whether the file raised no findings at all.
func (r FileReport) Clean() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}

// All validates every markdown rule file under rulesDir. One bad file never
// aborts the batch. The boolean is true when no file has errors; warnings
// alone do not fail validation.
func (v *Validator) All(rulesDir string) ([]FileReport, bool, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(rulesDir, "**", "*.md"))
	if err != nil {
		return nil, false, fmt.Errorf("scanning rules directory %s: %w", rulesDir, err)
	}

	var files []string
	for _, m := range matches {
		if !hasSkippedPart(m) {
			files = append(files, m)
		}
	}
	sort.Strings(files)

	valid := true
	reports := make([]FileReport, 0, len(files))
	for _, file := range files {
		errs, warnings := v.File(file)
		if len(errs) > 0 {
			valid = false
		}
		reports = append(reports, FileReport{Path: file, Errors: errs, Warnings: warnings})
	}
	return reports, valid, nil
}

func hasSkippedPart(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if skipParts[part] {
			return true
		}
	}
	return false
}
