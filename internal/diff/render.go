// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FormatText renders a diff for human reading.
func FormatText(r *Result) string {
	var out []string

	if len(r.Summary.BreakingChanges) > 0 {
		out = append(out, "⚠️  BREAKING CHANGES DETECTED:")
		for _, change := range r.Summary.BreakingChanges {
			out = append(out, "   - "+change)
		}
		out = append(out, "")
	}

	meta := r.MetadataChanges
	if len(meta.Added) > 0 || len(meta.Removed) > 0 || len(meta.Modified) > 0 {
		out = append(out, "METADATA CHANGES:")
		keys := make([]string, 0, len(meta.Modified))
		for k := range meta.Modified {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			change := meta.Modified[k]
			out = append(out, fmt.Sprintf("  %s: %v → %v", k, change.Old, change.New))
		}
		out = append(out, "")
	}

	reqs := r.RequirementChanges
	if len(reqs.Added) > 0 {
		out = append(out, fmt.Sprintf("REQUIREMENTS ADDED (%d):", len(reqs.Added)))
		for _, req := range reqs.Added {
			out = append(out, fmt.Sprintf("  + %s: %s", req.ID, req.Requirement))
		}
		out = append(out, "")
	}
	if len(reqs.Removed) > 0 {
		out = append(out, fmt.Sprintf("REQUIREMENTS REMOVED (%d):", len(reqs.Removed)))
		for _, req := range reqs.Removed {
			out = append(out, fmt.Sprintf("  - %s: %s", req.ID, req.Requirement))
		}
		out = append(out, "")
	}
	if len(reqs.Modified) > 0 {
		out = append(out, fmt.Sprintf("REQUIREMENTS MODIFIED (%d):", len(reqs.Modified)))
		for _, change := range reqs.Modified {
			out = append(out, fmt.Sprintf("  ~ %s (similarity: %.0f%%)", change.ID, change.Similarity*100))
		}
		out = append(out, "")
	}

	examples := r.ExampleChanges
	out = append(out, "EXAMPLE CHANGES:")
	out = append(out, fmt.Sprintf("  Good examples: %d → %d",
		examples.GoodExamples.TotalBefore, examples.GoodExamples.TotalAfter))
	out = append(out, fmt.Sprintf("  Bad examples: %d → %d",
		examples.BadExamples.TotalBefore, examples.BadExamples.TotalAfter))

	return strings.Join(out, "\n")
}

// MigrationGuide renders the diff of two rule versions into a markdown guide.
func MigrationGuide(oldPath, newPath string) (string, error) {
	r, err := Documents(oldPath, newPath)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# Migration Guide\n\n")
	fmt.Fprintf(&b, "Migrating from %s to %s\n\n", filepath.Base(oldPath), filepath.Base(newPath))

	if len(r.MetadataChanges.Modified) > 0 {
		b.WriteString("## Metadata Changes\n\n")
		keys := make([]string, 0, len(r.MetadataChanges.Modified))
		for k := range r.MetadataChanges.Modified {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			change := r.MetadataChanges.Modified[k]
			fmt.Fprintf(&b, "- **%s**: %v → %v\n", k, change.Old, change.New)
		}
		b.WriteString("\n")
	}

	reqs := r.RequirementChanges
	if len(reqs.Added) > 0 || len(reqs.Removed) > 0 || len(reqs.Modified) > 0 {
		b.WriteString("## Requirement Changes\n\n")

		if len(reqs.Added) > 0 {
			b.WriteString("### New Requirements\n")
			for _, req := range reqs.Added {
				fmt.Fprintf(&b, "- **%s**: %s\n", req.ID, req.Requirement)
			}
			b.WriteString("\n")
		}
		if len(reqs.Removed) > 0 {
			b.WriteString("### Removed Requirements\n")
			for _, req := range reqs.Removed {
				fmt.Fprintf(&b, "- **%s**: %s\n", req.ID, req.Requirement)
			}
			b.WriteString("\n")
		}
		if len(reqs.Modified) > 0 {
			b.WriteString("### Modified Requirements\n")
			for _, change := range reqs.Modified {
				fmt.Fprintf(&b, "- **%s** (similarity: %.0f%%)\n", change.ID, change.Similarity*100)
				fmt.Fprintf(&b, "  - Old: %s\n", change.Old.Requirement)
				fmt.Fprintf(&b, "  - New: %s\n", change.New.Requirement)
			}
			b.WriteString("\n")
		}
	}

	if len(r.Summary.BreakingChanges) > 0 {
		b.WriteString("## ⚠️ Breaking Changes\n\n")
		for _, change := range r.Summary.BreakingChanges {
			fmt.Fprintf(&b, "- %s\n", change)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Migration Steps\n\n")
	b.WriteString("1. Review all modified requirements above\n")
	b.WriteString("2. Update your codebase to comply with new requirements\n")
	b.WriteString("3. Remove code that violates new antipatterns\n")
	b.WriteString("4. Run validation tools to ensure compliance\n")

	return b.String(), nil
}
