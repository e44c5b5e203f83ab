// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"path/filepath"
	"sort"
	"strings"

	"rulekit/internal/extract"
	"rulekit/internal/index"
	"rulekit/internal/ruledoc"
)

// Differ compares rules through the index. Document-pair operations do not
// need one; category comparison does.
type Differ struct {
	index    *index.Index
	rulesDir string
}

// New returns a Differ over the given index and rules directory.
func New(ix *index.Index, rulesDir string) *Differ {
	return &Differ{index: ix, rulesDir: rulesDir}
}

// Comparison is one rule pair with its requirement-text similarity.
type Comparison struct {
	Rule1        string  `json:"rule1"`
	Rule2        string  `json:"rule2"`
	Similarity   float64 `json:"similarity"`
	SameSeverity bool    `json:"both_severity"`
}

// CompareCategory pairwise-compares every rule in a category, optionally
// filtered by language, and returns all pairs sorted by similarity
// descending. Quadratic in the rule count, which stays small in practice.
// A rule file that fails to load scores zero against everything rather than
// aborting the batch.
func (d *Differ) CompareCategory(category, language string) []Comparison {
	var ids []string
	for _, id := range d.index.IDs() {
		entry := d.index.Rules[id]
		if entry.Category != category {
			continue
		}
		if language != "" && entry.Language != language {
			continue
		}
		ids = append(ids, id)
	}

	var comparisons []Comparison
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := d.index.Rules[ids[i]], d.index.Rules[ids[j]]
			comparisons = append(comparisons, Comparison{
				Rule1:        ids[i],
				Rule2:        ids[j],
				Similarity:   d.ruleSimilarity(a.FilePath, b.FilePath),
				SameSeverity: a.Severity == b.Severity,
			})
		}
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		if comparisons[i].Similarity != comparisons[j].Similarity {
			return comparisons[i].Similarity > comparisons[j].Similarity
		}
		if comparisons[i].Rule1 != comparisons[j].Rule1 {
			return comparisons[i].Rule1 < comparisons[j].Rule1
		}
		return comparisons[i].Rule2 < comparisons[j].Rule2
	})
	return comparisons
}

// ruleSimilarity is the Jaccard similarity over the lowercase word sets of
// each rule's requirement texts.
func (d *Differ) ruleSimilarity(pathA, pathB string) float64 {
	wordsA, okA := d.requirementWords(pathA)
	wordsB, okB := d.requirementWords(pathB)
	if !okA || !okB {
		return 0.0
	}
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 0.0
	}

	intersection := 0
	union := len(wordsB)
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func (d *Differ) requirementWords(path string) (map[string]bool, bool) {
	doc, err := ruledoc.Load(filepath.Join(d.rulesDir, path))
	if err != nil {
		return nil, false
	}

	words := map[string]bool{}
	for _, req := range extract.New(doc).Requirements() {
		for _, w := range strings.Fields(strings.ToLower(req.Requirement)) {
			words[w] = true
		}
	}
	return words, true
}
