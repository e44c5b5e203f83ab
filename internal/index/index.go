// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index reads the externally maintained rules index. The index maps
// rule IDs to file locations and classification data; this package treats it
// as read-only reference data.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Entry describes one indexed rule.
type Entry struct {
	FilePath      string   `json:"file_path"`
	Language      string   `json:"language"`
	Category      string   `json:"category"`
	Severity      string   `json:"severity"`
	Tags          []string `json:"tags"`
	Prerequisites []string `json:"prerequisites"`
	Summary       string   `json:"summary"`
	Version       string   `json:"version"`
	LastUpdated   string   `json:"last_updated"`
}

// Index is the full rule-id to entry mapping.
type Index struct {
	Rules map[string]Entry `json:"rules"`
}

// Load reads the index file. A missing file yields an empty index; a present
// but unparseable one is an error.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &Index{Rules: map[string]Entry{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening rules index: %w", err)
	}
	defer func() { _ = f.Close() }()

	var ix Index
	if err := json.NewDecoder(f).Decode(&ix); err != nil {
		return nil, fmt.Errorf("decoding rules index %s: %w", path, err)
	}
	if ix.Rules == nil {
		ix.Rules = map[string]Entry{}
	}
	return &ix, nil
}

// IDs returns all rule IDs in lexicographic order.
func (ix *Index) IDs() []string {
	ids := make([]string, 0, len(ix.Rules))
	for id := range ix.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Change is one rule whose last_updated date is at or after a cutoff.
type Change struct {
	RuleID      string `json:"rule_id"`
	LastUpdated string `json:"last_updated"`
	Version     string `json:"version"`
	Summary     string `json:"summary"`
	FilePath    string `json:"file_path"`
}

// ChangesSince returns rules updated on or after the given YYYY-MM-DD date,
// newest first. Entries with unparseable dates are skipped and reported
// together so one bad entry does not hide the rest.
func (ix *Index) ChangesSince(date string) ([]Change, []error) {
	cutoff, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, []error{fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", date, err)}
	}

	var (
		changes []Change
		errs    []error
	)
	for _, id := range ix.IDs() {
		entry := ix.Rules[id]
		updated, err := time.Parse("2006-01-02", entry.LastUpdated)
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %s has invalid last_updated %q", id, entry.LastUpdated))
			continue
		}
		if !updated.Before(cutoff) {
			changes = append(changes, Change{
				RuleID:      id,
				LastUpdated: entry.LastUpdated,
				Version:     entry.Version,
				Summary:     entry.Summary,
				FilePath:    entry.FilePath,
			})
		}
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].LastUpdated > changes[j].LastUpdated
	})
	return changes, errs
}
