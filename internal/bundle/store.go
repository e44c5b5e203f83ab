// SPDX-License-Identifier: AGPL-3.0-or-later

package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"rulekit/internal/extract"
)

// ErrNotFound reports a named bundle that does not exist in the store.
var ErrNotFound = errors.New("bundle not found")

// Store persists named bundles as one JSON file per name under a directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. Nothing is created until Init.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Init creates the bundles directory. Callers invoke this explicitly so a
// failure surfaces instead of being assumed away at construction time.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating bundles directory %s: %w", s.dir, err)
	}
	return nil
}

// Path returns the file a named bundle lives at.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes a named bundle atomically and returns its path.
func (s *Store) Save(name string, b *Bundle) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	path := s.Path(name)
	if err := writeJSON(path, b); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a named bundle, or ErrNotFound if it was never saved.
func (s *Store) Load(name string) (*Bundle, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	b, err := ReadFile(s.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("bundle %q: %w", name, ErrNotFound)
	}
	return b, err
}

func checkName(name string) error {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid bundle name %q", name)
	}
	return nil
}

// ReadFile loads a bundle from an arbitrary JSON file.
func ReadFile(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var b Bundle
	if err := json.NewDecoder(f).Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding bundle %s: %w", path, err)
	}
	if b.Rules == nil {
		b.Rules = map[string]*Rule{}
	}
	return &b, nil
}

// WriteFile writes a bundle to an arbitrary path, atomically via a temp file
// in the target directory.
func WriteFile(path string, b *Bundle) error {
	return writeJSON(path, b)
}

func writeJSON(path string, b *Bundle) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "bundle-tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving bundle to %s: %w", path, err)
	}
	return nil
}

// CreateNamed builds a bundle from explicit rule files and saves it under
// name. Rule IDs are resolved by matching each file's base name against the
// index's file paths; files not in the index are skipped.
func (b *Bundler) CreateNamed(name string, ruleFiles, sections []string) (string, error) {
	if b.store == nil {
		return "", errors.New("no bundle store configured")
	}
	if len(sections) == 0 {
		sections = []string{
			extract.SectionRuleSummary,
			extract.SectionRequirements,
			extract.SectionAntipatterns,
			extract.SectionGoodExamples,
		}
	}

	var ids []string
	for _, file := range ruleFiles {
		base := filepath.Base(file)
		for _, id := range b.index.IDs() {
			if strings.HasSuffix(b.index.Rules[id].FilePath, base) {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Strings(ids)

	bundle := b.Build(ids, sections)
	bundle.Metadata = map[string]any{
		"name":       name,
		"id":         uuid.NewString(),
		"created":    time.Now().UTC().Format(time.RFC3339),
		"rule_count": len(ids),
		"sections":   sections,
	}

	return b.store.Save(name, bundle)
}

// LoadNamed reads a previously saved named bundle.
func (b *Bundler) LoadNamed(name string) (*Bundle, error) {
	if b.store == nil {
		return nil, errors.New("no bundle store configured")
	}
	return b.store.Load(name)
}
