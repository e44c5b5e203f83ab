// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ruledoc defines the rule document model: one markdown file with
// YAML front matter and the typed records recoverable from its body.
package ruledoc

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is one loaded rule file. It is immutable after Load; callers that
// need fresh content re-load from disk.
type Document struct {
	Path     string
	Content  string
	Metadata map[string]any
}

// Load reads a rule file and parses its front matter. Unreadable files and
// invalid YAML front matter are the only hard failures.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file %s: %w", path, err)
	}

	content := string(data)
	meta, err := ParseFrontMatter(content)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}

	return &Document{
		Path:     path,
		Content:  content,
		Metadata: meta,
	}, nil
}

// ParseFrontMatter extracts the "---"-delimited YAML block at the top of the
// content. A document without front matter yields a nil map, not an error.
func ParseFrontMatter(content string) (map[string]any, error) {
	if !strings.HasPrefix(content, "---") {
		return nil, nil
	}
	end := strings.Index(content[3:], "---")
	if end == -1 {
		return nil, nil
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(content[3:3+end]), &meta); err != nil {
		return nil, fmt.Errorf("invalid YAML front matter: %w", err)
	}
	return meta, nil
}
