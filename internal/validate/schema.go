// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate checks rule documents against declarative schemas and
// structural invariants, and can auto-repair common formatting defects.
// Errors mean a document is non-conformant; warnings are advisory and never
// fail validation.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Schema file names expected under the schema directory.
const (
	MetadataSchemaFile = "rule-schema.json"
	ContentSchemaFile  = "rule-content-schema.yaml"
)

// FieldSchema constrains one metadata field.
type FieldSchema struct {
	Type    string `json:"type"`
	Enum    []any  `json:"enum"`
	Pattern string `json:"pattern"`
	Format  string `json:"format"`
}

// MetadataSchema is the declarative front-matter schema.
type MetadataSchema struct {
	Required   []string               `json:"required"`
	Properties map[string]FieldSchema `json:"properties"`
}

// ContentSchema names the headings a rule body must carry.
type ContentSchema struct {
	RequiredSections []string `yaml:"required_sections"`
}

// Validator holds the loaded schemas. Missing schema files load as empty
// schemas, so validation degrades to the structural checks alone.
type Validator struct {
	metadata MetadataSchema
	content  ContentSchema
}

// New loads both schemas from schemaDir.
func New(schemaDir string) (*Validator, error) {
	v := &Validator{}

	metaPath := filepath.Join(schemaDir, MetadataSchemaFile)
	if data, err := os.ReadFile(metaPath); err == nil {
		if err := json.Unmarshal(data, &v.metadata); err != nil {
			return nil, fmt.Errorf("parsing metadata schema %s: %w", metaPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading metadata schema: %w", err)
	}

	contentPath := filepath.Join(schemaDir, ContentSchemaFile)
	if data, err := os.ReadFile(contentPath); err == nil {
		if err := yaml.Unmarshal(data, &v.content); err != nil {
			return nil, fmt.Errorf("parsing content schema %s: %w", contentPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading content schema: %w", err)
	}

	return v, nil
}
