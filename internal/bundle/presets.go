// SPDX-License-Identifier: AGPL-3.0-or-later

package bundle

import (
	"fmt"
	"sort"

	"rulekit/internal/extract"
)

// Preset is a predefined bundle configuration: either an explicit rule list
// or a category filter, plus the sections to pull.
type Preset struct {
	Description string
	Rules       []string
	Categories  []string
	Sections    []string
	MaxRules    int
}

// Presets returns the fixed preset table.
func Presets() map[string]Preset {
	return map[string]Preset{
		"typescript-testing": {
			Description: "TypeScript test writing bundle",
			Rules:       []string{"typescript-test-naming", "universal-test-naming"},
			Sections:    []string{extract.SectionRuleSummary, extract.SectionRequirements, extract.SectionGoodExamples},
		},
		"code-review": {
			Description: "Code review checklist",
			Categories:  []string{"code-quality"},
			Sections:    []string{extract.SectionRuleSummary, extract.SectionAntipatterns},
		},
		"security-audit": {
			Description: "Security audit rules",
			Categories:  []string{"security"},
			Sections:    []string{extract.SectionRuleSummary, extract.SectionRequirements, extract.SectionAntipatterns},
		},
		"git-workflow": {
			Description: "Git workflow standards",
			Categories:  []string{"git-workflow"},
			Sections:    []string{extract.SectionRuleSummary, extract.SectionRequirements, extract.SectionGoodExamples},
		},
		"quick-reference": {
			Description: "Minimal quick reference",
			Sections:    []string{extract.SectionRuleSummary},
			MaxRules:    10,
		},
	}
}

// PresetNames returns the preset names sorted.
func PresetNames() []string {
	names := make([]string, 0, len(Presets()))
	for name := range Presets() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromPreset builds the bundle a named preset describes.
func (b *Bundler) FromPreset(name string) (*Bundle, error) {
	preset, ok := Presets()[name]
	if !ok {
		return nil, fmt.Errorf("unknown bundle preset %q", name)
	}

	switch {
	case len(preset.Rules) > 0:
		return b.Build(preset.Rules, preset.Sections), nil
	case len(preset.Categories) > 0:
		return b.ByCriteria("", preset.Categories, preset.Sections), nil
	default:
		ids := b.index.IDs()
		if preset.MaxRules > 0 && len(ids) > preset.MaxRules {
			ids = ids[:preset.MaxRules]
		}
		return b.Build(ids, preset.Sections), nil
	}
}
