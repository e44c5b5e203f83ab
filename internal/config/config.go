// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config resolves where the rules workspace lives. Defaults can be
// overridden by RULEKIT_* environment variables or the --rules-dir flag; the
// flag wins.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. RULEKIT_RULES_DIR.
const EnvPrefix = "RULEKIT"

// Settings are the resolved workspace paths.
type Settings struct {
	RulesDir   string
	BundlesDir string
	IndexPath  string
	SchemaDir  string
}

// Load resolves settings. rulesDirFlag, when non-empty, overrides both the
// default and any environment value; the derived paths follow the rules
// directory unless individually overridden.
func Load(rulesDirFlag string) *Settings {
	v := viper.New()
	v.SetDefault("rules_dir", "rules")
	v.SetDefault("bundles_dir", "")
	v.SetDefault("index_path", "")
	v.SetDefault("schema_dir", "")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if rulesDirFlag != "" {
		v.Set("rules_dir", rulesDirFlag)
	}

	s := &Settings{
		RulesDir:   v.GetString("rules_dir"),
		BundlesDir: v.GetString("bundles_dir"),
		IndexPath:  v.GetString("index_path"),
		SchemaDir:  v.GetString("schema_dir"),
	}
	if s.BundlesDir == "" {
		s.BundlesDir = filepath.Join(s.RulesDir, "bundles")
	}
	if s.IndexPath == "" {
		s.IndexPath = filepath.Join(s.RulesDir, "rules-index.json")
	}
	if s.SchemaDir == "" {
		s.SchemaDir = filepath.Join(s.RulesDir, "schemas")
	}
	return s
}
