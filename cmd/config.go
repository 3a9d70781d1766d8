package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// runConfig is the merged CLI configuration. Defaults are authoritative; a
// user config file overrides individual fields.
type runConfig struct {
	PreviewWidth int  // rendered table width (0 = detect from terminal)
	PageLines    int  // lines per page for paginated output
	LeafOnly     bool // default leaf-only mode for derive/fields
	LogLevel     int8
}

// fileConfig mirrors the YAML config file. Pointer fields distinguish
// "absent" from zero values so the file only overrides what it sets.
type fileConfig struct {
	PreviewWidth *int  `yaml:"preview_width"`
	PageLines    *int  `yaml:"page_lines"`
	LeafOnly     *bool `yaml:"leaf_only"`
	LogLevel     *int8 `yaml:"log_level"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		PreviewWidth: 0,
		PageLines:    40,
		LeafOnly:     false,
		LogLevel:     0,
	}
}

// loadMergedConfig merges the user's config file (if any) over the
// defaults.
func loadMergedConfig(cfgPath string) (runConfig, error) {
	cfg := defaultRunConfig()
	if cfgPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfg, err
	}
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", cfgPath, err)
	}

	if file.PreviewWidth != nil {
		cfg.PreviewWidth = *file.PreviewWidth
	}
	if file.PageLines != nil {
		cfg.PageLines = *file.PageLines
	}
	if file.LeafOnly != nil {
		cfg.LeafOnly = *file.LeafOnly
	}
	if file.LogLevel != nil {
		cfg.LogLevel = *file.LogLevel
	}
	return cfg, nil
}
