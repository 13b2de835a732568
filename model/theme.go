package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Theme describes one UI color scheme from the theme catalog.
type Theme struct {
	Name       string            `yaml:"name" json:"name"`
	Label      string            `yaml:"label" json:"label"`
	Dark       bool              `yaml:"dark" json:"dark"`
	Palette    map[string]string `yaml:"palette" json:"palette"`
	FontFamily string            `yaml:"font_family,omitempty" json:"font_family,omitempty"`
}

// ThemeCatalog is the full set of available themes plus the fallback name.
type ThemeCatalog struct {
	Default string  `yaml:"default" json:"default"`
	Themes  []Theme `yaml:"themes" json:"themes"`
}

// Lookup returns the theme with the given name, or false when absent.
func (c *ThemeCatalog) Lookup(name string) (Theme, bool) {
	for _, t := range c.Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// LoadThemeCatalog reads and parses the theme catalog YAML file.
func LoadThemeCatalog(path string) (*ThemeCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme catalog %s: %w", path, err)
	}

	var catalog ThemeCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse theme catalog %s: %w", path, err)
	}

	if len(catalog.Themes) == 0 {
		return nil, fmt.Errorf("theme catalog %s contains no themes", path)
	}
	if catalog.Default == "" {
		catalog.Default = catalog.Themes[0].Name
	}
	if _, ok := catalog.Lookup(catalog.Default); !ok {
		return nil, fmt.Errorf("theme catalog %s default %q not defined", path, catalog.Default)
	}

	return &catalog, nil
}

// ThemePreference records a user's chosen theme.
type ThemePreference struct {
	Key       string `json:"_key,omitempty"`
	UserID    string `json:"user_id"`
	ThemeName string `json:"theme_name"`
	UpdatedAt string `json:"updated_at,omitempty"`
	ObjType   string `json:"objtype,omitempty"`
}
