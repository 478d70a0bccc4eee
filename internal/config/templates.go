package config

import (
	"fmt"
	"slices"
	"strings"
)

// Template is a starting configuration for a common project layout.
type Template struct {
	Name        string
	Description string
	Config      Config
}

// AllTemplates returns all available templates.
func AllTemplates() []Template {
	return []Template{
		{
			Name:        "crate",
			Description: "Single Rust crate",
			Config:      Config{Manifests: []string{"Cargo.toml"}},
		},
		{
			Name:        "workspace",
			Description: "Cargo workspace releasing every member with one version",
			Config: Config{
				Manifests:   []string{"Cargo.toml"},
				ScanSubdirs: true,
				Selector:    "all",
				Exclude:     []string{"target", "node_modules"},
			},
		},
		{
			Name:        "python",
			Description: "Python project versioned in pyproject.toml",
			Config:      Config{Manifests: []string{"pyproject.toml"}},
		},
		{
			Name:        "node",
			Description: "Node package versioned in package.json",
			Config: Config{
				Manifests: []string{"package.json"},
				Exclude:   []string{"node_modules"},
			},
		},
	}
}

// TemplateNames returns the names of all available templates.
func TemplateNames() []string {
	templates := AllTemplates()
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// GetTemplate returns the template with the given name, or an error if not found.
func GetTemplate(name string) (*Template, error) {
	for _, t := range AllTemplates() {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(TemplateNames(), ", "))
}

// IsValidTemplate checks if the given name is a valid template.
func IsValidTemplate(name string) bool {
	return slices.Contains(TemplateNames(), name)
}

// Build returns the template's configuration with defaults filled in.
func (t *Template) Build() *Config {
	cfg := Default()
	cfg.Manifests = slices.Clone(t.Config.Manifests)
	cfg.ScanSubdirs = t.Config.ScanSubdirs
	cfg.Selector = t.Config.Selector
	cfg.Exclude = slices.Clone(t.Config.Exclude)
	return cfg
}
