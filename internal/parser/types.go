package parser

import (
	"path/filepath"
	"strings"
)

// Format represents the supported manifest file formats.
type Format string

const (
	// FormatTOML is for TOML manifests (Cargo.toml, pyproject.toml).
	FormatTOML Format = "toml"

	// FormatJSON is for JSON manifests (package.json, composer.json).
	FormatJSON Format = "json"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatTOML, FormatJSON:
		return true
	default:
		return false
	}
}

// FormatForFile detects the format based on the file extension.
// The boolean is false for files no Document implementation can edit.
func FormatForFile(filename string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// FieldForFile returns the dot-notation path of the version field for a
// manifest file name.
func FieldForFile(filename string) string {
	fields := map[string]string{
		"Cargo.toml":     "package.version",
		"pyproject.toml": "project.version",
		"package.json":   "version",
		"composer.json":  "version",
	}

	if field, ok := fields[filepath.Base(filename)]; ok {
		return field
	}

	if format, ok := FormatForFile(filename); ok && format == FormatTOML {
		return "package.version"
	}
	return "version"
}
