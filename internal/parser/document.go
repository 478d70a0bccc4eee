package parser

import (
	"fmt"

	"github.com/indaco/cargotag/internal/core"
)

// Document is an editable, format-preserving representation of a manifest.
type Document interface {
	// Format reports the manifest format.
	Format() Format

	// Field returns the dot-notation path of the version field.
	Field() string

	// Version returns the raw version string currently stored in the field.
	Version() string

	// SetVersion replaces the version value in place.
	SetVersion(version string) error

	// Bytes returns the full serialized document.
	Bytes() []byte
}

// ParseDocument parses data as a manifest of the given format and locates the
// version field.
func ParseDocument(data []byte, format Format, field string) (Document, error) {
	if field == "" {
		return nil, fmt.Errorf("%w: version field path is required", core.ErrManifest)
	}

	switch format {
	case FormatTOML:
		return parseTOMLDocument(data, field)
	case FormatJSON:
		return parseJSONDocument(data, field)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", core.ErrManifest, format)
	}
}
