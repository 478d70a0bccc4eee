package parser

import (
	"fmt"
	"slices"

	"github.com/indaco/cargotag/internal/core"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// jsonDocument edits JSON manifests with sjson, which rewrites only the
// addressed value and leaves field order and formatting alone.
type jsonDocument struct {
	data  []byte
	field string
	value string
}

func parseJSONDocument(data []byte, field string) (*jsonDocument, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", core.ErrManifest)
	}

	result := gjson.GetBytes(data, field)
	if !result.Exists() {
		return nil, fmt.Errorf("%w: field %q not found", core.ErrManifest, field)
	}
	if result.Type != gjson.String {
		return nil, fmt.Errorf("%w: field %q is not a string", core.ErrManifest, field)
	}

	return &jsonDocument{data: slices.Clone(data), field: field, value: result.String()}, nil
}

func (d *jsonDocument) Format() Format  { return FormatJSON }
func (d *jsonDocument) Field() string   { return d.field }
func (d *jsonDocument) Version() string { return d.value }
func (d *jsonDocument) Bytes() []byte   { return slices.Clone(d.data) }

func (d *jsonDocument) SetVersion(version string) error {
	updated, err := sjson.SetBytes(d.data, d.field, version)
	if err != nil {
		return fmt.Errorf("%w: failed to set field %q: %w", core.ErrManifest, d.field, err)
	}
	d.data = updated
	d.value = version
	return nil
}
