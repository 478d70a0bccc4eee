package parser

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/indaco/cargotag/internal/core"
	"github.com/pelletier/go-toml/v2/unstable"
)

// tomlDocument keeps the original TOML bytes and the byte span of the
// version value. Nothing outside that span is ever rewritten.
type tomlDocument struct {
	data  []byte
	field string
	start int
	end   int
	value string
}

func parseTOMLDocument(data []byte, field string) (*tomlDocument, error) {
	p := unstable.Parser{}
	p.Reset(data)

	var table []string
	f := &tomlFieldFinder{
		field: field,
		doc:   &tomlDocument{data: slices.Clone(data), field: field},
	}

	for p.NextExpression() {
		expr := p.Expression()

		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyParts(expr.Key())
		case unstable.KeyValue:
			if err := f.visit(table, expr); err != nil {
				return nil, err
			}
		}
	}

	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("%w: invalid TOML: %w", core.ErrManifest, err)
	}
	if !f.found {
		return nil, fmt.Errorf("%w: field %q not found", core.ErrManifest, field)
	}

	return f.doc, nil
}

// tomlFieldFinder records the span of one dotted field. Inline tables on the
// way to the field are walked, so package = { version = "1.0.0" } resolves
// package.version.
type tomlFieldFinder struct {
	field string
	doc   *tomlDocument
	found bool
}

func (f *tomlFieldFinder) visit(prefix []string, kv *unstable.Node) error {
	path := append(slices.Clone(prefix), keyParts(kv.Key())...)
	full := strings.Join(path, ".")
	value := kv.Value()

	if value.Kind == unstable.InlineTable && strings.HasPrefix(f.field, full+".") {
		it := value.Children()
		for it.Next() {
			if err := f.visit(path, it.Node()); err != nil {
				return err
			}
		}
		return nil
	}
	if full != f.field {
		return nil
	}

	if f.found {
		return fmt.Errorf("%w: field %q defined more than once", core.ErrManifest, f.field)
	}
	if value.Kind != unstable.String {
		return fmt.Errorf("%w: field %q is a %s, not a string", core.ErrManifest, f.field, value.Kind)
	}
	if value.Raw.Length == 0 {
		return fmt.Errorf("%w: cannot locate value of field %q", core.ErrManifest, f.field)
	}

	f.doc.start = int(value.Raw.Offset)
	f.doc.end = f.doc.start + int(value.Raw.Length)
	f.doc.value = string(value.Data)
	f.found = true
	return nil
}

// keyParts flattens a (possibly dotted) key into its components.
func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

func (d *tomlDocument) Format() Format  { return FormatTOML }
func (d *tomlDocument) Field() string   { return d.field }
func (d *tomlDocument) Version() string { return d.value }
func (d *tomlDocument) Bytes() []byte   { return slices.Clone(d.data) }

// SetVersion rewrites the value between its original delimiters. The span
// may or may not include the quotes depending on the string style, so the
// delimiters are taken from the span itself.
func (d *tomlDocument) SetVersion(version string) error {
	if strings.ContainsAny(version, "\"'\\\n") {
		return fmt.Errorf("%w: version %q cannot be stored verbatim", core.ErrManifest, version)
	}

	raw := d.data[d.start:d.end]
	open, closing := stringDelimiters(raw)

	var buf bytes.Buffer
	buf.Grow(len(d.data) + len(version))
	buf.Write(d.data[:d.start])
	buf.WriteString(open)
	buf.WriteString(version)
	buf.WriteString(closing)
	buf.Write(d.data[d.end:])

	newEnd := d.start + len(open) + len(version) + len(closing)
	d.data = buf.Bytes()
	d.end = newEnd
	d.value = version
	return nil
}

// stringDelimiters returns the quote runs around a raw TOML string token, or
// empty strings if raw holds only the string contents.
func stringDelimiters(raw []byte) (string, string) {
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(raw) >= 2*len(q) && bytes.HasPrefix(raw, []byte(q)) && bytes.HasSuffix(raw, []byte(q)) {
			return q, q
		}
	}
	return "", ""
}
