package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/indaco/cargotag/internal/core"
)

const cargoManifest = `# top comment
[package]
name    = "demo"   # aligned
version = "1.0.0" # keep me
edition = "2021"

[dependencies]
serde = { version = "1.0.190", features = ["derive"] }

[workspace.package]
version = "9.9.9"
`

func TestParseDocument_TOML(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
		want    string
		wantErr bool
	}{
		{name: "cargo package", content: cargoManifest, field: "package.version", want: "1.0.0"},
		{name: "workspace table", content: cargoManifest, field: "workspace.package.version", want: "9.9.9"},
		{name: "dotted key at root", content: "package.version = \"0.3.1\"\n", field: "package.version", want: "0.3.1"},
		{name: "literal string", content: "[project]\nversion = '2.1.0'\n", field: "project.version", want: "2.1.0"},
		{name: "inline table", content: "package = { name = \"demo\", version = \"1.4.0\" }\n", field: "package.version", want: "1.4.0"},
		{name: "nested inline table", content: "[tool]\npoetry = { version = \"0.2.0\" }\n", field: "tool.poetry.version", want: "0.2.0"},
		{name: "missing field", content: "[package]\nname = \"x\"\n", field: "package.version", wantErr: true},
		{name: "workspace inherited", content: "[package]\nversion.workspace = true\n", field: "package.version", wantErr: true},
		{name: "non-string", content: "[package]\nversion = 1\n", field: "package.version", wantErr: true},
		{name: "invalid toml", content: "[package\nversion = \"1.0.0\"\n", field: "package.version", wantErr: true},
		{name: "empty field", content: cargoManifest, field: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.content), FormatTOML, tt.field)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got document with version %q", doc.Version())
				}
				if !errors.Is(err, core.ErrManifest) {
					t.Errorf("error = %v, want ErrManifest", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.Version() != tt.want {
				t.Errorf("Version() = %q, want %q", doc.Version(), tt.want)
			}
			if doc.Format() != FormatTOML || doc.Field() != tt.field {
				t.Errorf("Format()/Field() = %s/%s", doc.Format(), doc.Field())
			}
		})
	}
}

func TestTOMLDocument_SetVersionPreservesContent(t *testing.T) {
	doc, err := ParseDocument([]byte(cargoManifest), FormatTOML, "package.version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := doc.SetVersion("1.0.1"); err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}

	want := strings.Replace(cargoManifest, `version = "1.0.0" # keep me`, `version = "1.0.1" # keep me`, 1)
	if got := string(doc.Bytes()); got != want {
		t.Errorf("Bytes() mismatch\n got: %q\nwant: %q", got, want)
	}

	// A second edit lands on the updated span.
	if err := doc.SetVersion("10.20.30"); err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}
	if !strings.Contains(string(doc.Bytes()), `version = "10.20.30" # keep me`) {
		t.Errorf("second edit not applied: %s", doc.Bytes())
	}
	if doc.Version() != "10.20.30" {
		t.Errorf("Version() = %q", doc.Version())
	}
}

func TestTOMLDocument_SetVersionInlineTable(t *testing.T) {
	content := "package = { name = \"demo\", version = \"1.4.0\", edition = \"2021\" }\n"
	doc, err := ParseDocument([]byte(content), FormatTOML, "package.version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := doc.SetVersion("1.5.0"); err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}

	want := strings.Replace(content, "1.4.0", "1.5.0", 1)
	if got := string(doc.Bytes()); got != want {
		t.Errorf("Bytes() =\n%s\nwant\n%s", got, want)
	}
}

func TestTOMLDocument_SetVersionKeepsQuoteStyle(t *testing.T) {
	content := "[project]\nname = 'x'\nversion = '2.1.0'\n"
	doc, err := ParseDocument([]byte(content), FormatTOML, "project.version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := doc.SetVersion("2.2.0"); err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}
	want := "[project]\nname = 'x'\nversion = '2.2.0'\n"
	if got := string(doc.Bytes()); got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
}

func TestTOMLDocument_SetVersionRejectsQuotes(t *testing.T) {
	doc, err := ParseDocument([]byte(cargoManifest), FormatTOML, "package.version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := doc.SetVersion(`1.0.0"`); err == nil {
		t.Error("expected error for a version containing a quote")
	}
	if string(doc.Bytes()) != cargoManifest {
		t.Error("document changed after a rejected edit")
	}
}

func TestParseDocument_JSON(t *testing.T) {
	content := "{\n  \"name\": \"demo\",\n  \"version\": \"0.9.0\",\n  \"private\": true\n}\n"

	doc, err := ParseDocument([]byte(content), FormatJSON, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Version() != "0.9.0" {
		t.Errorf("Version() = %q", doc.Version())
	}

	if err := doc.SetVersion("0.10.0"); err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}
	want := strings.Replace(content, "0.9.0", "0.10.0", 1)
	if got := string(doc.Bytes()); got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
}

func TestParseDocument_JSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid", `{invalid`},
		{"missing", `{"name": "x"}`},
		{"number", `{"version": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDocument([]byte(tt.content), FormatJSON, "version"); !errors.Is(err, core.ErrManifest) {
				t.Errorf("error = %v, want ErrManifest", err)
			}
		})
	}
}

func TestParseDocument_UnsupportedFormat(t *testing.T) {
	if _, err := ParseDocument([]byte("1.0.0"), Format("raw"), "version"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
