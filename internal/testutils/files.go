package testutils

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to dir/rel, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", p, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", p, err)
	}
	return p
}

// CargoManifest returns a minimal Cargo.toml declaring the given version.
func CargoManifest(name, version string) string {
	return "[package]\nname = \"" + name + "\"\nversion = \"" + version + "\" # keep\nedition = \"2021\"\n\n[dependencies]\nserde = { version = \"1.0.0\" }\n"
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
