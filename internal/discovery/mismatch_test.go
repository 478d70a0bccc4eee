package discovery

import (
	"reflect"
	"testing"

	"github.com/indaco/cargotag/internal/parser"
	"github.com/indaco/cargotag/internal/semver"
)

func collectionOf(t *testing.T, versions map[string]string, order []string) *parser.Collection {
	t.Helper()
	c := parser.NewCollection()
	for _, path := range order {
		if err := c.Add(&parser.Entry{Path: path, Version: semver.MustParse(versions[path])}); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func TestDetectMismatches(t *testing.T) {
	c := collectionOf(t, map[string]string{
		"/r/Cargo.toml":   "1.0.0",
		"/r/z/Cargo.toml": "1.1.0",
		"/r/a/Cargo.toml": "0.9.0",
		"/r/m/Cargo.toml": "1.0.0",
	}, []string{"/r/Cargo.toml", "/r/z/Cargo.toml", "/r/a/Cargo.toml", "/r/m/Cargo.toml"})

	got := DetectMismatches(c)
	want := []Mismatch{
		{Source: "/r/a/Cargo.toml", ExpectedVersion: "1.0.0", ActualVersion: "0.9.0"},
		{Source: "/r/z/Cargo.toml", ExpectedVersion: "1.0.0", ActualVersion: "1.1.0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectMismatches() = %+v, want %+v", got, want)
	}

	if got := GetUniqueVersions(c); !reflect.DeepEqual(got, []string{"1.0.0", "1.1.0", "0.9.0"}) {
		t.Errorf("GetUniqueVersions() = %v", got)
	}
}

func TestDetectMismatches_Consistent(t *testing.T) {
	c := collectionOf(t, map[string]string{"/a": "2.0.0", "/b": "2.0.0"}, []string{"/a", "/b"})
	if got := DetectMismatches(c); got != nil {
		t.Errorf("DetectMismatches() = %v, want nil", got)
	}
	if got := DetectMismatches(nil); got != nil {
		t.Errorf("DetectMismatches(nil) = %v, want nil", got)
	}
}
