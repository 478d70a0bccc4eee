package printer

import (
	"bytes"
	"strings"
	"testing"
)

// TestRenderFunctions verifies that all render functions keep the text.
func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string) string
	}{
		{"Faint", Faint},
		{"Bold", Bold},
		{"Success", Success},
		{"Error", Error},
		{"Warning", Warning},
		{"Info", Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.function("test text")
			if !strings.Contains(result, "test text") {
				t.Errorf("%s() = %q, want to contain input", tt.name, result)
			}
		})
	}
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })

	if got := Error("plain"); got != "plain" {
		t.Errorf("Error() with colors disabled = %q, want %q", got, "plain")
	}
}

func TestStepPrinter(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })

	var buf bytes.Buffer
	p := NewStepPrinter(&buf, 5)
	p.Begin(2, "📝", "Writing version")
	p.Detail("New version to be written: %s", "1.2.4")
	p.End("Writing version")

	want := "[2/5] 📝 Writing version ...\n" +
		Indent + "New version to be written: 1.2.4\n" +
		Indent + "✔ Writing version done\n"
	if buf.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestErrorReport(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })

	var buf bytes.Buffer
	ErrorReport(&buf, "tag already exists: v1.0.0", "", nil)
	if buf.String() != "\nError: tag already exists: v1.0.0\n" {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	ErrorReport(&buf, "push failed", "Authentication required", []string{"Set GITHUB_TOKEN"})
	out := buf.String()
	for _, want := range []string{"Error: push failed", Indent + "Authentication required", "  - Set GITHUB_TOKEN"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled() {
		t.Error("ColorEnabled() = true with NO_COLOR set")
	}
}
