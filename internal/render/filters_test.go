package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/flosch/pongo2/v6"

	"github.com/gorewood/resolve/internal/metadata"
)

func TestDefaultFilters(t *testing.T) {
	doc := metadata.Document{
		"padded":   "  spaced out \n",
		"packages": []any{"omnitools", "yaml"},
		"project":  map[string]any{"name": "keruald"},
		"body":     "first\nsecond\n\nthird",
		"version":  8,
		"stable":   true,
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{name: "trim", template: "[{{ padded|trim }}]", want: "[spaced out]"},
		{name: "trim on missing", template: "[{{ missing|trim }}]", want: "[]"},
		{name: "trim on int", template: "[{{ version|trim }}]", want: "[8]"},
		{name: "trim on bool", template: "[{{ stable|trim }}]", want: "[True]"},
		{name: "tojson sequence", template: "{{ packages|tojson }}", want: `["omnitools","yaml"]`},
		{name: "tojson mapping", template: "{{ project|tojson }}", want: `{"name":"keruald"}`},
		{name: "tojson indented", template: "{{ project|tojson:2 }}", want: "{\n  \"name\": \"keruald\"\n}"},
		{name: "toyaml mapping", template: "{{ project|toyaml }}", want: "name: keruald"},
		{name: "toyaml sequence", template: "{{ packages|toyaml }}", want: "- omnitools\n- yaml"},
		{name: "indent default", template: "{{ body|indent }}", want: "first\n    second\n\n    third"},
		{name: "indent width", template: "{{ body|indent:2 }}", want: "first\n  second\n\n  third"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTemplate(t, dir, "t.txt", tt.template)
			r := newRenderer(t, dir)

			got, err := r.Render("t.txt", doc)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithFilters(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "shout.txt", "{{ name|shout }}")

	shout := func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		if in.IsNil() {
			return pongo2.AsValue(""), nil
		}
		return pongo2.AsValue(fmt.Sprintf("%s!", strings.ToUpper(in.String()))), nil
	}
	r := newRenderer(t, dir, WithFilters(map[string]pongo2.FilterFunction{"shout": shout}))

	got, err := r.Render("shout.txt", metadata.Document{"name": "keruald"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "KERUALD!" {
		t.Errorf("Render() = %q, want %q", got, "KERUALD!")
	}
}

func TestWithFilters_ReplacesDefault(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "t.txt", "[{{ padded|trim }}]")
	doc := metadata.Document{"padded": "  spaced  "}

	marker := func(*pongo2.Value, *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue("custom"), nil
	}
	custom := newRenderer(t, dir, WithFilters(map[string]pongo2.FilterFunction{"trim": marker}))
	got, err := custom.Render("t.txt", doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "[custom]" {
		t.Errorf("Render() with replaced trim = %q, want %q", got, "[custom]")
	}

	// A Renderer built without the override gets the default back
	plain := newRenderer(t, dir)
	got, err = plain.Render("t.txt", doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "[spaced]" {
		t.Errorf("Render() with default trim = %q, want %q", got, "[spaced]")
	}
}
