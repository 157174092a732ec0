package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
	"gopkg.in/yaml.v3"
)

// defaultFilters are Jinja filters that metadata templates lean on and that
// the engine does not ship.
func defaultFilters() map[string]pongo2.FilterFunction {
	return map[string]pongo2.FilterFunction{
		"trim":   filterTrim,
		"tojson": filterToJSON,
		"toyaml": filterToYAML,
		"indent": filterIndent,
	}
}

// registerFilters installs filters in the engine's process-wide registry,
// replacing any filter already registered under the same name.
func registerFilters(filters map[string]pongo2.FilterFunction) error {
	for name, fn := range filters {
		if name == "" || fn == nil {
			continue
		}
		register := pongo2.RegisterFilter
		if pongo2.FilterExists(name) {
			register = pongo2.ReplaceFilter
		}
		if err := register(name, fn); err != nil {
			return fmt.Errorf("registering filter %q: %w", name, err)
		}
	}
	return nil
}

// filterTrim trims the string form of any value; nil becomes "".
func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterToJSON serializes the input; an integer parameter sets the indent.
func filterToJSON(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var (
		out []byte
		err error
	)
	if width := intParam(param, 0); width > 0 {
		out, err = json.MarshalIndent(in.Interface(), "", strings.Repeat(" ", width))
	} else {
		out, err = json.Marshal(in.Interface())
	}
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:tojson", OrigError: err}
	}
	return pongo2.AsSafeValue(string(out)), nil
}

// filterToYAML serializes the input as a block YAML document without the
// trailing newline.
func filterToYAML(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(intParam(param, 2))
	if err := encoder.Encode(in.Interface()); err != nil {
		_ = encoder.Close()
		return nil, &pongo2.Error{Sender: "filter:toyaml", OrigError: err}
	}
	if err := encoder.Close(); err != nil {
		return nil, &pongo2.Error{Sender: "filter:toyaml", OrigError: err}
	}
	return pongo2.AsSafeValue(strings.TrimSuffix(buf.String(), "\n")), nil
}

// filterIndent indents every line but the first by the given width
// (default 4). Blank lines are left empty.
func filterIndent(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	prefix := strings.Repeat(" ", intParam(param, 4))
	lines := strings.Split(in.String(), "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		lines[i] = prefix + lines[i]
	}
	return pongo2.AsValue(strings.Join(lines, "\n")), nil
}

func intParam(param *pongo2.Value, fallback int) int {
	if param == nil || param.IsNil() || !param.IsNumber() {
		return fallback
	}
	if n := param.Integer(); n >= 0 {
		return n
	}
	return fallback
}
