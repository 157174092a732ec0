// Package metadata loads the YAML document whose top-level keys become
// template variables.
package metadata

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the metadata file read from the working directory.
const DefaultFile = "metadata.yml"

// ErrNotMapping is returned when the document is empty or its top-level
// value is a scalar or a sequence.
var ErrNotMapping = errors.New("metadata must be a YAML mapping")

// Document is the parsed metadata: string keys to scalars, sequences
// ([]any) and nested Documents (as map[string]any).
type Document map[string]any

// ParseError reports a metadata file that could not be read or parsed.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return "parsing metadata: " + e.Err.Error()
	}
	return fmt.Sprintf("parsing metadata %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads and parses the metadata file at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	doc, err := Parse(data)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse decodes a YAML document that must hold a mapping at the top level.
func Parse(data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Err: err}
	}

	// An empty stream leaves the node zero-valued
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &ParseError{Err: ErrNotMapping}
	}
	if top := resolveAlias(root.Content[0]); top.Kind != yaml.MappingNode {
		return nil, &ParseError{Err: fmt.Errorf("%w, got %s at line %d", ErrNotMapping, kindName(top), top.Line)}
	}

	dropDuplicateKeys(&root)

	var raw map[string]any
	if err := root.Decode(&raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	return Document(normalizeMap(raw)), nil
}

// dropDuplicateKeys removes every mapping entry whose scalar key appears again
// later in the same mapping, so the last value wins. The decoder would
// otherwise reject the document.
func dropDuplicateKeys(node *yaml.Node) {
	if node.Kind == yaml.MappingNode {
		last := make(map[string]int, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			if key := node.Content[i]; key.Kind == yaml.ScalarNode && key.ShortTag() != "!!merge" {
				last[key.ShortTag()+":"+key.Value] = i
			}
		}
		kept := node.Content[:0]
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind == yaml.ScalarNode && key.ShortTag() != "!!merge" && last[key.ShortTag()+":"+key.Value] != i {
				continue
			}
			kept = append(kept, key, node.Content[i+1])
		}
		node.Content = kept
	}
	for _, child := range node.Content {
		dropDuplicateKeys(child)
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return "null"
		}
		return "scalar"
	default:
		return "unknown node"
	}
}
