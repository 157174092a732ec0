package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/gorewood/resolve/internal/metadata"
)

// Option configures a Renderer before construction.
type Option func(*config)

type config struct {
	root    string
	filters map[string]pongo2.FilterFunction
	warnf   func(format string, args ...any)
}

// WithRoot sets the directory templates are looked up in. Defaults to the
// current directory.
func WithRoot(dir string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			cfg.root = trimmed
		}
	}
}

// WithFilters registers extra filters alongside the defaults. A filter named
// like an existing one replaces it. The engine keeps filters process-wide, so
// every Renderer built afterwards sees the replacement too, except for the
// defaults, which New reinstalls each time.
func WithFilters(filters map[string]pongo2.FilterFunction) Option {
	return func(cfg *config) {
		if cfg.filters == nil {
			cfg.filters = make(map[string]pongo2.FilterFunction, len(filters))
		}
		for name, fn := range filters {
			cfg.filters[strings.TrimSpace(name)] = fn
		}
	}
}

// WithWarnf sets where warnings about unusable metadata keys go.
func WithWarnf(warnf func(format string, args ...any)) Option {
	return func(cfg *config) {
		cfg.warnf = warnf
	}
}

// Renderer evaluates templates below a root directory.
type Renderer struct {
	root  string
	set   *pongo2.TemplateSet
	warnf func(format string, args ...any)
}

// New constructs a Renderer using the provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{root: "."}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	root, err := filepath.Abs(cfg.root)
	if err != nil {
		return nil, fmt.Errorf("resolving template root %s: %w", cfg.root, err)
	}

	loader, err := pongo2.NewLocalFileSystemLoader(root)
	if err != nil {
		return nil, fmt.Errorf("creating template loader for %s: %w", root, err)
	}

	// Plain text output, not HTML
	pongo2.SetAutoescape(false)

	if err := registerFilters(defaultFilters()); err != nil {
		return nil, err
	}
	if err := registerFilters(cfg.filters); err != nil {
		return nil, err
	}

	warnf := cfg.warnf
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	return &Renderer{
		root:  root,
		set:   pongo2.NewSet("resolve", loader),
		warnf: warnf,
	}, nil
}

// Root returns the absolute template root.
func (r *Renderer) Root() string {
	return r.root
}

// Render loads the named template and evaluates it with every top-level key
// of data bound as a variable.
func (r *Renderer) Render(name string, data metadata.Document) (string, error) {
	rel, err := r.lookup(name)
	if err != nil {
		return "", err
	}

	tmpl, err := r.set.FromFile(rel)
	if err != nil {
		return "", &RenderError{Name: name, Err: err}
	}

	ctx, skipped := bindings(data)
	for _, key := range skipped {
		r.warnf("metadata key %q is not a valid variable name and cannot be referenced", key)
	}

	result, err := tmpl.Execute(ctx)
	if err != nil {
		return "", &RenderError{Name: name, Err: err}
	}

	return trimTrailingNewline(result), nil
}

// lookup resolves name to a path relative to the root. Leading slashes are
// ignored and ".." segments are rejected, so a name never leaves the root.
func (r *Renderer) lookup(name string) (string, error) {
	var pieces []string
	for _, piece := range strings.Split(filepath.ToSlash(name), "/") {
		switch piece {
		case "", ".":
			continue
		case "..":
			return "", &LookupError{Name: name, Root: r.root, Err: ErrTemplateNotFound}
		}
		pieces = append(pieces, piece)
	}
	if len(pieces) == 0 {
		return "", &LookupError{Name: name, Root: r.root, Err: ErrTemplateNotFound}
	}

	rel := filepath.Join(pieces...)
	info, err := os.Stat(filepath.Join(r.root, rel))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &LookupError{Name: name, Root: r.root, Err: ErrTemplateNotFound}
		}
		return "", &LookupError{Name: name, Root: r.root, Err: err}
	}
	if info.IsDir() {
		return "", &LookupError{Name: name, Root: r.root, Err: fmt.Errorf("%w: is a directory", ErrTemplateNotFound)}
	}

	return rel, nil
}

// identifierPattern matches the context keys the engine accepts.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// bindings builds the template context from the metadata. Keys that are not
// identifiers could never be referenced from a template, and the engine
// refuses them outright, so they are dropped and reported in sorted order.
func bindings(data metadata.Document) (pongo2.Context, []string) {
	ctx := make(pongo2.Context, len(data))
	var skipped []string
	for key, value := range data {
		if !identifierPattern.MatchString(key) {
			skipped = append(skipped, key)
			continue
		}
		ctx[key] = value
	}
	sort.Strings(skipped)
	return ctx, skipped
}

// trimTrailingNewline drops a single trailing newline, the way Jinja
// templates do unless keep_trailing_newline is set.
func trimTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}
