package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/resolve/internal/metadata"
	"github.com/gorewood/resolve/internal/output"
	"github.com/gorewood/resolve/internal/render"
)

// resolveResult is the --json form of a rendered template.
type resolveResult struct {
	Template string `json:"template"`
	Metadata string `json:"metadata"`
	Output   string `json:"output"`
}

// runResolve loads the metadata, renders the template and prints it.
// Nothing reaches stdout unless rendering succeeded.
func runResolve(cmd *cobra.Command, args []string, opts *rootOptions) error {
	colorMode, colorErr := output.ParseColorMode(opts.color)
	isTTY := output.ResolveColorMode(colorMode, output.IsTTY(cmd.ErrOrStderr()))
	printer := output.NewPrinter(cmd.OutOrStdout(), opts.jsonMode, isTTY).
		WithStderr(cmd.ErrOrStderr())

	if colorErr != nil {
		return report(printer, colorErr)
	}
	// Arguments after the template path are ignored
	if len(args) < 1 {
		return report(printer, output.NewUsageError("Usage: "+cmd.CommandPath()+" <template_path>"))
	}
	name := args[0]

	if opts.verbose {
		printer.Stderr("metadata: %s\n", opts.metadataPath)
	}
	doc, err := metadata.Load(opts.metadataPath)
	if err != nil {
		return report(printer, output.NewMetadataError("cannot load metadata", err))
	}

	renderer, err := render.New(
		render.WithRoot(opts.root),
		render.WithWarnf(printer.Warn),
	)
	if err != nil {
		return report(printer, output.NewTemplateError("cannot prepare templates", err))
	}
	if opts.verbose {
		printer.Stderr("root: %s\ntemplate: %s\n", renderer.Root(), name)
	}

	text, err := renderer.Render(name, doc)
	if err != nil {
		return report(printer, output.NewTemplateError("cannot render template", err))
	}

	if printer.IsJSON() {
		return printer.WriteJSON(resolveResult{
			Template: name,
			Metadata: opts.metadataPath,
			Output:   text,
		})
	}
	printer.Println(text)
	return nil
}

// report prints err and marks it so the top-level handler stays quiet.
func report(printer *output.Printer, err error) error {
	printer.Error(err)
	return &reportedError{err: err}
}
