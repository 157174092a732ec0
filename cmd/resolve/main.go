// Package main provides the entry point for the resolve CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/resolve/internal/metadata"
	"github.com/gorewood/resolve/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(buildVersion()),
		fang.WithErrorHandler(handleError),
	)
	return output.GetExitCode(err)
}

// handleError prints errors the command did not already report itself,
// such as unknown flags.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var reported *reportedError
	if errors.As(err, &reported) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// reportedError marks an error already written by the Printer.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// rootOptions holds the flag values of the root command.
type rootOptions struct {
	metadataPath string
	root         string
	jsonMode     bool
	color        string
	verbose      bool
}

// newRootCmd creates the root command for the resolve CLI.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "resolve <template_path>",
		Short: "Render a template with the values from metadata.yml",
		Long: `Resolve renders a template with the values from metadata.yml.

Every top-level key of the metadata file becomes a template variable.
Templates use Jinja/Django syntax and are loaded relative to the template
root, so they can include or extend other templates:

  Title: {{ title }}
  {% for package in packages %}- {{ package.name }}
  {% endfor %}

Variables missing from the metadata render as empty strings.

Examples:
  resolve README.md.j2 > README.md           # Render with ./metadata.yml
  resolve -m packages.yml composer.json.j2    # Use another metadata file
  resolve --root _templates ci.yml            # Look templates up in _templates/`,
		Version:       buildVersion(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.metadataPath, "metadata", "m", metadata.DefaultFile, "Metadata file whose keys become template variables")
	cmd.Flags().StringVarP(&opts.root, "root", "r", ".", "Directory templates are looked up in")
	cmd.Flags().BoolVar(&opts.jsonMode, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&opts.color, "color", "auto", "Color diagnostics: auto, always, never")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print the resolved paths to stderr")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	return cmd
}
