// Package output provides structured output handling for the resolve CLI.
//
// Rendered text is the only thing written to stdout in human mode. Errors
// and verbose notes go to stderr, so the output can be redirected into a
// file without picking up diagnostics.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, isTTY).
//		WithStderr(cmd.ErrOrStderr())
//
//	printer.Println(rendered)          // rendered text
//	printer.Stderr("root: %s\n", dir)  // verbose note
//	printer.Error(err)                 // failure
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), all output is structured:
//
//	// Success: {"template": "...", "output": "..."}
//	// Error: {"error": "message", "code": N}
//
// # Exit Codes
//
//	output.ExitSuccess  // 0: Success
//	output.ExitUsage    // 1: Missing template argument, bad flags
//	output.ExitMetadata // 2: metadata.yml missing or not a YAML mapping
//	output.ExitTemplate // 3: Template missing, bad syntax, evaluation failure
package output
