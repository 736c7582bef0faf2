package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// OutputFormat selects how structured results are encoded.
type OutputFormat string

const (
	// FormatYAML is the default for terminal output.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON is intended for piping into other tools.
	FormatJSON OutputFormat = "json"
)

// OutputOptions configures where and how a result is written.
type OutputOptions struct {
	// Format is the encoding. Empty means YAML.
	Format OutputFormat

	// File is the destination path. Empty means stdout.
	File string

	// Writer overrides File when set.
	Writer io.Writer
}

// Output encodes result and writes it to the configured destination.
func Output(result any, opts OutputOptions) error {
	data, err := encode(result, opts.Format)
	if err != nil {
		return err
	}

	w := opts.Writer
	switch {
	case w != nil:
	case opts.File != "":
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	default:
		w = os.Stdout
	}

	_, err = w.Write(data)
	return err
}

func encode(result any, format OutputFormat) ([]byte, error) {
	switch format {
	case FormatYAML, "":
		data, err := yaml.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to format output: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to format output: %w", err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unsupported output format: %s", format)
}

// Print helpers for terminal output

// PrintSuccess prints a success message with checkmark
func PrintSuccess(format string, args ...any) {
	fmt.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...any) {
	fmt.Printf("ℹ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...any) {
	fmt.Printf("⚠ "+format+"\n", args...)
}

// PrintVerbose prints verbose output to stderr
func PrintVerbose(verbose bool, format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
