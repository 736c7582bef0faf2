// Package cli provides common utilities for the rhetor command-line tool.
//
// This package includes:
//   - Configuration management (provider contexts, similar to kubectl)
//   - Output formatting (YAML, JSON, raw)
//   - Request file loading (YAML/JSON)
//   - Scorecard rendering for analysis results
//
// Configuration is stored in the ~/.rhetor/ directory.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig()
//	ctx, err := cfg.GetCurrentContext()
//
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
package cli
