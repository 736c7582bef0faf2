// Package main provides the rhetor CLI tool.
//
// Usage:
//
//	rhetor [flags] <command> [args]
//
// Commands:
//
//	debate  - Run a live debate coaching session
//	analyze - Score a saved session transcript
//	config  - Configuration management
//	version - Print version information
//
// Configuration:
//
//	The CLI stores configuration in ~/.rhetor/
//	Use 'rhetor config' commands to manage contexts.
package main

import (
	"fmt"
	"os"

	"github.com/rhetorlabs/rhetor/cmd/rhetor/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
