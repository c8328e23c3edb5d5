package main

import "github.com/hegde-atri/oci-burrow/internal/cli"

const version = "0.1.0"

// main is the entry point for OCI Burrow. Without arguments it opens the TUI;
// the subcommands expose the same operations for scripts.
func main() {
	cli.Execute(version)
}
