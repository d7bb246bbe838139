// Package main implements the fluidgen CLI tool.
//
// fluidgen generates fluid variable declarations from a TOML manifest,
// replacing the per-variable boilerplate that other languages hide behind
// a macro. It works by:
//
//  1. Decoding a fluidgen.toml manifest in the target package directory
//  2. Resolving the enclosing Go module via go.mod
//  3. Emitting one fluid.New / fluid.NewWithDefault declaration per entry
//  4. Validating and gofmt-formatting the generated file
//
// Usage:
//
//	fluidgen generate [dir]   # (Re)generate declarations in dir
//	fluidgen check [dir]      # Fail if generated file is stale (CI)
//
// This is the CLI entry point for the generator.
package main

import (
	"fmt"
	"os"

	"github.com/ilammy/fluid-let/cmd/fluidgen/generate"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "generate":
		generateCommand(os.Args[2:])
	case "check":
		checkCommand(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("fluidgen version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// generateCommand implements 'fluidgen generate'.
//
// It regenerates the declarations file from the manifest in the given
// directory (default ".") and reports what was written.
func generateCommand(args []string) {
	dir := targetDir(args)

	result, err := generate.Generate(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d variables)\n", result.OutputPath, result.Vars)
}

// checkCommand implements 'fluidgen check'.
//
// It regenerates in memory and compares against the file on disk,
// exiting non-zero when the file is missing or stale. Intended for CI.
func checkCommand(args []string) {
	dir := targetDir(args)

	result, err := generate.Check(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if result.Stale {
		fmt.Fprintf(os.Stderr, "%s is stale; run 'fluidgen generate %s'\n", result.OutputPath, dir)
		os.Exit(1)
	}
	fmt.Printf("%s is up to date\n", result.OutputPath)
}

// targetDir extracts the optional directory argument.
func targetDir(args []string) string {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Error: expected at most one directory argument")
		os.Exit(1)
	}
	if len(args) == 1 {
		return args[0]
	}
	return "."
}

func printUsage() {
	fmt.Print(`fluidgen - fluid variable declaration generator

USAGE:
    fluidgen <command> [arguments]

COMMANDS:
    generate   Generate declarations from fluidgen.toml
    check      Verify the generated file is up to date
    version    Show version information
    help       Show this help message

EXAMPLES:
    # Generate declarations for the package in the current directory
    fluidgen generate

    # Generate for another package
    fluidgen generate ./internal/config

    # CI check that generated code matches the manifest
    fluidgen check ./internal/config

MANIFEST:
    fluidgen reads fluidgen.toml from the target directory:

        package = "config"        # optional, inferred from the package
        output = "fluid_vars.go"  # optional, this is the default

        [[var]]
        name = "DebugEnabled"
        type = "bool"
        default = "false"         # Go expression; omit for no default
        doc = "DebugEnabled turns on verbose diagnostics."

    Each entry becomes one package-level fluid variable declaration.

FOR MORE INFORMATION:
    Repository: https://github.com/ilammy/fluid-let

`)
}
