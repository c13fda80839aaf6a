// Package main hosts the imagepuller CLI entrypoint and command graph.
//
// The root command takes the positional export grammar
// (<people> <target> [--key=value ...]) and hands it to internal/cliargs
// untouched; Cobra only contributes the config and check subcommands, help
// routing, and context plumbing. Configuration, logging, preflight checks, and
// the run lock are wired here so internal/export can stay a plain pipeline.
package main
