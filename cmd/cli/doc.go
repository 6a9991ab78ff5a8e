// Package cli wires the y2m root command, configuration loading, and
// structured logging for the module checkout subcommands.
package cli
