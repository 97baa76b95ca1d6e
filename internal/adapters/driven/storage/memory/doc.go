// Package memory provides in-memory implementations of driven ports.
// They back the service and CLI tests and the --dry-run mode of the CLI.
package memory
