// Package cli parses the grits command line, dispatches the build, serve and
// init sub-commands, and maps failures to process exit codes.
package cli
