// Package cli provides output formatting for the tudu command line tool.
//
// Results can be rendered as a human-readable checklist or as JSON via the
// Formatter interface. NewFormatter selects between the two based on the
// --json flag.
package cli
