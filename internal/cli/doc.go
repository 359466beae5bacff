// Package cli turns expgrid's command line into an app.Config and maps
// planning failures to process exit codes.
package cli
