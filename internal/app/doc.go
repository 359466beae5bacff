// Package app wires loading, building, planning and rendering into one run.
// It owns the logger and the output writers; entrypoints only supply a
// validated Config.
package app
