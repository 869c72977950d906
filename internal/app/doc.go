// Package app manages running app instances. Each instance couples a
// blueprint-derived renderer with its own fault boundary; the manager wires
// reload requests back to itself so "Reload Page" rebuilds the instance
// from its blueprint with a fresh boundary.
package app
