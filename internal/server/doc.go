// Package server runs the HTTP listener with signal-driven graceful
// shutdown and ordered shutdown hooks.
package server
