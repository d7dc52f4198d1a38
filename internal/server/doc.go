// Package server wires and runs the profile server's HTTP transport.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown bounded by the configured timeout.
package server
