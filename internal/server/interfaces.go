package server

import "context"

// Server defines the lifecycle contract for the transport servers managed
// by this package.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT arrives, then shuts
	// down gracefully.
	RunServer()

	// Run serves until ctx is done or a transport fails, then shuts down
	// every transport. A clean stop returns nil.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the servers within the configured timeout.
	Shutdown()
}
