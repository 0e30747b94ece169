// Package delivery defines the contract every transport entrypoint implements.
package delivery

import "context"

// Delivery is a long-running entrypoint (HTTP server, watcher loop) managed by
// the application lifecycle.
type Delivery interface {
	// Serve blocks until the delivery stops or the context is cancelled.
	Serve(ctx context.Context) error
}
