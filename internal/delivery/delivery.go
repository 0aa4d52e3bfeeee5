// Package delivery defines the contract every inbound transport fulfills.
package delivery

import "context"

// Delivery is a long-running inbound server (HTTP today) managed by the
// application lifecycle.
type Delivery interface {
	// Serve blocks serving requests until the server is shut down.
	Serve(ctx context.Context) error
}
