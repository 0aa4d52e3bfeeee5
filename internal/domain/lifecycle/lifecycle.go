// Package lifecycle holds shared constants for application startup/shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start and stop operations.
const DefaultTimeout = 30 * time.Second
