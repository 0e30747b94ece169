// Package lifecycle holds shared timing constants for service start/stop.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of deliveries.
const DefaultTimeout = 10 * time.Second
