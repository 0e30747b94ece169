// Package util holds small helpers shared across layers.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CalculateChecksum returns the hex SHA-256 digest of an in-memory payload.
// Document uploads store it so re-uploads of the same file are detectable.
func CalculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// FormatBytes renders a byte count in human-readable binary units.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	value := float64(bytes)
	suffixes := []string{"KB", "MB", "GB", "TB", "PB"}
	idx := -1
	for value >= unit && idx < len(suffixes)-1 {
		value /= unit
		idx++
	}

	return fmt.Sprintf("%.1f %s", value, suffixes[idx])
}
