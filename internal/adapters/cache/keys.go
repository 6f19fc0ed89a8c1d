package cache

import (
	"fmt"

	"organ-transport-service/internal/domain"
)

// coordKey renders coordinates as a stable cache key. Six decimal places
// (~0.1m) is finer than any meaningful routing distinction.
func coordKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}
