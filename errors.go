package geocache

import (
	"errors"
	"fmt"
)

var errComputeRequired = errors.New("geocache: compute function is required")

// CapacityError reports an invalid capacity at construction time.
type CapacityError struct {
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("geocache: capacity must be positive, got %d", e.Capacity)
}
