package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig matches every *ConfigError via errors.Is.
	ErrInvalidConfig = errors.New("engine: invalid configuration")

	// ErrOutOfBounds is returned for grid access outside the configured size.
	ErrOutOfBounds = errors.New("engine: position out of bounds")

	// ErrIncompleteGrid is returned when scanning a grid that has empty slots.
	// Refill always completes a cycle, so this means the caller broke protocol.
	ErrIncompleteGrid = errors.New("engine: grid has empty slots")

	// ErrNotBlastable is returned when the selected cell is empty or its group
	// has fewer than two cells.
	ErrNotBlastable = errors.New("engine: cell is not blastable")

	// ErrResolutionInProgress is returned when a blast is requested before the
	// previous cycle has settled. The request is dropped, not queued.
	ErrResolutionInProgress = errors.New("engine: resolution in progress")

	// ErrNotInitialized is returned by board operations before Initialize succeeds.
	ErrNotInitialized = errors.New("engine: board not initialized")
)

// ConfigError describes why a configuration was rejected.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrInvalidConfig) match any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
