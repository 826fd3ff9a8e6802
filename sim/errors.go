package sim

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by model construction and stepping.
// Callers match them with errors.Is; the wrapped message carries the detail.
var (
	// ErrOutOfMemory means the storage derived from the parameters cannot be provisioned:
	// a size overflows the handle range or exceeds Parameters.MemoryLimitBytes.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrCapacityExceeded means a fixed-capacity store would have to overwrite a live
	// record (interaction arena), has no free record left (event arena), or a step
	// was requested past the last provisioned day.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidConfiguration means the parameter set is structurally inconsistent.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDestroyed is returned by OneTimeStep after Destroy released the model's storage.
	ErrDestroyed = errors.New("model destroyed")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
