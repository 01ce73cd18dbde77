package intent

import (
	"errors"
	"fmt"
)

var ErrGenerationFailed = errors.New("generation failed")

// GenerationFailedError wraps any failure of the generation call, including
// timeouts and empty responses. The cause stays reachable through Unwrap.
type GenerationFailedError struct {
	Model string
	Cause error
}

func (e *GenerationFailedError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("generation failed: %v", e.Cause)
	}
	return fmt.Sprintf("generation failed (model=%s): %v", e.Model, e.Cause)
}

func (e *GenerationFailedError) Unwrap() error { return e.Cause }

func (e *GenerationFailedError) Is(target error) bool { return target == ErrGenerationFailed }
