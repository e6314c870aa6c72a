package processors

import (
	"errors"
	"fmt"
)

// ErrUnknownProcessor is returned by the registry for names it never
// registered. The registry must not fall back to a default processor.
var ErrUnknownProcessor = errors.New("unknown processor")

// ParameterError reports an out-of-range or non-coercible value handed to
// SetParameters. The processor's prior state is always retained.
type ParameterError struct {
	Processor string
	Key       string
	Reason    string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: invalid parameter %q: %s", e.Processor, e.Key, e.Reason)
}

// ProcessingError reports an unexpected internal fault during a transform,
// e.g. an unsupported channel layout reaching the Fourier path.
type ProcessingError struct {
	Processor string
	Err       error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s: processing failed: %v", e.Processor, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
