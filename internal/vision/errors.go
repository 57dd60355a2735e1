package vision

import "fmt"

// InvalidSizeError reports a requested size outside the supported set.
// No computation happens when it is returned.
type InvalidSizeError struct {
	Size int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("size must be between %d and %d pixels in steps of %d, got %d",
		MinSize, MaxSize, SizeStep, e.Size)
}

// ComputationError wraps an internal failure inside a pipeline stage.
// It is expected to be unreachable in normal operation.
type ComputationError struct {
	Stage string
	Err   error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("pipeline stage %s failed: %v", e.Stage, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }
