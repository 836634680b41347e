package sortconfig

import "fmt"

// ValidationError reports metadata that cannot be turned into a valid
// data-flow descriptor: empty field lists, missing connection
// coordinates, unrecognized type or unit tags. It aborts the whole
// invocation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PublishError wraps a coordination-store failure for one sink. Sinks
// already published before the failure stay published; there is no
// rollback.
type PublishError struct {
	SinkID int64
	Err    error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing data flow for sink %d: %s", e.SinkID, e.Err.Error())
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
