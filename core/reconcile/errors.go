package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField indicates a source field the adapter does not map, or a
	// mapped column the source table does not have.
	ErrUnknownField = errors.New("unknown source field")

	// ErrRunInProgress indicates another sync run holds the family lock.
	ErrRunInProgress = errors.New("sync already in progress")
)

// FailureKind classifies a failure recorded in a SyncReport.
type FailureKind string

const (
	// FailureItem means one source record could not be synced.
	FailureItem FailureKind = "item"
	// FailurePartial means the record synced but a sub-step (image upload) failed.
	FailurePartial FailureKind = "partial"
	// FailureOrphan means deleting one orphan failed.
	FailureOrphan FailureKind = "orphan"
	// FailureFatal means the run could not start.
	FailureFatal FailureKind = "fatal"
)

// Failure is one recorded problem of a sync run.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Item    string      `json:"item,omitempty"`
	Message string      `json:"message"`
	Err     error       `json:"-"`
}

// Error renders the failure the way it appears in SyncReport.Errors.
func (f Failure) Error() string {
	switch f.Kind {
	case FailureFatal:
		return "Fatal error: " + f.Message
	case FailurePartial:
		return fmt.Sprintf("%s: image upload failed: %s", f.Item, f.Message)
	case FailureOrphan:
		return fmt.Sprintf("Failed to delete %s: %s", f.Item, f.Message)
	default:
		return fmt.Sprintf("%s: %s", f.Item, f.Message)
	}
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error {
	return f.Err
}

// newFailure builds a failure of the given kind from err.
func newFailure(kind FailureKind, item string, err error) Failure {
	return Failure{Kind: kind, Item: item, Message: err.Error(), Err: err}
}
