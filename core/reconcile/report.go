package reconcile

import (
	"fmt"
	"time"
)

// NewReport returns an empty report for one run.
func NewReport(runID, family string, startedAt time.Time) *SyncReport {
	return &SyncReport{
		RunID:     runID,
		Family:    family,
		StartedAt: startedAt,
		Errors:    []string{},
		Failures:  []Failure{},
	}
}

// AddFailure records f in both the typed and the human-readable lists.
func (r *SyncReport) AddFailure(f Failure) {
	r.Failures = append(r.Failures, f)
	r.Errors = append(r.Errors, f.Error())
}

// Fatal records a failure that prevented the run from starting.
func (r *SyncReport) Fatal(err error) {
	r.AddFailure(newFailure(FailureFatal, "", err))
}

// FailuresOf returns the failures of one kind.
func (r *SyncReport) FailuresOf(kind FailureKind) []Failure {
	var out []Failure
	for _, f := range r.Failures {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// HasFatal reports whether the run failed before processing items.
func (r *SyncReport) HasFatal() bool {
	return len(r.FailuresOf(FailureFatal)) > 0
}

// Summary renders the counters on one line.
func (r *SyncReport) Summary() string {
	return fmt.Sprintf("created=%d updated=%d linked=%d deleted=%d errors=%d",
		r.Created, r.Updated, r.Linked, r.Deleted, len(r.Errors))
}

func (r *SyncReport) record(res ItemResult) {
	r.ItemResults = append(r.ItemResults, res)
}
