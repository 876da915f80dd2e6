package reconcile

import (
	"context"

	"go.uber.org/zap"
)

// Status computes the sync state of every active source record followed
// by every orphan, without mutating either system. Fetch errors are
// returned to the caller.
func (e *Engine) Status(ctx context.Context) ([]SyncState, error) {
	rc, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	states := make([]SyncState, 0, len(rc.matches))
	for _, m := range rc.matches {
		states = append(states, e.stateOf(rc, m))
	}

	orphans := e.orphans(rc)
	for _, item := range orphans {
		states = append(states, SyncState{
			DownstreamID: item.ID,
			Name:         Normalize(item.Name),
			Category:     rc.table.NameOf(item.CategoryID),
			ImageURL:     item.ImageURL,
			Status:       StatusNotInSource,
			Diffs:        []string{},
		})
	}

	e.logger.Debug("Computed sync status",
		zap.Int("sources", len(rc.sources)),
		zap.Int("downstream", len(rc.items)),
		zap.Int("orphans", len(orphans)))

	return states, nil
}

func (e *Engine) stateOf(rc *runContext, m Match) SyncState {
	src := m.Source
	state := SyncState{
		SourceID:         src.ID,
		Name:             Normalize(src.Name),
		Category:         CategoryName(src.Category),
		ImageURL:         src.ImageURL,
		DownstreamIDHint: src.DownstreamIDHint,
		Diffs:            []string{},
	}

	if !m.Matched() {
		state.Status = StatusNotInDownstream
		return state
	}

	state.DownstreamID = m.Target.ID
	state.Diffs = e.diff(rc, m)
	switch {
	case e.needsLink(m):
		state.Status = StatusLinkedOnly
	case len(state.Diffs) == 0:
		state.Status = StatusSynced
	default:
		state.Status = StatusModified
	}
	return state
}
