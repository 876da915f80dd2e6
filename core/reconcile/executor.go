package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RunSync brings the downstream catalog in line with the source for the
// selected records and returns the run report. It never returns an error:
// a failed initial fetch is recorded as a fatal failure and the partial
// report is returned.
func (e *Engine) RunSync(ctx context.Context, in SyncInput) *SyncReport {
	report := NewReport(e.newID(), e.adapter.Name(), e.now())
	log := e.logger.With(zap.String("run_id", report.RunID))
	defer func() {
		report.FinishedAt = e.now()
	}()

	log.Info("Starting sync run",
		zap.Int("selected", len(in.ItemIDs)),
		zap.Bool("delete_orphans", in.DeleteOrphans),
		zap.Bool("force_images", in.ForceImageSync))

	rc, err := e.snapshot(ctx)
	if err != nil {
		log.Error("Sync run aborted", zap.Error(err))
		report.Fatal(err)
		return report
	}

	resolver := NewCategoryResolver(e.downstream, rc.categories)
	selected := selection(in.ItemIDs)

	for _, m := range rc.matches {
		if selected != nil {
			if _, ok := selected[m.Source.ID]; !ok {
				continue
			}
		}
		if err := ctx.Err(); err != nil {
			report.Fatal(err)
			log.Error("Sync run cancelled", zap.Error(err))
			return report
		}
		e.syncOne(ctx, rc, resolver, m, in, report, log)
	}

	if in.DeleteOrphans {
		confirmed := selection(in.OrphanIDs)
		for _, item := range e.orphans(rc) {
			if confirmed != nil {
				if _, ok := confirmed[item.ID]; !ok {
					log.Debug("Skipping unconfirmed orphan", zap.String("downstream_id", item.ID))
					continue
				}
			}
			e.deleteOrphan(ctx, item, report, log)
		}
	}

	log.Info("Finished sync run", zap.String("summary", report.Summary()))
	return report
}

// selection returns the allow-list as a set, or nil when every id is
// selected.
func selection(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// itemRun carries the progress of one record so a failure can report the
// action that was under way.
type itemRun struct {
	result ItemResult
	hint   string
	linked bool
}

func (e *Engine) syncOne(ctx context.Context, rc *runContext, resolver *CategoryResolver, m Match, in SyncInput, report *SyncReport, log *zap.Logger) {
	src := m.Source
	run := &itemRun{
		result: ItemResult{SourceID: src.ID, Name: Normalize(src.Name)},
		hint:   Normalize(src.DownstreamIDHint),
	}
	if m.Matched() {
		run.result.DownstreamID = m.Target.ID
		run.result.Action = ActionUpdate
	} else {
		run.result.Action = ActionCreate
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return e.apply(ctx, rc, resolver, m, in, run, report, log)
	}()

	if err != nil {
		run.result.Outcome = OutcomeError
		run.result.Message = err.Error()
		report.AddFailure(newFailure(FailureItem, run.result.Name, err))
		log.Warn("Failed to sync item",
			zap.String("source_id", src.ID),
			zap.String("name", run.result.Name),
			zap.Error(err))
	} else {
		run.result.Outcome = OutcomeSuccess
		log.Debug("Synced item",
			zap.String("source_id", src.ID),
			zap.String("action", string(run.result.Action)),
			zap.String("downstream_id", run.result.DownstreamID))
	}
	report.record(run.result)
}

func (e *Engine) apply(ctx context.Context, rc *runContext, resolver *CategoryResolver, m Match, in SyncInput, run *itemRun, report *SyncReport, log *zap.Logger) error {
	src := m.Source

	categoryID, err := resolver.Resolve(ctx, src.Category)
	if err != nil {
		return err
	}

	if m.Matched() && e.needsLink(m) && run.hint != m.Target.ID {
		if err := e.source.WriteBack(ctx, src.ID, m.Target.ID); err != nil {
			return fmt.Errorf("failed to write back downstream id: %w", err)
		}
		run.hint = m.Target.ID
		run.linked = true
		report.Linked++
	}

	hasImage := e.adapter.ComparesImages() && Normalize(src.ImageURL) != ""

	if m.Matched() {
		diffs := e.diff(rc, m)
		if len(diffs) == 0 && !(in.ForceImageSync && hasImage) {
			run.result.Action = ActionSkip
			if run.linked {
				run.result.Action = ActionLink
			}
			return nil
		}
		run.result.Message = strings.Join(diffs, "; ")
	}

	payload := DownstreamPayload{
		Name:        Normalize(src.Name),
		Description: Normalize(src.Description),
		CategoryID:  categoryID,
		Variants:    []Variant{{Price: src.Price}},
	}

	var downstreamID string
	if m.Matched() {
		payload.ID = m.Target.ID
		payload.Variants[0].VariantID = m.Target.VariantID
		if err := e.downstream.UpdateItem(ctx, m.Target.ID, payload); err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		downstreamID = m.Target.ID
		report.Updated++
	} else {
		created, err := e.downstream.CreateItem(ctx, payload)
		if err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
		if created.ID == "" {
			return errors.New("created item has no id")
		}
		downstreamID = created.ID
		run.result.DownstreamID = created.ID
		report.Created++
	}

	if e.adapter.WritesHint() && run.hint != downstreamID {
		if err := e.source.WriteBack(ctx, src.ID, downstreamID); err != nil {
			return fmt.Errorf("failed to write back downstream id: %w", err)
		}
		run.hint = downstreamID
		report.Linked++
	}

	if hasImage {
		if err := e.downstream.UploadImage(ctx, downstreamID, Normalize(src.ImageURL)); err != nil {
			report.AddFailure(newFailure(FailurePartial, run.result.Name, err))
			log.Warn("Failed to upload image",
				zap.String("source_id", src.ID),
				zap.String("downstream_id", downstreamID),
				zap.Error(err))
		}
	}
	return nil
}

func (e *Engine) deleteOrphan(ctx context.Context, item DownstreamRecord, report *SyncReport, log *zap.Logger) {
	result := ItemResult{
		DownstreamID: item.ID,
		Name:         Normalize(item.Name),
		Action:       ActionDelete,
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return e.downstream.DeleteItem(ctx, item.ID)
	}()

	if err != nil {
		result.Outcome = OutcomeError
		result.Message = err.Error()
		report.AddFailure(newFailure(FailureOrphan, result.Name, err))
		log.Warn("Failed to delete orphan", zap.String("downstream_id", item.ID), zap.Error(err))
	} else {
		result.Outcome = OutcomeSuccess
		report.Deleted++
		log.Debug("Deleted orphan", zap.String("downstream_id", item.ID))
	}
	report.record(result)
}
