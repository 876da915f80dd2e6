package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine reconciles one catalog family. It holds no per-run state, so a
// single Engine may serve concurrent Status calls; sync runs of the same
// family must be serialized by the caller.
type Engine struct {
	adapter    Adapter
	source     SourceClient
	downstream DownstreamClient
	logger     *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewEngine creates an engine for the adapter's family.
func NewEngine(adapter Adapter, source SourceClient, downstream DownstreamClient, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		adapter:    adapter,
		source:     source,
		downstream: downstream,
		logger:     logger.With(zap.String("family", adapter.Name())),
		now:        time.Now,
		newID:      NewRunID,
	}
}

// NewRunID returns a time-ordered run id, so sorting ids sorts runs.
func NewRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Adapter returns the family adapter.
func (e *Engine) Adapter() Adapter {
	return e.adapter
}

// runContext is the state of one Status or RunSync call. It is never shared
// between calls.
type runContext struct {
	sources    []SourceRecord
	items      []DownstreamRecord
	categories []DownstreamCategory
	table      CategoryTable
	matcher    *Matcher
	matches    []Match
}

// snapshot fetches both catalogs concurrently and matches every source
// record, claiming downstream ids before any orphan is looked at.
func (e *Engine) snapshot(ctx context.Context) (*runContext, error) {
	rc := &runContext{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sources, err := e.source.QueryActive(gctx)
		if err != nil {
			return fmt.Errorf("failed to query source records: %w", err)
		}
		rc.sources = sources
		return nil
	})
	g.Go(func() error {
		items, err := e.downstream.ListItems(gctx)
		if err != nil {
			return fmt.Errorf("failed to list downstream items: %w", err)
		}
		rc.items = items
		return nil
	})
	g.Go(func() error {
		categories, err := e.downstream.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("failed to list downstream categories: %w", err)
		}
		rc.categories = categories
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rc.table = NewCategoryTable(rc.categories)
	rc.matcher = NewMatcher(rc.items)
	rc.matches = rc.matcher.MatchAll(rc.sources)
	return rc, nil
}

// orphans returns the unclaimed downstream records in owned categories.
func (e *Engine) orphans(rc *runContext) []DownstreamRecord {
	var out []DownstreamRecord
	for _, item := range rc.matcher.Unclaimed() {
		if e.adapter.OwnsCategory(rc.table.NameOf(item.CategoryID)) {
			out = append(out, item)
		}
	}
	return out
}

// diff compares a matched pair with the family's image rule.
func (e *Engine) diff(rc *runContext, m Match) []string {
	return Diff(*m.Source, *m.Target, rc.table, e.adapter.ComparesImages())
}

// needsLink reports whether a match must be persisted as the source hint.
func (e *Engine) needsLink(m Match) bool {
	return m.Kind == MatchName && e.adapter.WritesHint()
}
