package catalogsync

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"catalog-sync/core/lock"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrArchiveDisabled means reports are not archived.
	ErrArchiveDisabled = errors.New("report archive is disabled")
	// ErrReportNotFound means no archived report has the requested id.
	ErrReportNotFound = errors.New("report not found")
)

// Options configures a Service.
type Options struct {
	// Locker serializes runs of one family. Defaults to an in-process locker.
	Locker lock.Locker
	// LockTTL is the lease ttl of a run.
	LockTTL time.Duration
	// Storage receives archived reports. Nil disables archiving.
	Storage storage.Client
	// Bucket is the archive bucket.
	Bucket string
	// ReportPrefix is the object prefix of archived reports.
	ReportPrefix string
}

// Service runs status and sync for one catalog family.
type Service struct {
	engine  *reconcile.Engine
	family  string
	locker  lock.Locker
	lockTTL time.Duration
	store   storage.Client
	bucket  string
	prefix  string
	logger  *zap.Logger
	status  singleflight.Group
}

// NewService creates a service around an engine.
func NewService(engine *reconcile.Engine, opts Options, logger *zap.Logger) *Service {
	if opts.Locker == nil {
		opts.Locker = lock.NewLocal()
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 10 * time.Minute
	}
	if opts.ReportPrefix == "" {
		opts.ReportPrefix = "reports"
	}
	family := engine.Adapter().Name()
	return &Service{
		engine:  engine,
		family:  family,
		locker:  opts.Locker,
		lockTTL: opts.LockTTL,
		store:   opts.Storage,
		bucket:  opts.Bucket,
		prefix:  strings.Trim(opts.ReportPrefix, "/"),
		logger:  logger.With(zap.String("family", family)),
	}
}

// Family returns the family name.
func (s *Service) Family() string {
	return s.family
}

// Status returns the sync state of every record. Concurrent calls share one
// read of both catalogs. The shared read is detached from the caller that
// started it, so a cancelled caller returns early without failing the others.
func (s *Service) Status(ctx context.Context) ([]reconcile.SyncState, error) {
	ch := s.status.DoChan("status", func() (any, error) {
		return s.engine.Status(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("Shared status result")
		}
		return res.Val.([]reconcile.SyncState), nil
	}
}

// Sync runs the executor under the family lock and archives the report.
// It never returns an error; a held lock is recorded as a fatal failure.
func (s *Service) Sync(ctx context.Context, in reconcile.SyncInput) *reconcile.SyncReport {
	lease, err := s.locker.Acquire(ctx, s.lockKey(), s.lockTTL)
	if err != nil {
		report := reconcile.NewReport(reconcile.NewRunID(), s.family, time.Now())
		if errors.Is(err, lock.ErrNotObtained) {
			err = fmt.Errorf("%s: %w", s.family, reconcile.ErrRunInProgress)
		}
		report.Fatal(err)
		report.FinishedAt = report.StartedAt
		s.logger.Warn("Sync run not started", zap.Error(err))
		return report
	}
	defer func() {
		if err := lease.Release(context.Background()); err != nil {
			s.logger.Warn("Failed to release sync lock", zap.Error(err))
		}
	}()

	report := s.engine.RunSync(ctx, in)
	s.archive(ctx, report)
	return report
}

func (s *Service) lockKey() string {
	return "sync:" + s.family
}

func (s *Service) archiveEnabled() bool {
	return s.store != nil && s.bucket != ""
}

func (s *Service) reportKey(runID string) string {
	return path.Join(s.prefix, s.family, runID+".json")
}

func (s *Service) archive(ctx context.Context, report *reconcile.SyncReport) {
	if !s.archiveEnabled() {
		return
	}
	// The run may have used up ctx; the archive write gets its own deadline
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	key := s.reportKey(report.RunID)
	if err := storage.PutJSON(actx, s.store, s.bucket, key, report); err != nil {
		s.logger.Warn("Failed to archive sync report", zap.String("run_id", report.RunID), zap.Error(err))
		return
	}
	s.logger.Debug("Archived sync report", zap.String("key", key))
}

// Reports returns the run ids of archived reports, newest first.
func (s *Service) Reports(ctx context.Context) ([]string, error) {
	if !s.archiveEnabled() {
		return nil, ErrArchiveDisabled
	}

	prefix := path.Join(s.prefix, s.family) + "/"
	keys, err := storage.ListKeys(ctx, s.store, s.bucket, prefix)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, prefix)
		if !strings.HasSuffix(name, ".json") || strings.Contains(name, "/") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

// Report reads one archived report.
func (s *Service) Report(ctx context.Context, runID string) (*reconcile.SyncReport, error) {
	if !s.archiveEnabled() {
		return nil, ErrArchiveDisabled
	}
	if _, err := uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("%q: %w", runID, ErrReportNotFound)
	}

	var report reconcile.SyncReport
	if err := storage.GetJSON(ctx, s.store, s.bucket, s.reportKey(runID), &report); err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%s: %w", runID, ErrReportNotFound)
		}
		return nil, err
	}
	return &report, nil
}
