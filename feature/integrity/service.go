package integrity

import (
	"context"
	"errors"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"
	"catalog-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by the structure checks when no report
// storage is configured.
var ErrStorageDisabled = errors.New("report storage is not configured")

// Options configures the integrity service.
type Options struct {
	Storage      storage.Client
	Bucket       string
	Region       string
	ReportPrefix string
}

// Service handles preflight checks.
type Service struct {
	adapters []reconcile.Adapter
	db       *gorm.DB
	pos      reconcile.DownstreamClient
	opts     Options
	logger   *zap.Logger
}

// NewService creates a new integrity service.
func NewService(adapters []reconcile.Adapter, db *gorm.DB, pos reconcile.DownstreamClient, opts Options, logger *zap.Logger) *Service {
	return &Service{
		adapters: adapters,
		db:       db,
		pos:      pos,
		opts:     opts,
		logger:   logger,
	}
}

func (s *Service) folders() []string {
	names := make([]string, 0, len(s.adapters))
	for _, a := range s.adapters {
		names = append(names, a.Name())
	}
	return checks.ReportFolders(s.opts.ReportPrefix, names)
}

// CheckStructure returns the report folders missing from the archive bucket.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.opts.Storage == nil {
		return nil, ErrStorageDisabled
	}
	missing, err := checks.CheckStructure(ctx, s.opts.Storage, s.opts.Bucket, s.folders())
	var bucketErr *checks.BucketMissingError
	if errors.As(err, &bucketErr) {
		// every folder is missing along with the bucket
		return s.folders(), nil
	}
	return missing, err
}

// FixStructure creates the bucket and the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.opts.Storage == nil {
		return ErrStorageDisabled
	}
	return checks.FixStructure(ctx, s.opts.Storage, s.opts.Bucket, s.opts.Region, s.logger, missing)
}

// CheckServer verifies the source tables of every family.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.db, s.adapters)
}

// CheckPOS verifies that the POS API answers.
func (s *Service) CheckPOS(ctx context.Context) *checks.POSReport {
	return checks.CheckPOS(ctx, s.pos, s.adapters)
}
