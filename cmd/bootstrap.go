package cmd

import (
	"context"
	"fmt"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/lock"
	"catalog-sync/core/logger"
	"catalog-sync/core/loyverse"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalogsync"
	"catalog-sync/feature/families"
	"catalog-sync/feature/integrity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps holds the collaborators shared by every command.
type deps struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *gorm.DB
	pos    *loyverse.Client
	locker lock.Locker
	store  storage.Client
}

// bootstrap loads the configuration and connects every collaborator.
// Storage is only created when report archiving is enabled.
func bootstrap(ctx context.Context) (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pos, err := loyverse.NewClient(cfg.Loyverse)
	if err != nil {
		return nil, fmt.Errorf("failed to create loyverse client: %w", err)
	}

	locker, err := lock.New(ctx, cfg.Redis, l)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, log: l, db: db, pos: pos, locker: locker}
	if cfg.Sync.ArchiveReports {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		d.store = store
	}
	return d, nil
}

func (d *deps) serviceOptions() catalogsync.Options {
	opts := catalogsync.Options{
		Locker:       d.locker,
		LockTTL:      d.cfg.Sync.LockTTL(),
		Bucket:       d.cfg.Storage.Bucket,
		ReportPrefix: d.cfg.Sync.ReportPrefix,
	}
	if d.store != nil {
		opts.Storage = d.store
	}
	return opts
}

// services builds the sync service of every given family.
func (d *deps) services(adapters ...reconcile.Adapter) []*catalogsync.Service {
	return catalogsync.NewServices(adapters, d.db, d.pos, d.serviceOptions(), d.log)
}

// service builds the sync service of one family by name.
func (d *deps) service(family string) (*catalogsync.Service, error) {
	a, err := families.Lookup(family)
	if err != nil {
		return nil, err
	}
	return d.services(a)[0], nil
}

func (d *deps) integrityService() *integrity.Service {
	opts := integrity.Options{
		Bucket:       d.cfg.Storage.Bucket,
		Region:       d.cfg.Storage.Region,
		ReportPrefix: d.cfg.Sync.ReportPrefix,
	}
	if d.store != nil {
		opts.Storage = d.store
	}
	return integrity.NewService(families.All(), d.db, d.pos, opts, d.log)
}
