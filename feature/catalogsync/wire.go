package catalogsync

import (
	"catalog-sync/core/reconcile"
	"catalog-sync/core/sourcedb"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewServices builds one service per adapter, reading the source catalog
// from db and writing to the POS through pos.
func NewServices(adapters []reconcile.Adapter, db *gorm.DB, pos reconcile.DownstreamClient, opts Options, logger *zap.Logger) []*Service {
	services := make([]*Service, 0, len(adapters))
	for _, a := range adapters {
		source := sourcedb.NewClient(db, a.Schema())
		engine := reconcile.NewEngine(a, source, pos, logger)
		services = append(services, NewService(engine, opts, logger))
	}
	return services
}
