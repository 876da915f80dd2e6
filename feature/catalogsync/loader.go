package catalogsync

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	services []*Service
	handler  *Handler
}

// NewFeature creates the sync feature over the family services.
func NewFeature(services []*Service, logger *zap.Logger) *Feature {
	return &Feature{services: services, handler: NewHandler(services, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalogsync"
}

// IsEnabled reports whether any family is wired.
func (f *Feature) IsEnabled() bool {
	return len(f.services) > 0
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
