package catalogsync

import (
	"errors"
	"strings"

	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for catalog sync.
type Handler struct {
	services map[string]*Service
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler over the family services.
func NewHandler(services []*Service, logger *zap.Logger) *Handler {
	byName := make(map[string]*Service, len(services))
	for _, s := range services {
		byName[s.Family()] = s
	}
	return &Handler{services: byName, validate: validator.New(), logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync/:family")
	group.Get("/status", h.family(h.HandleStatus))
	group.Post("", h.family(h.HandleSync))
	group.Get("/reports", h.family(h.HandleListReports))
	group.Get("/reports/:id", h.family(h.HandleGetReport))
}

// family wraps a handler with the lookup of the :family service.
func (h *Handler) family(next func(c *fiber.Ctx, svc *Service) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := strings.ToLower(c.Params("family"))
		svc, ok := h.services[name]
		if !ok {
			logger.WithRayID(h.logger, c).Debug("Unknown family", zap.String("family", name))
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown family: " + name})
		}
		return next(c, svc)
	}
}

// HandleStatus returns the sync state of every record of a family.
// @Summary Get Sync Status
// @Tags sync
// @Produce json
// @Param family path string true "Catalog family (menu, openplay, payforplay, store)"
// @Success 200 {array} reconcile.SyncState
// @Router /sync/{family}/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx, svc *Service) error {
	l := logger.WithRayID(svc.logger, c)

	states, err := svc.Status(c.UserContext())
	if err != nil {
		l.Error("Sync status failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(states)
}

// HandleSync runs a sync for a family.
// @Summary Run Sync
// @Tags sync
// @Accept json
// @Produce json
// @Param family path string true "Catalog family"
// @Param input body reconcile.SyncInput false "Selection"
// @Success 200 {object} reconcile.SyncReport
// @Failure 400 {object} map[string]string
// @Failure 409 {object} reconcile.SyncReport "Another run holds the lock"
// @Router /sync/{family} [post]
func (h *Handler) HandleSync(c *fiber.Ctx, svc *Service) error {
	l := logger.WithRayID(svc.logger, c)

	var in reconcile.SyncInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body: " + err.Error()})
		}
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Sync requested",
		zap.Int("items", len(in.ItemIDs)),
		zap.Bool("delete_orphans", in.DeleteOrphans))

	report := svc.Sync(c.UserContext(), in)
	for _, f := range report.FailuresOf(reconcile.FailureFatal) {
		if errors.Is(f, reconcile.ErrRunInProgress) {
			return c.Status(fiber.StatusConflict).JSON(report)
		}
	}
	return c.JSON(report)
}

// HandleListReports lists archived report ids.
// @Summary List Sync Reports
// @Tags sync
// @Produce json
// @Param family path string true "Catalog family"
// @Success 200 {array} string
// @Router /sync/{family}/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx, svc *Service) error {
	ids, err := svc.Reports(c.UserContext())
	if err != nil {
		return h.reportError(c, svc, err)
	}
	return c.JSON(ids)
}

// HandleGetReport returns one archived report.
// @Summary Get Sync Report
// @Tags sync
// @Produce json
// @Param family path string true "Catalog family"
// @Param id path string true "Run id"
// @Success 200 {object} reconcile.SyncReport
// @Failure 404 {object} map[string]string
// @Router /sync/{family}/reports/{id} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx, svc *Service) error {
	report, err := svc.Report(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.reportError(c, svc, err)
	}
	return c.JSON(report)
}

func (h *Handler) reportError(c *fiber.Ctx, svc *Service, err error) error {
	switch {
	case errors.Is(err, ErrReportNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrArchiveDisabled):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(svc.logger, c).Error("Report lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
