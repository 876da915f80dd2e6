package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"catalog-sync/core/loader"
	"catalog-sync/core/logger"
	"catalog-sync/core/middleware/auth"
	"catalog-sync/core/middleware/rayid"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalogsync"
	"catalog-sync/feature/families"
	"catalog-sync/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		logg := d.log
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if d.store != nil {
			created, err := storage.EnsureBucket(cmd.Context(), d.store, d.cfg.Storage.Bucket, d.cfg.Storage.Region)
			if err != nil {
				return err
			}
			if created {
				logg.Info("Created report bucket", zap.String("bucket", d.cfg.Storage.Bucket))
			}
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(catalogsync.NewFeature(d.services(families.All()...), logg))
		mgr.Register(integrity.NewFeature(d.integrityService()))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		if d.cfg.Server.RequiresApiKey() {
			app.Use(auth.New(auth.Config{ApiKey: d.cfg.Server.ApiKey}))
		} else {
			logg.Warn("API key not configured, requests are not authenticated")
		}

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", d.cfg.Server.Port),
				zap.Strings("families", families.Names()),
			)
			if err := app.Listen(":" + d.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
