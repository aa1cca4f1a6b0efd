package cmd

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"storefront/core/alert"
	"storefront/core/config"
	"storefront/core/database"
	"storefront/core/loader"
	"storefront/core/logger"
	"storefront/core/middleware/auth"
	"storefront/core/middleware/rayid"
	"storefront/core/storage"
	"storefront/core/txn"

	"storefront/feature/catalog"
	"storefront/feature/catalog/cache"
	"storefront/feature/catalog/enrich"
	"storefront/feature/orders"
	"storefront/feature/pos"
	"storefront/feature/pos/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "storefront/docs/swagger"
)

// @title Storefront Sync API
// @version 1.0
// @description Storefront backend synchronized with an external POS via signed webhooks.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the storefront server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		// 4. Snapshot Storage (optional)
		var store storage.Client
		if cfg.Storage.Enabled {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}

		// 5. Build the reconciliation graph
		gw := txn.New(db)
		projector := cache.NewProjector(logg, store, cfg.Storage.Bucket, cfg.Storage.Enabled)
		engine := reconcile.New(gw, projector, logg)
		notifier := alert.NewSink(cfg.Alert, logg)

		var provider enrich.Provider
		if cfg.Enrich.BaseURL != "" {
			provider = enrich.NewHTTPProvider(cfg.Enrich)
		}
		dispatcher := enrich.NewDispatcher(db, provider, notifier, logg, cfg.Enrich)

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 7. Feature Loader
		mgr := loader.NewManager()
		mgr.Register(pos.NewFeature(cfg.POS, db, engine, projector, dispatcher, notifier, logg))
		mgr.Register(catalog.NewFeature(db, projector, logg))
		mgr.Register(orders.NewFeature(gw, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		// Webhooks authenticate by signature and swagger stays public;
		// everything else needs the API key when one is configured.
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/webhooks/") ||
					strings.HasPrefix(c.Path(), "/swagger/")
			},
		}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
