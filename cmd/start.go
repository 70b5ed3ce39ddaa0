package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"record-reconciler/core/loader"
	"record-reconciler/core/logger"
	"record-reconciler/core/middleware/auth"
	"record-reconciler/core/middleware/rayid"
	"record-reconciler/feature/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "record-reconciler/docs/swagger"
)

// @title Record Reconciler API
// @version 1.0
// @description API for reconciling key-value record files.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation HTTP server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.Close()
		zap.ReplaceGlobals(app.logger)

		app.checkBucket(cmd.Context())

		server, err := newServer(app)
		if err != nil {
			return err
		}

		go func() {
			app.logger.Info("Starting server", zap.String("port", app.cfg.Server.Port))
			if err := server.Listen(app.cfg.Server.Address()); err != nil {
				app.logger.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		app.logger.Info("Shutting down server...")
		return server.ShutdownWithTimeout(app.cfg.Server.ShutdownTimeout())
	},
}

// newServer builds the Fiber application with middleware and features.
func newServer(app *application) (*fiber.App, error) {
	server := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           app.cfg.Server.ReadTimeout(),
	})

	// RayID first so every later log line carries it
	server.Use(rayid.New())

	server.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(app.logger, c)
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

	// Public routes
	server.Get("/swagger/*", swagger.HandlerDefault)
	if app.cfg.Metrics.Enabled {
		server.Get(app.cfg.Metrics.Path, adaptor.HTTPHandler(app.collector.Handler()))
	}

	server.Use(auth.New(auth.Config{ApiKey: app.cfg.Server.ApiKey}))

	mgr := loader.NewManager(app.logger)
	mgr.Register(reconcile.NewFeature(app.service))
	if err := mgr.LoadAll(server); err != nil {
		return nil, err
	}

	return server, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
