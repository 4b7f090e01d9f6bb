package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"puzzle-leaderboard/core/loader"
	"puzzle-leaderboard/core/logger"
	"puzzle-leaderboard/core/metrics"
	"puzzle-leaderboard/core/middleware/auth"
	"puzzle-leaderboard/core/middleware/rayid"
	"puzzle-leaderboard/core/scheduler"
	"puzzle-leaderboard/feature/integrity"
	"puzzle-leaderboard/feature/leaderboard"
	"puzzle-leaderboard/feature/leaderboard/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the leaderboard job",
	Long: `Runs the reconciliation loop on the configured interval and, when SERVER_ENABLED is
set, serves the HTTP API alongside it. Stops gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.logger.Sync()
		zap.ReplaceGlobals(a.logger)

		engine, reporter, err := a.engine()
		if err != nil {
			return err
		}

		m := metrics.New()
		sched := scheduler.New(a.cfg.Schedule, engine.Task, reporter, m, a.logger)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return sched.Run(ctx)
		})

		if a.cfg.Server.Enabled {
			app, err := newServer(a, reconcile.NewSupervised(engine, sched), m)
			if err != nil {
				return err
			}
			g.Go(func() error {
				a.logger.Info("Starting server", zap.String("port", a.cfg.Server.Port))
				return app.Listen(":" + a.cfg.Server.Port)
			})
			g.Go(func() error {
				<-ctx.Done()
				a.logger.Info("Shutting down server...")
				return app.ShutdownWithTimeout(shutdownTimeout)
			})
		}

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		a.logger.Info("Stopped")
		return nil
	},
}

// newServer builds the fiber app with the health and metrics endpoints and every enabled
// feature mounted behind the API key. Manual refreshes run through refresher.
func newServer(a *app, refresher leaderboard.Refresher, m *metrics.Metrics) (*fiber.App, error) {
	logg := a.logger
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line carries it
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

	app.Use(auth.New(auth.Config{
		ApiKey: a.cfg.Server.ApiKey,
		Skip:   []string{"/health", "/metrics"},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	mgr := loader.NewManager()
	svc := leaderboard.NewService(a.store, a.scraper, refresher, a.cfg.Server.PreviewTTL(), logg)
	mgr.Register(leaderboard.NewFeature(svc, a.cfg.Server.RefreshInterval()))
	mgr.Register(integrity.NewFeature(a.storage, a.cfg.Storage, logg, a.db))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return nil, err
	}
	logg.Info("Features loaded", zap.Strings("features", loaded))
	return app, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
