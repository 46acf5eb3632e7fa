package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/wichananm65/participant-registry/internal/client"
	"github.com/wichananm65/participant-registry/internal/config"
	"github.com/wichananm65/participant-registry/internal/infrastructure/database"
	"github.com/wichananm65/participant-registry/internal/participant"
	"github.com/wichananm65/participant-registry/internal/viewmodel"
	"github.com/wichananm65/participant-registry/internal/web"
)

const shutdownTimeout = 10 * time.Second

func serve(ctx context.Context, cfg *config.Config) error {
	opts, err := dbOptions(cfg)
	if err != nil {
		return err
	}
	db, err := openDB(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer db.Close()

	service := participant.NewService(participant.NewSQLRepository(db, opts.Dialect))
	app := newApp(cfg, service)

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return err
	}
	slog.Info("listening", "addr", ln.Addr().String(), "driver", opts.Dialect)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listener(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})
	return g.Wait()
}

// openDB returns the shared handle. An unreachable server or a failed
// migration is logged; requests will then fail with 500 until it recovers.
func openDB(ctx context.Context, cfg *config.Config, opts database.Options) (*sql.DB, error) {
	db, err := database.Open(opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx, db); err != nil {
		slog.Error("database not reachable", "error", err)
		return db, nil
	}
	slog.Info("connected to database", "driver", opts.Dialect)

	if cfg.DB.Migrate {
		if err := database.Migrate(opts, database.Up); err != nil {
			slog.Error("apply migrations", "error", err)
		}
	}
	return db, nil
}

func newApp(cfg *config.Config, service *participant.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(recover.New())
	setupCORS(app)
	app.Use(requestLogger)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	participant.NewHandler(service).RegisterRoutes(app)

	var api viewmodel.API = service
	if cfg.UIAPIURL != "" {
		api = client.New(cfg.UIAPIURL).WithTimeout(10 * time.Second)
		slog.Info("page uses remote api", "url", cfg.UIAPIURL)
	}
	web.NewHandler(api).RegisterRoutes(app)

	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		app.Static("/", cfg.StaticDir)
	}
	return app
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	slog.Debug("request",
		"method", c.Method(),
		"url", c.OriginalURL(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return err
}
