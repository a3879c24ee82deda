package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"marketd/internal/config"
	"marketd/internal/exchange"
)

// Server wraps Fiber app and configuration.
type Server struct {
	app *fiber.App
	cfg *config.Config
}

// New builds a Fiber server with common middlewares. The exchange client is
// the single shared upstream connection, injected here so tests can swap in
// a fake.
func New(cfg *config.Config, client exchange.Client) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "marketd",
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	})

	app.Use(recover.New())

	RegisterRoutes(app, cfg, client)

	return &Server{app: app, cfg: cfg}
}

// Start runs Fiber server and handles graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	addr := cfgAddress(s.cfg.Server.Address)
	log.Printf("[marketd] listening on %s", addr)

	// start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Server.ShutdownTimeoutSec)*time.Second)
		defer cancel()
		return s.app.ShutdownWithContext(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func cfgAddress(addr string) string {
	if addr == "" {
		return ":" // default Fiber listens on 0.0.0.0
	}
	return addr
}
