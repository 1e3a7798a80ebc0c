// Package web wires the HTTP service: middleware, health and metrics
// endpoints and the API handlers.
package web

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/hackaholics/identity/internal/config"
	fiberlog "github.com/hackaholics/identity/internal/logger/adapter/fiber"
	"github.com/hackaholics/identity/internal/web/handler"
	"github.com/hackaholics/identity/internal/web/handler/auth/google"
	"github.com/hackaholics/identity/internal/web/handler/auth/me"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"

	// MetricsPath serves the prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, deps *handler.Deps) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			AppName:               cfg.Title,
			CaseSensitive:         true,
			Immutable:             true,
			BodyLimit:             cfg.Webserver.BodyLimit,
			DisableStartupMessage: !cfg.DevMode,
		},
	)

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	app.Use(fiberlog.New(fiberlog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	for _, h := range []handler.Service{&google.Service{}, &me.Service{}} {
		if err := h.Init(app, deps); err != nil {
			return nil, err
		}
	}

	return service, nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// Start listens on addr and blocks until the server is shut down.
func (s *Service) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("starting http server")

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown stops the server gracefully.
// Unless in dev mode /checkalive returns 503 for Webserver.ShutDownTime seconds
// first, so load balancers can take this instance out of rotation.
func (s *Service) Shutdown(ctx context.Context) error {
	s.alive.Store(false)

	if !s.fastShutDown {
		drain := time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second

		log.Info().Msgf(
			"graceful shutdown: return 503 for %s to let the LB remove this instance from active targets",
			drain,
		)

		select {
		case <-time.After(drain):
		case <-ctx.Done():
		}
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.ShutdownWithContext(ctx); err != nil {
		return err
	}

	log.Info().Msg("http server was stopped ... good bye...")

	return nil
}
