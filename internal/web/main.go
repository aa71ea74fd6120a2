// Package web builds the fiber application: middleware, templates and routes.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/config"
	"github.com/CashGlitch/CashGlitch/internal/content"
	fiberlogger "github.com/CashGlitch/CashGlitch/internal/logger/adapter/fiber"
	"github.com/CashGlitch/CashGlitch/internal/web/handler"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/access"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/admin"
	authhandler "github.com/CashGlitch/CashGlitch/internal/web/handler/auth"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/blog"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/categories"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/initialize"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/login"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/site"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/sweepstakes"
	"github.com/CashGlitch/CashGlitch/internal/web/session"
)

const (
	// HealthPath answers 200 while serving and 503 during graceful shutdown.
	HealthPath = "/health"
	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	session      *session.Store
}

// Start starts the web service on the given address and blocks until fiber stops.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error, 1)

	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")

		err := s.App.Listen(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			doneFiber <- err
			return
		}

		doneFiber <- nil
	}()

	return <-doneFiber
}

// WaitShutdown waits for SIGINT or SIGTERM and stops the server gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so the health check returns 503.
	s.alive.Store(false)

	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this instance from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Health reports liveness for load balancers.
func (s *Service) Health(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "shutting down"})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// New creates the web service. limiterStorage may be nil for in-memory rate limiting.
func New(cfg *config.Config, db *gorm.DB, ini *content.Initializer, limiterStorage fiber.Storage) (*Service, error) {
	if cfg == nil || db == nil {
		return nil, errors.New(handler.ErrNilACDFatalLogMsg)
	}

	if ini == nil {
		ini = content.New(db)
	}

	store, err := session.New(cfg)
	if err != nil {
		return nil, err
	}

	templateEngine := html.NewFileSystem(http.FS(subFS(embeddedTemplates, "templates")), ".gohtml")

	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	service := &Service{
		App:     app,
		cfg:     cfg,
		db:      db,
		session: store,
	}
	service.alive.Store(true)

	useMiddlewares(app, cfg)

	app.Get(HealthPath, service.Health)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:   http.FS(subFS(embeddedStatic, "static")),
				Browse: false,
			},
		),
	)

	deps := &handler.Deps{
		Cfg:          cfg,
		DB:           db,
		Content:      ini,
		Session:      store,
		Limiter:      NewLimiter(cfg, limiterStorage),
		ClickLimiter: NewClickLimiter(cfg, limiterStorage),
	}

	if err := registerHandlers(app, deps); err != nil {
		return nil, err
	}

	// redirect root to the admin dashboard, the guard sends strangers to the login page
	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(admin.Path)
	})

	return service, nil
}

func useMiddlewares(app *fiber.App, cfg *config.Config) {
	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New())
	app.Use(helmet.New())

	corsCfg := cors.Config{
		AllowOrigins: cfg.Webserver.AllowOrigins,
		AllowMethods: strings.Join([]string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions,
		}, ","),
	}
	// credentials are only allowed for explicit origins
	if corsCfg.AllowOrigins != "" && corsCfg.AllowOrigins != "*" {
		corsCfg.AllowCredentials = true
	}

	app.Use(cors.New(corsCfg))

	if cfg.Webserver.CookieEncryptionKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{
			Key: cfg.Webserver.CookieEncryptionKey,
		}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: HealthPath,
	}))
}

func registerHandlers(app *fiber.App, deps *handler.Deps) error {
	services := []handler.Service{
		&blog.Service{},
		&categories.Service{},
		&sweepstakes.Service{},
		&initialize.Service{},
		&site.Service{},
		&authhandler.Service{},
		&access.Service{},
		&admin.Service{},
		&login.Service{},
	}

	for _, svc := range services {
		if err := svc.Init(app, deps); err != nil {
			return err
		}
	}

	return nil
}
