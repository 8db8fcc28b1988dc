// Package server assembles the geoserve fiber application.
package server

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"geolocations/docs"
	handlers "geolocations/internal/http/handler"
	"geolocations/internal/http/middleware"
	"geolocations/internal/service"
)

// swaggerMu serializes the per-request host rewrite of the global docs.SwaggerInfo with its read.
var swaggerMu sync.Mutex

// Options configures New.
type Options struct {
	// Prefix mounts the geo routes, e.g. "/api". Health, metrics and swagger stay at the root.
	Prefix  string
	Service service.GeoService
	// Registry receives the HTTP metrics and is exposed on /metrics.
	Registry *prometheus.Registry
	// AccessLog receives one JSON line per request; defaults to stdout.
	AccessLog io.Writer
}

// New builds the fiber app with middleware, routes, /metrics and /swagger/*.
func New(opts Options) (*fiber.App, error) {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.AccessLog == nil {
		opts.AccessLog = os.Stdout
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(opts.Registry)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "geoserve",
		Immutable:             true,
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// RequestID first so the logger and error envelopes can see it.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.LoggerWithWriter(opts.AccessLog, time.UTC))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	docs.SwaggerInfo.BasePath = "/"
	if opts.Prefix != "" {
		docs.SwaggerInfo.BasePath = opts.Prefix
	}
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		swaggerMu.Lock()
		defer swaggerMu.Unlock()

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, opts.Prefix, opts.Service)

	return app, nil
}
