package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	_ "devis/internal/adapters/in/http/docs" // swagger spec

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries the infrastructure the router needs besides the use cases.
type RouterConfig struct {
	Logger     *slog.Logger
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	// Health reports whether the service can serve requests; nil means always healthy.
	Health func(ctx context.Context) error
}

// NewRouter builds the echo instance serving the API.
func NewRouter(server *Server, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(NewMetrics(cfg.Registerer).Middleware())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			cfg.Logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))

	e.GET("/health", healthHandler(cfg.Health))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.POST("/quote-requests", server.CreateQuoteRequest)
	api.GET("/quote-requests/:id", server.GetQuoteRequest)
	api.PATCH("/quote-requests/:id", server.UpdateQuoteRequest)
	api.POST("/quote-requests/:id/send", server.SendQuote)
	api.POST("/quote-requests/:id/preview", server.PreviewQuote)
	api.POST("/quote-requests/:id/validate", server.ValidateQuote)
	api.POST("/quote-requests/:id/courier", server.AssignCourier)
	api.POST("/quote-requests/:id/delivery/confirm", server.ConfirmDelivery)
	api.POST("/quote-requests/:id/delivery/absent", server.MarkClientAbsent)
	api.GET("/couriers/me/deliveries", server.ListMyDeliveries)

	return e
}

func healthHandler(check func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				return c.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return c.String(http.StatusOK, "Healthy")
	}
}
