// Package api exposes the catalog table UI and its JSON endpoints.
package api

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"sortiment/internal/observability"
)

const indexTemplate = "index.html"

//go:embed templates/*.html
var templateFS embed.FS

type templateRenderer struct {
	templates *template.Template
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// NewServer wires middleware, the catalog routes and /metrics.
func NewServer(catalog Catalog, logger *zap.Logger) *echo.Echo {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = &templateRenderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(logger.Named("http")))
	e.Use(requestMetrics)

	NewHandler(catalog, logger).RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(observability.Handler()))

	return e
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}

// requestMetrics counts requests by route template, so path parameters do
// not create new series.
func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)

		code := c.Response().Status
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		} else if err != nil {
			code = http.StatusInternalServerError
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		observability.HTTPRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(code)).Inc()
		return err
	}
}
