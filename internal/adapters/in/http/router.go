package http

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

type RouterOptions struct {
	// Doc is served under /swagger and, with ValidateRequests, enforced on
	// every API request.
	Doc              *openapi3.T
	ValidateRequests bool
	Logger           *slog.Logger
}

// NewRouter builds the echo instance: health check, swagger UI and the
// actor-guarded API group.
func NewRouter(server ServerInterface, opts RouterOptions) (*echo.Echo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency))
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := routeGroup{echo: e, middleware: []echo.MiddlewareFunc{ActorMiddleware()}}
	if opts.Doc != nil {
		if err := registerSwagger(opts.Doc); err != nil {
			return nil, err
		}
		e.GET("/swagger/*", echoSwagger.WrapHandler)

		if opts.ValidateRequests {
			validator, err := OpenAPIValidator(opts.Doc)
			if err != nil {
				return nil, err
			}
			api.middleware = append(api.middleware, validator)
		}
	}

	RegisterHandlers(api, server)
	return e, nil
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var swaggerOnce sync.Once

// registerSwagger publishes doc to the swag registry, which accepts one
// registration per process.
func registerSwagger(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	swaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return nil
}

// routeGroup attaches middleware per route. An echo.Group would also catch
// unknown paths under its prefix and answer them through the middleware.
type routeGroup struct {
	echo       *echo.Echo
	middleware []echo.MiddlewareFunc
}

func (g routeGroup) GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return g.echo.GET(path, h, slices.Concat(g.middleware, m)...)
}

func (g routeGroup) POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return g.echo.POST(path, h, slices.Concat(g.middleware, m)...)
}

func (g routeGroup) PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return g.echo.PUT(path, h, slices.Concat(g.middleware, m)...)
}
