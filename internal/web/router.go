package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/alanpramil7/underdog/internal/yt"
)

//go:embed templates/*.html
var templateFS embed.FS

// Runner executes one underdog search
type Runner interface {
	Run(ctx context.Context, params yt.QueryParameters) ([]yt.QualifyingRecord, error)
}

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger   *slog.Logger
	Pipeline Runner
	Defaults yt.QueryParameters
}

type templateRenderer struct {
	templates *template.Template
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = &templateRenderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			config.Logger.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	h := NewSearchHandler(config.Pipeline, config.Defaults, config.Logger)
	e.GET("/", h.Page)
	e.GET("/api/videos", h.Videos)
	e.GET("/healthz", h.Health)

	return e
}
