package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alanpramil7/underdog/internal/output"
	"github.com/alanpramil7/underdog/internal/yt"
)

// SearchHandler adapts HTTP form input to pipeline runs
type SearchHandler struct {
	pipeline Runner
	defaults yt.QueryParameters
	logger   *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(pipeline Runner, defaults yt.QueryParameters, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		pipeline: pipeline,
		defaults: defaults,
		logger:   logger,
	}
}

// ErrorResponse is the JSON body returned on failure
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type pageData struct {
	Params   yt.QueryParameters
	Searched bool
	Videos   []yt.QualifyingRecord
	Errors   map[string]string
	Failure  string
}

// Page renders the search form, and the results when a search was submitted
func (h *SearchHandler) Page(c echo.Context) error {
	params, err := h.bindParams(c)
	data := pageData{Params: params}

	if c.QueryParam("search") == "" && c.QueryParam("query") == "" {
		return c.Render(http.StatusOK, "index.html", data)
	}

	if err == nil {
		err = params.Validate()
	}
	if err != nil {
		data.Errors = validationMessages(err)
		return c.Render(http.StatusBadRequest, "index.html", data)
	}

	videos, err := h.pipeline.Run(c.Request().Context(), params)
	if err != nil {
		h.logger.Error("search failed", slog.String("query", params.Query), slog.Any("error", err))
		data.Failure = err.Error()
		return c.Render(http.StatusBadGateway, "index.html", data)
	}

	data.Searched = true
	data.Videos = videos
	return c.Render(http.StatusOK, "index.html", data)
}

// Videos runs a search and returns the qualifying videos as JSON
func (h *SearchHandler) Videos(c echo.Context) error {
	params, err := h.bindParams(c)
	if err == nil {
		err = params.Validate()
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid parameters",
			Errors:  validationMessages(err),
		})
	}

	videos, err := h.pipeline.Run(c.Request().Context(), params)
	if err != nil {
		h.logger.Error("search failed", slog.String("query", params.Query), slog.Any("error", err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Message: err.Error()})
	}
	if videos == nil {
		videos = []yt.QualifyingRecord{}
	}

	return c.JSON(http.StatusOK, output.SearchReport{
		Query:  params.Query,
		Count:  len(videos),
		Videos: videos,
	})
}

// Health reports that the server is up
func (h *SearchHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// bindParams overlays query string values on the configured defaults
func (h *SearchHandler) bindParams(c echo.Context) (yt.QueryParameters, error) {
	params := h.defaults
	// the binder skips empty values, but an explicitly empty query must fail validation
	if c.QueryParams().Has("query") {
		params.Query = strings.TrimSpace(c.QueryParam("query"))
	}
	err := echo.QueryParamsBinder(c).
		Int("max_results", &params.MaxResults).
		Int("max_views", &params.MaxViews).
		Int("max_subs", &params.MaxSubs).
		Int("days_ago", &params.DaysAgo).
		BindError()
	return params, err
}

func validationMessages(err error) map[string]string {
	var verr *yt.ValidationError
	if errors.As(err, &verr) {
		return verr.Errors
	}
	var berr *echo.BindingError
	if errors.As(err, &berr) {
		return map[string]string{berr.Field: berr.Field + " must be a whole number"}
	}
	return map[string]string{"request": err.Error()}
}
