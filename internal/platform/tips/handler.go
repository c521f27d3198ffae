package tips

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler serves the tips endpoint.
type Handler struct {
	source Source
	logger zerolog.Logger
}

// NewHandler creates a tips handler.
func NewHandler(source Source, logger zerolog.Logger) *Handler {
	return &Handler{source: source, logger: logger}
}

// RegisterRoutes registers tip routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/tips", h.GetTip)
}

// GetTip returns a single health tip, optionally filtered by ?topic=.
func (h *Handler) GetTip(c echo.Context) error {
	topic := c.QueryParam("topic")

	tip, err := h.source.Tip(c.Request().Context(), topic)
	if err != nil {
		h.logger.Error().Err(err).Str("topic", topic).Msg("failed to fetch tip")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "tips are unavailable right now")
	}

	return c.JSON(http.StatusOK, tip)
}
