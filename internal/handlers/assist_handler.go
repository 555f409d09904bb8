package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/ai"
)

// AssistHandler handles the AI text-assist endpoints
type AssistHandler struct {
	assistService *ai.Service
}

// NewAssistHandler creates a new AssistHandler
func NewAssistHandler(assistService *ai.Service) *AssistHandler {
	return &AssistHandler{assistService: assistService}
}

// RegisterAssistRoutes registers AI assist routes
func (h *AssistHandler) RegisterAssistRoutes(g *echo.Group) {
	g.POST("/ai/summary", h.GenerateSummary)
	g.POST("/ai/search-intent", h.AnalyzeSearchIntent)
}

// GenerateSummary produces a short Spanish summary of a project. Always 200:
// when the model is unavailable the body carries the fixed fallback text.
func (h *AssistHandler) GenerateSummary(c echo.Context) error {
	var req ai.SummaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	summary := h.assistService.Summarize(c.Request().Context(), req)
	return c.JSON(http.StatusOK, echo.Map{"summary": summary})
}

// AnalyzeSearchIntent turns a free-text search query into structured filters.
// Degrades to keyword extraction when the model is unavailable.
func (h *AssistHandler) AnalyzeSearchIntent(c echo.Context) error {
	var req struct {
		Query string `json:"query" validate:"required,min=1,max=500"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	intent := h.assistService.AnalyzeSearch(c.Request().Context(), req.Query)
	return c.JSON(http.StatusOK, intent)
}
