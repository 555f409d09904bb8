package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/repositories"
)

// SensorHandler handles the campus sensor dashboard endpoints
type SensorHandler struct {
	sensorRepository repositories.SensorRepository
}

// NewSensorHandler creates a new SensorHandler
func NewSensorHandler(sensorRepo repositories.SensorRepository) *SensorHandler {
	return &SensorHandler{sensorRepository: sensorRepo}
}

// RegisterSensorRoutes registers sensor dashboard routes
func (h *SensorHandler) RegisterSensorRoutes(g *echo.Group) {
	g.POST("/sensors/readings", h.CreateReading)
	g.GET("/sensors/latest", h.GetLatestReadings)
}

// CreateReading ingests one sensor measurement
func (h *SensorHandler) CreateReading(c echo.Context) error {
	var req models.CreateReadingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reading := &models.SensorReading{
		SensorID: req.SensorID,
		Metric:   req.Metric,
		Value:    req.Value,
	}
	if err := h.sensorRepository.WriteReading(c.Request().Context(), reading); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusAccepted)
}

// GetLatestReadings returns the most recent value per sensor and metric
// within the requested window (default one hour)
func (h *SensorHandler) GetLatestReadings(c echo.Context) error {
	window := time.Hour
	if w := c.QueryParam("window"); w != "" {
		parsed, err := time.ParseDuration(w)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid window duration")
		}
		window = parsed
	}

	readings, err := h.sensorRepository.LatestReadings(c.Request().Context(), window)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if readings == nil {
		readings = []models.SensorReading{}
	}
	return c.JSON(http.StatusOK, readings)
}
