package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skycastapp/skycast-api/internal/weather"
)

type weatherClient interface {
	CurrentByCity(ctx context.Context, city string) (*weather.Current, error)
	CurrentByCoords(ctx context.Context, lat, lon float64) (*weather.Current, error)
	Forecast(ctx context.Context, lat, lon float64) (weather.Forecast, error)
}

type WeatherHandler struct {
	client weatherClient
	logger *slog.Logger
}

func NewWeatherHandler(client weatherClient, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{
		client: client,
		logger: logger.With("component", "weather_handler"),
	}
}

// GET /api/weather?city=
func (h *WeatherHandler) CurrentByCity(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": errCityRequired})
		return
	}

	current, err := h.client.CurrentByCity(c.Request.Context(), city)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": errCityNotFound})
		return
	}
	c.JSON(http.StatusOK, current)
}

// GET /api/weather/coords?lat=&lon=
func (h *WeatherHandler) CurrentByCoords(c *gin.Context) {
	lat, lon, ok := parseCoords(c)
	if !ok {
		return
	}

	current, err := h.client.CurrentByCoords(c.Request.Context(), lat, lon)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": errLocationNotFound})
		return
	}
	c.JSON(http.StatusOK, current)
}

// GET /api/forecast?lat=&lon=
// An empty daily list is a valid 200; only a complete upstream failure
// (primary and fallback both down) answers 500.
func (h *WeatherHandler) Forecast(c *gin.Context) {
	lat, lon, ok := parseCoords(c)
	if !ok {
		return
	}

	forecast, err := h.client.Forecast(c.Request.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, weather.ErrForecastUnavailable) {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": errForecastFailed})
			return
		}
		h.logger.Error("forecast", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": errServerError})
		return
	}
	c.JSON(http.StatusOK, forecast)
}

func parseCoords(c *gin.Context) (lat, lon float64, ok bool) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": errCoordsRequired})
		return 0, 0, false
	}

	var err error
	if lat, err = strconv.ParseFloat(latStr, 64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": errCoordsRequired})
		return 0, 0, false
	}
	if lon, err = strconv.ParseFloat(lonStr, 64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": errCoordsRequired})
		return 0, 0, false
	}
	return lat, lon, true
}
