package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/skycastapp/skycast-api/internal/metrics"
)

var (
	// ErrLocationNotFound collapses every upstream failure mode for current
	// weather (transport error, non-2xx, bad payload) into one signal so the
	// API never leaks provider details.
	ErrLocationNotFound = errors.New("location not found")

	// ErrForecastUnavailable means both forecast endpoints failed.
	ErrForecastUnavailable = errors.New("forecast unavailable")
)

const (
	endpointCurrent  = "/data/2.5/weather"
	endpointOneCall  = "/data/2.5/onecall"
	endpointFiveDay  = "/data/2.5/forecast"
	onecallExclusion = "minutely,hourly,current,alerts"
)

// Client talks to the OpenWeatherMap API. All configuration is injected; the
// caller owns the http.Client and its timeout policy.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpClient,
		logger:  logger.With("component", "weather_client"),
	}
}

func (c *Client) CurrentByCity(ctx context.Context, city string) (*Current, error) {
	params := url.Values{}
	params.Set("q", city)
	return c.fetchCurrent(ctx, params)
}

func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (*Current, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return c.fetchCurrent(ctx, params)
}

func (c *Client) fetchCurrent(ctx context.Context, params url.Values) (*Current, error) {
	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Coord Coord `json:"coord"`
		Dt    int64 `json:"dt"`
		Main  struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []conditionPayload `json:"weather"`
	}

	if err := c.getJSON(ctx, endpointCurrent, params, &payload); err != nil {
		c.logger.WarnContext(ctx, "current weather fetch failed", "error", err)
		return nil, ErrLocationNotFound
	}

	cond := firstCondition(payload.Weather)
	return &Current{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Coord:       payload.Coord,
		Timestamp:   time.Unix(payload.Dt, 0).UTC(),
		TempC:       normalizeTempC(payload.Main.Temp),
		FeelsLikeC:  normalizeTempC(payload.Main.FeelsLike),
		HumidityPct: payload.Main.Humidity,
		WindSpeedMS: payload.Wind.Speed,
		Condition:   cond.Main,
		Description: cond.Description,
		Icon:        cond.Icon,
	}, nil
}

// Forecast fetches the One Call daily forecast and, on any failure, retries
// exactly once against the 5-day/3-hour endpoint before giving up. Whichever
// shape comes back is normalized to at most seven daily entries.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (Forecast, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var payload forecastPayload

	primary := url.Values{}
	for k, v := range params {
		primary[k] = v
	}
	primary.Set("exclude", onecallExclusion)

	if err := c.getJSON(ctx, endpointOneCall, primary, &payload); err != nil {
		c.logger.WarnContext(ctx, "onecall forecast failed, falling back", "error", err)
		metrics.ForecastFallbacksTotal.Inc()

		payload = forecastPayload{}
		if err := c.getJSON(ctx, endpointFiveDay, params, &payload); err != nil {
			c.logger.WarnContext(ctx, "fallback forecast failed", "error", err)
			return Forecast{}, ErrForecastUnavailable
		}
	}

	return normalizeForecast(payload), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	} else if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = strconv.Itoa(resp.StatusCode)
	}
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint, outcome).Observe(time.Since(start).Seconds())
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()

	if err != nil {
		return fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}
