package weather

import "time"

type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Current is the normalized current-conditions view returned to clients,
// regardless of which upstream endpoint produced it.
type Current struct {
	City        string    `json:"city"`
	Country     string    `json:"country,omitempty"`
	Coord       Coord     `json:"coord"`
	Timestamp   time.Time `json:"timestamp"` // always UTC
	TempC       float64   `json:"tempC"`
	FeelsLikeC  float64   `json:"feelsLikeC"`
	HumidityPct float64   `json:"humidityPercent"`
	WindSpeedMS float64   `json:"windSpeed"`
	Condition   string    `json:"condition"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
}

// DailyEntry is one day of the normalized forecast.
type DailyEntry struct {
	Date        time.Time `json:"date"`
	TempMinC    float64   `json:"tempMinC"`
	TempMaxC    float64   `json:"tempMaxC"`
	TempDayC    float64   `json:"tempDayC"`
	Condition   string    `json:"condition"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
}

// Forecast always carries a non-nil Daily slice: an empty slice means
// "no forecast available", which callers must not treat as an error.
type Forecast struct {
	Daily []DailyEntry `json:"daily"`
}

// conditionPayload is the weather descriptor shared by all OpenWeather
// endpoints.
type conditionPayload struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// forecastPayload covers both upstream forecast shapes: the One Call API
// fills Daily, the 5-day/3-hour fallback fills List. normalizeForecast
// accepts either.
type forecastPayload struct {
	Daily []struct {
		Dt   int64 `json:"dt"`
		Temp struct {
			Day float64 `json:"day"`
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"temp"`
		Weather []conditionPayload `json:"weather"`
	} `json:"daily"`

	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp    float64 `json:"temp"`
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Weather []conditionPayload `json:"weather"`
	} `json:"list"`
}
