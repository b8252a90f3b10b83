package toolkit

import (
	"context"
	"fmt"
	"time"

	"github.com/somind-ai/somind/pkg/models"
)

// ForecastDay is one canned forecast entry.
type ForecastDay struct {
	Day        string  `json:"day"`
	HighC      float64 `json:"high_c"`
	LowC       float64 `json:"low_c"`
	Conditions string  `json:"conditions"`
	RainChance int     `json:"rain_chance_percent"`
}

// WeatherReport is the weather tool's payload.
type WeatherReport struct {
	Location       string        `json:"location"`
	Timestamp      time.Time     `json:"timestamp"`
	TemperatureC   float64       `json:"temperature_c"`
	Humidity       int           `json:"humidity_percent"`
	Conditions     string        `json:"conditions"`
	Forecast       []ForecastDay `json:"forecast,omitempty"`
	HistoricalNote string        `json:"historical_note,omitempty"`
	Summary        string        `json:"summary"`
}

// WeatherTool serves canned weather conditions and forecasts.
type WeatherTool struct {
	now func() time.Time
}

// NewWeatherTool creates the weather data tool.
func NewWeatherTool() *WeatherTool {
	return &WeatherTool{now: time.Now}
}

// Name implements Tool.
func (t *WeatherTool) Name() models.ToolCategory {
	return models.ToolWeatherData
}

// Execute implements Tool.
func (t *WeatherTool) Execute(_ context.Context, inv Invocation) (*Result, error) {
	params, ok := inv.Params.(models.WeatherParams)
	if !ok {
		return nil, fmt.Errorf("%w: weather_data got %T", ErrBadParams, inv.Params)
	}

	location := params.Location
	if location == "" {
		location = "global"
	}

	report := &WeatherReport{
		Location:     location,
		Timestamp:    t.now(),
		TemperatureC: 27.5,
		Humidity:     64,
		Conditions:   "Partly cloudy",
		Summary:      "Current conditions retrieved",
	}

	if params.IncludeForecast {
		report.Forecast = []ForecastDay{
			{Day: "tomorrow", HighC: 29.0, LowC: 21.5, Conditions: "Scattered showers", RainChance: 60},
			{Day: "day after", HighC: 30.5, LowC: 22.0, Conditions: "Mostly sunny", RainChance: 15},
		}
	}
	if params.HistoricalData {
		report.HistoricalNote = "Temperatures 1.2C above the seasonal average for the prior year"
	}

	return successResult(t.Name(), report), nil
}
