package dispatch

import (
	"testing"

	"github.com/somind-ai/somind/pkg/models"
)

func TestExtractLocation(t *testing.T) {
	p := DefaultPatterns()

	tests := []struct {
		name string
		task string
		want string
	}{
		{"in preposition", "Analyze pollution in Delhi", "Delhi"},
		{"for preposition", "Compare PM2.5 for India", "India"},
		{"from preposition", "Fetch readings from Mumbai", "Mumbai"},
		{"pollution suffix", "Mumbai pollution levels this week", "Mumbai"},
		{"data suffix", "Berlin data please", "Berlin"},
		{"multi word location", "Analyze air quality in New Delhi today", "New Delhi"},
		{"noise capture falls through to later pattern", "Trends in Data from Mumbai", "Mumbai"},
		{"noise only", "Show me the data", DefaultLocation},
		{"no location", "Evaluate the results", DefaultLocation},
		{"lowercase filler is not a location", "Check the pollution trends in detail", DefaultLocation},
		{"empty", "", DefaultLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.extractLocation(tt.task); got != tt.want {
				t.Errorf("extractLocation(%q) = %q, want %q", tt.task, got, tt.want)
			}
		})
	}
}

func TestExtractLocation_FirstMatchWins(t *testing.T) {
	// The ordered pattern list is first-match-wins, not longest-match.
	p := DefaultPatterns()

	got := p.extractLocation("Data in Delhi from Greater Mumbai")
	if got != "Delhi" {
		t.Errorf("extractLocation() = %q, want Delhi (the 'in' pattern runs first)", got)
	}
}

func TestDetectComparison(t *testing.T) {
	p := DefaultPatterns()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"last year", "pollution vs last year", true},
		{"previous year", "readings from the previous year", true},
		{"explicit year 2023", "air quality in 2023", true},
		{"explicit year 2025", "air quality during 2025", true},
		{"year out of range", "air quality in 2019", false},
		{"compared to", "delhi compared to mumbai", true},
		{"vs", "delhi vs mumbai", true},
		{"versus", "delhi versus mumbai", true},
		{"difference", "difference in readings", true},
		{"change from", "change from baseline", true},
		{"plain", "current air quality", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.detectComparison(tt.text); got != tt.want {
				t.Errorf("detectComparison(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractMetrics(t *testing.T) {
	p := DefaultPatterns()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"pm25 and no2", "check pm2.5 and no2 levels", []string{"pm2.5", "no2"}},
		{"vocabulary order regardless of text order", "no2 spike and pm2.5 reading", []string{"pm2.5", "no2"}},
		{"spaced pm variant", "particulate matter 2.5 and pm 10", []string{"pm2.5", "pm10"}},
		{"co as whole word", "co levels downtown", []string{"co"}},
		{"co not matched inside words", "compare economy costs", nil},
		{"carbon monoxide phrase", "carbon monoxide exposure", []string{"co"}},
		{"ozone and aqi", "ozone alerts and air quality index", []string{"o3", "aqi"}},
		{"sulphur spelling", "sulphur dioxide plume", []string{"so2"}},
		{"no metrics defaults", "pollution around town", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.extractMetrics(tt.text)

			want := tt.want
			if want == nil {
				want = []string{"pm2.5", "pm10", "no2"}
			}

			if len(got) != len(want) {
				t.Fatalf("extractMetrics(%q) = %v, want %v", tt.text, got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("extractMetrics(%q)[%d] = %q, want %q", tt.text, i, got[i], want[i])
				}
			}
		})
	}
}

func TestClassifyTaskType_PriorityOrder(t *testing.T) {
	p := DefaultPatterns()

	tests := []struct {
		name string
		text string
		want models.TaskType
	}{
		{"environmental first", "climate and stock market analysis", models.TaskTypeEnvironmental},
		{"financial before weather", "market outlook and weather", models.TaskTypeFinancial},
		{"weather before analytical", "compare temperature readings", models.TaskTypeWeather},
		{"analytical last keyword tier", "evaluate the proposal", models.TaskTypeAnalytical},
		{"general fallback", "hello world", models.TaskTypeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.classifyTaskType(tt.text); got != tt.want {
				t.Errorf("classifyTaskType(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestWithOverlay(t *testing.T) {
	base := DefaultPatterns()

	t.Run("new category appended after built-ins", func(t *testing.T) {
		overlay := &Overlay{Categories: []CategoryOverlay{
			{Category: "satellite_imagery", Patterns: []string{`satellite`, `aerial`}},
		}}

		patterns, err := base.WithOverlay(overlay)
		if err != nil {
			t.Fatalf("WithOverlay() error = %v", err)
		}

		plan := New(patterns).Analyze("Satellite view of Delhi")
		if len(plan.Tools) != 1 || plan.Tools[0] != models.ToolCategory("satellite_imagery") {
			t.Fatalf("Tools = %v, want [satellite_imagery]", plan.Tools)
		}
		if _, ok := plan.Parameters[models.ToolCategory("satellite_imagery")].(models.GenericParams); !ok {
			t.Error("configured category should get generic parameters")
		}
	})

	t.Run("existing category gains patterns", func(t *testing.T) {
		overlay := &Overlay{Categories: []CategoryOverlay{
			{Category: string(models.ToolWeatherData), Patterns: []string{`monsoon`}},
		}}

		patterns, err := base.WithOverlay(overlay)
		if err != nil {
			t.Fatalf("WithOverlay() error = %v", err)
		}

		plan := New(patterns).Analyze("Monsoon outlook")
		if !plan.Includes(models.ToolWeatherData) {
			t.Errorf("Tools = %v, want weather_data via overlay pattern", plan.Tools)
		}
	})

	t.Run("base tables unchanged", func(t *testing.T) {
		plan := New(base).Analyze("Monsoon outlook")
		if plan.Includes(models.ToolWeatherData) {
			t.Error("overlay leaked into the base pattern tables")
		}
	})

	t.Run("malformed pattern rejected", func(t *testing.T) {
		overlay := &Overlay{Categories: []CategoryOverlay{
			{Category: "broken", Patterns: []string{`[unclosed`}},
		}}

		if _, err := base.WithOverlay(overlay); err == nil {
			t.Fatal("WithOverlay() accepted a malformed pattern")
		}
	})

	t.Run("empty category rejected", func(t *testing.T) {
		overlay := &Overlay{Categories: []CategoryOverlay{
			{Category: "", Patterns: []string{`x`}},
		}}

		if _, err := base.WithOverlay(overlay); err == nil {
			t.Fatal("WithOverlay() accepted an empty category name")
		}
	})
}
