package textscan

import (
	"strings"
	"testing"
)

func TestExtractInsights(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"improvement percent",
			"PM2.5 improved by 12.6% over last year",
			[]string{"Improvement detected: 12.6%"},
		},
		{
			"mixed signals",
			"NO2 decreased by 7.4% while O3 increased by 4.9%",
			[]string{"Improvement detected: 7.4%", "Concern identified: 4.9%"},
		},
		{
			"qualitative concern",
			"readings are higher than the seasonal norm",
			[]string{"Concern identified: higher than baseline"},
		},
		{
			"no insight",
			"data collection completed",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractInsights(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractInsights() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("insight[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractInsights_Cap(t *testing.T) {
	text := strings.Repeat("pm improved by 1.0% and ", 10)
	if got := ExtractInsights(text); len(got) != 5 {
		t.Errorf("got %d insights, want cap of 5", len(got))
	}
}

func TestClassifyUrgency(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"urgent keyword", "Hazardous air quality reported", UrgencyUrgent},
		{"urgent beats high", "Critical and concerning readings", UrgencyUrgent},
		{"high keyword", "Significant shift in market indices", UrgencyHigh},
		{"normal", "Routine data collection", UrgencyNormal},
		{"empty", "", UrgencyNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyUrgency(tt.content); got != tt.want {
				t.Errorf("ClassifyUrgency(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
