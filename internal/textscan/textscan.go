// Package textscan holds small text heuristics shared by the analysis
// and reporting phases: insight extraction from narrative text and
// urgency classification.
package textscan

import (
	"fmt"
	"regexp"
	"strings"
)

// Urgency levels for task and report content.
const (
	UrgencyUrgent = "urgent"
	UrgencyHigh   = "high"
	UrgencyNormal = "normal"
)

const maxInsights = 5

var improvementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)improved by (\d+\.?\d*%)`),
	regexp.MustCompile(`(?i)decreased by (\d+\.?\d*%)`),
	regexp.MustCompile(`(?i)reduced by (\d+\.?\d*%)`),
}

var concernPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)increased by (\d+\.?\d*%)`),
	regexp.MustCompile(`(?i)worsened by (\d+\.?\d*%)`),
}

var urgentKeywords = []string{"urgent", "critical", "immediate", "emergency", "hazardous"}

var highKeywords = []string{"important", "significant", "major", "concerning"}

// ExtractInsights pulls improvement and concern statements out of
// narrative text. At most five insights are returned, improvements
// first.
func ExtractInsights(text string) []string {
	var insights []string

	for _, pattern := range improvementPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			insights = append(insights, fmt.Sprintf("Improvement detected: %s", match[1]))
		}
	}
	if strings.Contains(strings.ToLower(text), "better than") {
		insights = append(insights, "Improvement detected: better than baseline")
	}

	for _, pattern := range concernPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			insights = append(insights, fmt.Sprintf("Concern identified: %s", match[1]))
		}
	}
	if strings.Contains(strings.ToLower(text), "higher than") {
		insights = append(insights, "Concern identified: higher than baseline")
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

// ClassifyUrgency buckets content into urgent, high, or normal based on
// keyword tiers. Urgent keywords win over high keywords.
func ClassifyUrgency(content string) string {
	lower := strings.ToLower(content)

	for _, keyword := range urgentKeywords {
		if strings.Contains(lower, keyword) {
			return UrgencyUrgent
		}
	}
	for _, keyword := range highKeywords {
		if strings.Contains(lower, keyword) {
			return UrgencyHigh
		}
	}
	return UrgencyNormal
}
