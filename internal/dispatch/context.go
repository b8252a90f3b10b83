package dispatch

import (
	"strings"

	"github.com/somind-ai/somind/pkg/models"
)

// extractLocation tries the location capture patterns against the raw-case
// task text, in priority order. The first capture whose trimmed value is
// not a noise word wins; a noise capture moves on to the next pattern.
// First-match-wins is deliberate: longest-match or most-specific-match
// would change observable results for ambiguous inputs.
func (p *Patterns) extractLocation(task string) string {
	for _, re := range p.location {
		match := re.FindStringSubmatch(task)
		if match == nil {
			continue
		}

		location := strings.TrimSpace(match[1])
		if location == "" {
			continue
		}
		if _, noise := p.noiseWords[strings.ToLower(location)]; noise {
			continue
		}
		return location
	}
	return DefaultLocation
}

// detectComparison reports whether the lower-cased task text contains any
// time-comparison phrase.
func (p *Patterns) detectComparison(lower string) bool {
	for _, re := range p.comparison {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// assessComplexity classifies task effort. The keyword check only promotes
// to high; the medium and low tiers are pure word-count thresholds.
func (p *Patterns) assessComplexity(task, lower string) models.Complexity {
	wordCount := len(strings.Fields(task))

	hasComplexWords := false
	for _, word := range p.complexityWords {
		if strings.Contains(lower, word) {
			hasComplexWords = true
			break
		}
	}

	switch {
	case wordCount > 15 || hasComplexWords:
		return models.ComplexityHigh
	case wordCount > 8:
		return models.ComplexityMedium
	default:
		return models.ComplexityLow
	}
}

// classifyTaskType assigns a single label via priority-ordered keyword
// checks. The branches are mutually exclusive by order, not vocabulary:
// a task matching both environmental and financial keywords classifies as
// environmental because that rule runs first.
func (p *Patterns) classifyTaskType(lower string) models.TaskType {
	for _, rule := range p.taskTypes {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.taskType
			}
		}
	}
	return models.TaskTypeGeneral
}

// extractMetrics scans the lower-cased task text for pollutant metric
// tokens, returned in vocabulary order. When nothing matches, the default
// metric set applies.
func (p *Patterns) extractMetrics(lower string) []string {
	var metrics []string
	for _, ms := range p.metrics {
		for _, re := range ms.patterns {
			if re.MatchString(lower) {
				metrics = append(metrics, ms.name)
				break
			}
		}
	}

	if len(metrics) == 0 {
		return append([]string(nil), p.defaultMetrics...)
	}
	return metrics
}
