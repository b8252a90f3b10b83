// Package dispatch implements the dynamic tool dispatcher: it classifies
// free-text task descriptions, extracts structured context, selects tool
// categories, and recommends an execution strategy.
package dispatch

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/somind-ai/somind/pkg/models"
)

// categorySet binds a tool category to its selection patterns.
type categorySet struct {
	category models.ToolCategory
	patterns []*regexp.Regexp
}

func (cs categorySet) matches(lower string) bool {
	for _, re := range cs.patterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// metricSet binds a pollutant metric token to its match patterns.
type metricSet struct {
	name     string
	patterns []*regexp.Regexp
}

// taskTypeRule binds a task type label to its trigger keywords.
type taskTypeRule struct {
	taskType models.TaskType
	keywords []string
}

// Patterns is the dispatcher's read-only configuration: selection tables,
// extraction patterns, and priority orders. A Patterns value is compiled
// once at startup and never mutated afterwards, so concurrent reads need
// no synchronization.
type Patterns struct {
	categories      []categorySet
	location        []*regexp.Regexp
	comparison      []*regexp.Regexp
	metrics         []metricSet
	defaultMetrics  []string
	complexityWords []string
	taskTypes       []taskTypeRule
	priority        []models.ToolCategory
	noiseWords      map[string]struct{}
}

// locationName matches a capitalized place name ("Delhi", "New Delhi").
// Captures are taken from the raw-case text: requiring capitalization is
// what keeps filler phrases like "the data" from extracting as locations.
const locationName = `([A-Z][A-Za-z]*(?:\s+[A-Z][A-Za-z]*)*)`

// DefaultPatterns returns the built-in pattern tables. The tables are
// compiled with MustCompile: a malformed built-in pattern is a programming
// defect and should fail at startup, not per call.
func DefaultPatterns() *Patterns {
	return &Patterns{
		// Category iteration order is significant: it fixes the insertion
		// order of the plan's tool list.
		categories: []categorySet{
			{models.ToolEnvironmentalData, compileAll(
				`pollution`, `environment`, `air quality`, `water quality`,
				`pm2\.5`, `pm10`, `carbon`, `emissions`, `climate`, `contamination`,
			)},
			{models.ToolWebSearch, compileAll(
				`news`, `current`, `latest`, `recent`, `today`, `search`,
				`research`, `study`, `report`, `analysis`, `information`,
			)},
			{models.ToolMarketData, compileAll(
				`stock`, `market`, `price`, `finance`, `economy`,
				`business`, `revenue`, `profit`, `sales`, `trading`,
			)},
			{models.ToolWeatherData, compileAll(
				`weather`, `temperature`, `rain`, `storm`, `forecast`,
				`humidity`, `wind`, `precipitation`,
			)},
			{models.ToolDataAnalysis, compileAll(
				`analyze`, `analysis`, `compare`, `comparison`, `evaluate`,
				`assess`, `calculate`, `measure`, `statistics`,
			)},
		},
		// Location capture patterns, in priority order. First non-noise
		// capture wins; this is deliberately not longest-match.
		location: compileAll(
			`(?i:\bin)\s+`+locationName,
			`(?i:\bfor)\s+`+locationName,
			`(?i:\bfrom)\s+`+locationName,
			locationName+`\s+(?i:pollution)`,
			locationName+`\s+(?i:environment)`,
			locationName+`\s+(?i:data)`,
		),
		comparison: compileAll(
			`last year`, `previous year`, `\b202[3-5]\b`,
			`compared to`, `vs`, `versus`, `difference`, `change from`,
		),
		metrics: []metricSet{
			{"pm2.5", compileAll(`pm2\.5`, `pm 2\.5`, `particulate matter 2\.5`)},
			{"pm10", compileAll(`pm10`, `pm 10`, `particulate matter 10`)},
			{"no2", compileAll(`no2`, `nitrogen dioxide`)},
			{"so2", compileAll(`so2`, `sulfur dioxide`, `sulphur dioxide`)},
			// "co" is boundary-matched so it does not trigger inside words
			// like "economy" or "comparison".
			{"co", compileAll(`\bco\b`, `carbon monoxide`)},
			{"o3", compileAll(`o3`, `ozone`)},
			{"aqi", compileAll(`aqi`, `air quality index`)},
		},
		defaultMetrics:  []string{"pm2.5", "pm10", "no2"},
		complexityWords: []string{"compare", "analyze", "evaluate", "assessment", "comprehensive", "detailed"},
		taskTypes: []taskTypeRule{
			{models.TaskTypeEnvironmental, []string{"pollution", "environment", "climate"}},
			{models.TaskTypeFinancial, []string{"market", "stock", "finance"}},
			{models.TaskTypeWeather, []string{"weather", "temperature", "forecast"}},
			{models.TaskTypeAnalytical, []string{"analyze", "compare", "evaluate"}},
		},
		priority: []models.ToolCategory{
			models.ToolEnvironmentalData,
			models.ToolWebSearch,
			models.ToolWeatherData,
			models.ToolMarketData,
			models.ToolDataAnalysis,
		},
		noiseWords: map[string]struct{}{
			"data":        {},
			"information": {},
			"analysis":    {},
			"report":      {},
			"study":       {},
		},
	}
}

func compileAll(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		res = append(res, regexp.MustCompile(expr))
	}
	return res
}

// Overlay extends the built-in tables with user-configured categories and
// patterns, loaded from YAML.
type Overlay struct {
	// Categories lists pattern additions. A known category gains extra
	// patterns; an unknown category is appended after the built-ins.
	Categories []CategoryOverlay `yaml:"categories"`
}

// CategoryOverlay adds selection patterns for one tool category.
type CategoryOverlay struct {
	Category string   `yaml:"category"`
	Patterns []string `yaml:"patterns"`
}

// LoadOverlay reads a pattern overlay from a YAML file.
func LoadOverlay(path string) (*Overlay, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern overlay: %w", err)
	}

	overlay := &Overlay{}
	if err := yaml.Unmarshal(raw, overlay); err != nil {
		return nil, fmt.Errorf("parse pattern overlay %s: %w", path, err)
	}
	return overlay, nil
}

// WithOverlay returns a new Patterns value with the overlay applied.
// The receiver is not modified. A malformed pattern in the overlay is a
// configuration defect and fails here, before any task is analyzed.
func (p *Patterns) WithOverlay(overlay *Overlay) (*Patterns, error) {
	if overlay == nil {
		return p, nil
	}

	next := *p
	next.categories = append([]categorySet(nil), p.categories...)

	for _, co := range overlay.Categories {
		if co.Category == "" {
			return nil, fmt.Errorf("pattern overlay: empty category name")
		}

		compiled := make([]*regexp.Regexp, 0, len(co.Patterns))
		for _, expr := range co.Patterns {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("pattern overlay: category %s: %w", co.Category, err)
			}
			compiled = append(compiled, re)
		}

		category := models.ToolCategory(co.Category)
		merged := false
		for i := range next.categories {
			if next.categories[i].category == category {
				patterns := append([]*regexp.Regexp(nil), next.categories[i].patterns...)
				next.categories[i].patterns = append(patterns, compiled...)
				merged = true
				break
			}
		}
		if !merged {
			next.categories = append(next.categories, categorySet{category: category, patterns: compiled})
		}
	}

	return &next, nil
}

// Categories returns the configured category order. Useful for callers
// that present the selectable universe.
func (p *Patterns) Categories() []models.ToolCategory {
	out := make([]models.ToolCategory, 0, len(p.categories))
	for _, cs := range p.categories {
		out = append(out, cs.category)
	}
	return out
}
