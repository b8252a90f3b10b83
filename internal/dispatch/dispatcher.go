package dispatch

import (
	"strings"
	"time"

	"github.com/somind-ai/somind/pkg/models"
)

// DefaultLocation is used when no location can be extracted from a task.
const DefaultLocation = "global"

const (
	dateFilterRecent = "recent"
	dateFilterAll    = "all"

	analysisComparative = "comparative"
	analysisDescriptive = "descriptive"

	environmentalDataSource = "real_time_monitoring"

	defaultResultLimit = 10
)

// Dispatcher analyzes task descriptions and produces execution plans.
// It is stateless per call: the pattern tables are read-only, so a single
// Dispatcher is safe for concurrent use without synchronization.
type Dispatcher struct {
	patterns    *Patterns
	now         func() time.Time
	resultLimit int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock overrides the timestamp source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// WithResultLimit overrides the search result cap applied to
// keyword-matched web search parameters. Zero or negative keeps the
// default. The fallback selection path is unaffected.
func WithResultLimit(limit int) Option {
	return func(d *Dispatcher) {
		if limit > 0 {
			d.resultLimit = limit
		}
	}
}

// New creates a Dispatcher. A nil patterns value uses the built-in tables.
func New(patterns *Patterns, opts ...Option) *Dispatcher {
	if patterns == nil {
		patterns = DefaultPatterns()
	}

	d := &Dispatcher{
		patterns:    patterns,
		now:         time.Now,
		resultLimit: defaultResultLimit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Analyze inspects a task description and returns the plan: selected tool
// categories with per-tool parameters, a complexity tier, an execution
// strategy, and the extracted context. Any string is accepted, including
// empty; no recognized pattern degrades to the web_search fallback rather
// than an error. Apart from the embedded timestamps, identical input
// always yields an identical plan.
func (d *Dispatcher) Analyze(task string) *models.AnalysisPlan {
	lower := strings.ToLower(task)

	location := d.patterns.extractLocation(task)
	hasComparison := d.patterns.detectComparison(lower)

	common := models.CommonParams{
		TaskContext: task,
		Location:    location,
		Timestamp:   d.now(),
	}

	var tools []models.ToolCategory
	params := make(map[models.ToolCategory]models.ToolParams)

	// Categories are tested in definition order; that order is the
	// insertion order of the resulting tool list.
	for _, cs := range d.patterns.categories {
		if !cs.matches(lower) {
			continue
		}
		tools = append(tools, cs.category)
		params[cs.category] = d.buildParams(cs.category, task, lower, common, hasComparison)
	}

	// No match is not an error: fall back to a lone web search. The
	// fallback deliberately leaves the result limit unset.
	if len(tools) == 0 {
		tools = append(tools, models.ToolWebSearch)
		params[models.ToolWebSearch] = models.WebSearchParams{
			CommonParams: common,
			Query:        task,
			DateFilter:   dateFilter(hasComparison),
		}
	}

	// Multiple data sources get a cross-tool analysis step. This path
	// fixes analysis_type at "comparative" regardless of the comparison
	// flag, unlike the direct-match branch in buildParams. The two paths
	// intentionally stay distinct.
	if len(tools) > 1 && params[models.ToolDataAnalysis] == nil {
		tools = append(tools, models.ToolDataAnalysis)
		params[models.ToolDataAnalysis] = models.AnalysisParams{
			CommonParams: common,
			AnalysisType: analysisComparative,
		}
	}

	return &models.AnalysisPlan{
		Tools:             tools,
		Parameters:        params,
		TaskComplexity:    d.patterns.assessComplexity(task, lower),
		ExecutionStrategy: strategyFor(len(tools)),
		ExtractedContext: models.ExtractionContext{
			Location:      location,
			HasComparison: hasComparison,
			TaskType:      d.patterns.classifyTaskType(lower),
		},
	}
}

// buildParams synthesizes the parameter variant for one selected category.
func (d *Dispatcher) buildParams(category models.ToolCategory, task, lower string, common models.CommonParams, hasComparison bool) models.ToolParams {
	switch category {
	case models.ToolEnvironmentalData:
		return models.EnvironmentalParams{
			CommonParams:      common,
			IncludeComparison: hasComparison,
			Metrics:           d.patterns.extractMetrics(lower),
			DataSource:        environmentalDataSource,
		}
	case models.ToolWebSearch:
		return models.WebSearchParams{
			CommonParams: common,
			Query:        task,
			DateFilter:   dateFilter(hasComparison),
			ResultLimit:  d.resultLimit,
		}
	case models.ToolDataAnalysis:
		analysisType := analysisDescriptive
		if hasComparison {
			analysisType = analysisComparative
		}
		return models.AnalysisParams{
			CommonParams:         common,
			AnalysisType:         analysisType,
			IncludeVisualization: true,
		}
	case models.ToolWeatherData:
		return models.WeatherParams{
			CommonParams:    common,
			IncludeForecast: true,
			HistoricalData:  hasComparison,
		}
	default:
		return models.GenericParams{CommonParams: common, Tool: category}
	}
}

// ExecutionOrder reorders an arbitrary category set into the canonical
// execution sequence: the fixed priority list first, then any remaining
// categories in their original relative order.
func (d *Dispatcher) ExecutionOrder(tools []models.ToolCategory) []models.ToolCategory {
	ordered := make([]models.ToolCategory, 0, len(tools))

	for _, priority := range d.patterns.priority {
		for _, tool := range tools {
			if tool == priority {
				ordered = append(ordered, tool)
				break
			}
		}
	}

	for _, tool := range tools {
		if !containsCategory(ordered, tool) {
			ordered = append(ordered, tool)
		}
	}

	return ordered
}

func strategyFor(toolCount int) models.Strategy {
	switch {
	case toolCount > 2:
		return models.StrategyParallel
	case toolCount == 2:
		return models.StrategySequential
	default:
		return models.StrategySingle
	}
}

func dateFilter(hasComparison bool) string {
	if hasComparison {
		return dateFilterRecent
	}
	return dateFilterAll
}

func containsCategory(tools []models.ToolCategory, want models.ToolCategory) bool {
	for _, tool := range tools {
		if tool == want {
			return true
		}
	}
	return false
}
