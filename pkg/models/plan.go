// Package models defines the shared value types exchanged between the
// dispatcher, the tool layer, and the team workflows.
package models

import "time"

// ToolCategory identifies a class of external capability a task may need.
// The set is open: the dispatcher is driven by pattern tables, so new
// categories can be added through configuration without code changes.
type ToolCategory string

const (
	// ToolEnvironmentalData collects pollution and air/water quality data.
	ToolEnvironmentalData ToolCategory = "environmental_data"
	// ToolWebSearch performs general web search.
	ToolWebSearch ToolCategory = "web_search"
	// ToolMarketData collects financial market data.
	ToolMarketData ToolCategory = "market_data"
	// ToolWeatherData collects weather conditions and forecasts.
	ToolWeatherData ToolCategory = "weather_data"
	// ToolDataAnalysis runs statistical analysis over collected data.
	ToolDataAnalysis ToolCategory = "data_analysis"
)

// Valid returns true if the category is one of the built-in values.
// Unknown categories are still routable; this only identifies the
// categories the stock toolkit ships implementations for.
func (c ToolCategory) Valid() bool {
	switch c {
	case ToolEnvironmentalData, ToolWebSearch, ToolMarketData, ToolWeatherData, ToolDataAnalysis:
		return true
	default:
		return false
	}
}

// Complexity is the dispatcher's effort estimate for a task.
type Complexity string

const (
	// ComplexityLow is a short task with no complexity keywords.
	ComplexityLow Complexity = "low"
	// ComplexityMedium is a mid-length task.
	ComplexityMedium Complexity = "medium"
	// ComplexityHigh is a long task or one containing complexity keywords.
	ComplexityHigh Complexity = "high"
)

// Valid returns true if the complexity is a known value.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexityLow, ComplexityMedium, ComplexityHigh:
		return true
	default:
		return false
	}
}

// Strategy describes how the selected tools should be executed.
type Strategy string

const (
	// StrategySingle executes the lone selected tool.
	StrategySingle Strategy = "single"
	// StrategySequential executes two tools one after another.
	StrategySequential Strategy = "sequential"
	// StrategyParallel executes three or more tools concurrently.
	StrategyParallel Strategy = "parallel"
)

// Valid returns true if the strategy is a known value.
func (s Strategy) Valid() bool {
	switch s {
	case StrategySingle, StrategySequential, StrategyParallel:
		return true
	default:
		return false
	}
}

// TaskType is the single-label classification of a task.
type TaskType string

const (
	TaskTypeEnvironmental TaskType = "environmental"
	TaskTypeFinancial     TaskType = "financial"
	TaskTypeWeather       TaskType = "weather"
	TaskTypeAnalytical    TaskType = "analytical"
	TaskTypeGeneral       TaskType = "general"
)

// Valid returns true if the task type is a known value.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeEnvironmental, TaskTypeFinancial, TaskTypeWeather, TaskTypeAnalytical, TaskTypeGeneral:
		return true
	default:
		return false
	}
}

// ExtractionContext holds the contextual metadata derived from a task
// description during a single analysis. It is recomputed per call and
// never persisted.
type ExtractionContext struct {
	// Location is the extracted geographic location, or "global".
	Location string `json:"location"`
	// HasComparison is true when the task asks for a time-based comparison.
	HasComparison bool `json:"has_comparison"`
	// TaskType is the priority-ordered single-label classification.
	TaskType TaskType `json:"task_type"`
}

// CommonParams are the fields every tool invocation receives.
type CommonParams struct {
	// TaskContext is the original, unmodified task text.
	TaskContext string `json:"task_context"`
	// Location is the extracted location for the task.
	Location string `json:"location"`
	// Timestamp is the analysis capture time, not tool execution time.
	Timestamp time.Time `json:"timestamp"`
}

// ToolParams is the tagged union of per-category parameter payloads.
// Each selected category carries exactly one variant.
type ToolParams interface {
	// Category reports which tool the parameters are for.
	Category() ToolCategory
}

// EnvironmentalParams parameterize the environmental data tool.
type EnvironmentalParams struct {
	CommonParams
	// IncludeComparison requests year-over-year baselines.
	IncludeComparison bool `json:"include_comparison"`
	// Metrics lists the pollutant metrics to collect.
	Metrics []string `json:"metrics"`
	// DataSource labels the upstream source.
	DataSource string `json:"data_source"`
}

// Category implements ToolParams.
func (EnvironmentalParams) Category() ToolCategory { return ToolEnvironmentalData }

// WebSearchParams parameterize the web search tool.
type WebSearchParams struct {
	CommonParams
	// Query is the search query, normally the full task text.
	Query string `json:"query"`
	// DateFilter is "recent" for comparison tasks, "all" otherwise.
	DateFilter string `json:"date_filter"`
	// ResultLimit caps returned results. Zero or negative means no cap;
	// the fallback selection path deliberately leaves it unset.
	ResultLimit int `json:"result_limit,omitempty"`
}

// Category implements ToolParams.
func (WebSearchParams) Category() ToolCategory { return ToolWebSearch }

// AnalysisParams parameterize the data analysis tool.
type AnalysisParams struct {
	CommonParams
	// AnalysisType is "comparative" or "descriptive".
	AnalysisType string `json:"analysis_type"`
	// IncludeVisualization requests chart-ready output.
	IncludeVisualization bool `json:"include_visualization"`
}

// Category implements ToolParams.
func (AnalysisParams) Category() ToolCategory { return ToolDataAnalysis }

// WeatherParams parameterize the weather data tool.
type WeatherParams struct {
	CommonParams
	// IncludeForecast requests forecast data alongside current conditions.
	IncludeForecast bool `json:"include_forecast"`
	// HistoricalData requests historical records for comparisons.
	HistoricalData bool `json:"historical_data"`
}

// Category implements ToolParams.
func (WeatherParams) Category() ToolCategory { return ToolWeatherData }

// GenericParams carry only the common fields, for categories without a
// dedicated parameter schema (market data and configured extensions).
type GenericParams struct {
	CommonParams
	Tool ToolCategory `json:"-"`
}

// Category implements ToolParams.
func (p GenericParams) Category() ToolCategory { return p.Tool }

// AnalysisPlan is the dispatcher's output: which tools apply, how to call
// them, and how to run them. A plan is constructed fresh per analysis and
// must not be mutated after it is returned.
type AnalysisPlan struct {
	// Tools lists the selected categories in pattern-table definition
	// order, deduplicated. Never empty.
	Tools []ToolCategory `json:"tools"`
	// Parameters has exactly one entry per entry in Tools.
	Parameters map[ToolCategory]ToolParams `json:"parameters"`
	// TaskComplexity is the effort estimate.
	TaskComplexity Complexity `json:"task_complexity"`
	// ExecutionStrategy recommends how the tools should be run.
	ExecutionStrategy Strategy `json:"execution_strategy"`
	// ExtractedContext holds the derived task metadata.
	ExtractedContext ExtractionContext `json:"extracted_context"`
}

// Includes returns true if the plan selected the given category.
func (p *AnalysisPlan) Includes(c ToolCategory) bool {
	for _, t := range p.Tools {
		if t == c {
			return true
		}
	}
	return false
}
