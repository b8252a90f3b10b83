package dispatch

import (
	"testing"
	"time"

	"github.com/somind-ai/somind/pkg/models"
)

func testDispatcher() *Dispatcher {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return New(nil, WithClock(func() time.Time { return base }))
}

func TestAnalyze_FallbackToWebSearch(t *testing.T) {
	// Tasks with no recognized pattern degrade to a lone web search.
	tests := []struct {
		name string
		task string
	}{
		{"empty string", ""},
		{"no keywords", "Hello there"},
		{"whitespace only", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := testDispatcher().Analyze(tt.task)

			if len(plan.Tools) != 1 || plan.Tools[0] != models.ToolWebSearch {
				t.Fatalf("Tools = %v, want [web_search]", plan.Tools)
			}
			if plan.ExecutionStrategy != models.StrategySingle {
				t.Errorf("ExecutionStrategy = %v, want single", plan.ExecutionStrategy)
			}

			params, ok := plan.Parameters[models.ToolWebSearch].(models.WebSearchParams)
			if !ok {
				t.Fatalf("Parameters[web_search] = %T, want WebSearchParams", plan.Parameters[models.ToolWebSearch])
			}
			if params.Query != tt.task {
				t.Errorf("Query = %q, want %q", params.Query, tt.task)
			}
			if params.DateFilter != "all" {
				t.Errorf("DateFilter = %q, want all", params.DateFilter)
			}
			// The fallback path leaves the result limit unset.
			if params.ResultLimit != 0 {
				t.Errorf("ResultLimit = %d, want 0", params.ResultLimit)
			}
		})
	}
}

func TestWithResultLimit(t *testing.T) {
	d := New(nil, WithResultLimit(3))

	plan := d.Analyze("Search for renewable energy news")
	params := plan.Parameters[models.ToolWebSearch].(models.WebSearchParams)
	if params.ResultLimit != 3 {
		t.Errorf("ResultLimit = %d, want 3", params.ResultLimit)
	}

	t.Run("non-positive keeps the default", func(t *testing.T) {
		d := New(nil, WithResultLimit(0))

		plan := d.Analyze("Search for renewable energy news")
		params := plan.Parameters[models.ToolWebSearch].(models.WebSearchParams)
		if params.ResultLimit != defaultResultLimit {
			t.Errorf("ResultLimit = %d, want %d", params.ResultLimit, defaultResultLimit)
		}
	})
}

func TestAnalyze_EmptyString(t *testing.T) {
	plan := testDispatcher().Analyze("")

	if plan.TaskComplexity != models.ComplexityLow {
		t.Errorf("TaskComplexity = %v, want low", plan.TaskComplexity)
	}
	if plan.ExtractedContext.Location != DefaultLocation {
		t.Errorf("Location = %q, want %q", plan.ExtractedContext.Location, DefaultLocation)
	}
	if plan.ExtractedContext.TaskType != models.TaskTypeGeneral {
		t.Errorf("TaskType = %v, want general", plan.ExtractedContext.TaskType)
	}
}

func TestAnalyze_CategorySelection(t *testing.T) {
	tests := []struct {
		name     string
		task     string
		want     []models.ToolCategory
		strategy models.Strategy
	}{
		{
			name:     "environmental plus analysis direct match",
			task:     "Analyze pollution trends",
			want:     []models.ToolCategory{models.ToolEnvironmentalData, models.ToolDataAnalysis},
			strategy: models.StrategySequential,
		},
		{
			name:     "search and market with injected analysis",
			task:     "Research stock market performance this quarter",
			want:     []models.ToolCategory{models.ToolWebSearch, models.ToolMarketData, models.ToolDataAnalysis},
			strategy: models.StrategyParallel,
		},
		{
			name:     "weather only",
			task:     "Will it rain tomorrow",
			want:     []models.ToolCategory{models.ToolWeatherData},
			strategy: models.StrategySingle,
		},
		{
			name:     "environmental and search",
			task:     "Latest pollution levels",
			want:     []models.ToolCategory{models.ToolEnvironmentalData, models.ToolWebSearch, models.ToolDataAnalysis},
			strategy: models.StrategyParallel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := testDispatcher().Analyze(tt.task)

			if len(plan.Tools) != len(tt.want) {
				t.Fatalf("Tools = %v, want %v", plan.Tools, tt.want)
			}
			for i, want := range tt.want {
				if plan.Tools[i] != want {
					t.Errorf("Tools[%d] = %v, want %v", i, plan.Tools[i], want)
				}
			}
			if plan.ExecutionStrategy != tt.strategy {
				t.Errorf("ExecutionStrategy = %v, want %v", plan.ExecutionStrategy, tt.strategy)
			}
			if len(plan.Parameters) != len(plan.Tools) {
				t.Errorf("len(Parameters) = %d, want %d", len(plan.Parameters), len(plan.Tools))
			}
		})
	}
}

func TestAnalyze_MultiToolAlwaysIncludesAnalysis(t *testing.T) {
	// Any plan selecting two or more categories carries data_analysis,
	// either via direct match or injection.
	tasks := []string{
		"Latest pollution levels",
		"Research stock market performance this quarter",
		"Compare weather and air quality in Delhi",
	}

	for _, task := range tasks {
		plan := testDispatcher().Analyze(task)
		if len(plan.Tools) < 2 {
			t.Fatalf("Analyze(%q) selected %v, expected multi-tool plan", task, plan.Tools)
		}
		if !plan.Includes(models.ToolDataAnalysis) {
			t.Errorf("Analyze(%q) = %v, missing data_analysis", task, plan.Tools)
		}
	}
}

func TestAnalyze_InjectedAnalysisIsAlwaysComparative(t *testing.T) {
	// The cross-tool injection path fixes analysis_type at "comparative"
	// even when no time comparison was detected. The direct-match path
	// derives it from the comparison flag. Known divergence, kept as-is.
	plan := testDispatcher().Analyze("Latest pollution levels")

	if plan.ExtractedContext.HasComparison {
		t.Fatal("task should not carry a time comparison")
	}

	params, ok := plan.Parameters[models.ToolDataAnalysis].(models.AnalysisParams)
	if !ok {
		t.Fatalf("Parameters[data_analysis] = %T, want AnalysisParams", plan.Parameters[models.ToolDataAnalysis])
	}
	if params.AnalysisType != "comparative" {
		t.Errorf("injected AnalysisType = %q, want comparative", params.AnalysisType)
	}
	if params.IncludeVisualization {
		t.Error("injected params set IncludeVisualization, direct-match path owns that")
	}
}

func TestAnalyze_DirectAnalysisDerivesType(t *testing.T) {
	tests := []struct {
		name string
		task string
		want string
	}{
		{"no comparison", "Evaluate these numbers", "descriptive"},
		{"with comparison", "Evaluate these numbers compared to last year", "comparative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := testDispatcher().Analyze(tt.task)

			params, ok := plan.Parameters[models.ToolDataAnalysis].(models.AnalysisParams)
			if !ok {
				t.Fatalf("Parameters[data_analysis] = %T, want AnalysisParams", plan.Parameters[models.ToolDataAnalysis])
			}
			if params.AnalysisType != tt.want {
				t.Errorf("AnalysisType = %q, want %q", params.AnalysisType, tt.want)
			}
			if !params.IncludeVisualization {
				t.Error("direct-match params should request visualization")
			}
		})
	}
}

func TestAnalyze_TaskType(t *testing.T) {
	tests := []struct {
		name string
		task string
		want models.TaskType
	}{
		{"environmental", "Check pollution levels", models.TaskTypeEnvironmental},
		{"financial", "Research stock market performance this quarter", models.TaskTypeFinancial},
		{"weather", "Temperature forecast for tomorrow", models.TaskTypeWeather},
		{"analytical", "Evaluate the results", models.TaskTypeAnalytical},
		{"general", "Tell me something", models.TaskTypeGeneral},
		// Priority order, not disjoint vocabularies: environmental wins
		// when both environmental and financial keywords appear.
		{"environmental beats financial", "Stock market impact of climate policy", models.TaskTypeEnvironmental},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := testDispatcher().Analyze(tt.task)
			if plan.ExtractedContext.TaskType != tt.want {
				t.Errorf("TaskType = %v, want %v", plan.ExtractedContext.TaskType, tt.want)
			}
		})
	}
}

func TestAnalyze_Complexity(t *testing.T) {
	tests := []struct {
		name string
		task string
		want models.Complexity
	}{
		{"short and plain", "Check the weather", models.ComplexityLow},
		{"empty", "", models.ComplexityLow},
		{"mid length", "Give me the weather report for the next three days please", models.ComplexityMedium},
		{"keyword promotes short task", "Compare and analyze pollution trends across multiple cities in detail", models.ComplexityHigh},
		{"long task without keywords", "Please tell me about the weather outlook for the city of Delhi over the coming seven days and nights", models.ComplexityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := testDispatcher().Analyze(tt.task)
			if plan.TaskComplexity != tt.want {
				t.Errorf("TaskComplexity(%q) = %v, want %v", tt.task, plan.TaskComplexity, tt.want)
			}
		})
	}
}

func TestAnalyze_SelectionFieldsAreDeterministic(t *testing.T) {
	// Repeated analysis of the same text must agree on everything except
	// the embedded timestamps.
	task := "Compare air quality in Delhi vs Mumbai for 2024"

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	d := New(nil, WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))

	first := d.Analyze(task)
	second := d.Analyze(task)

	if len(first.Tools) != len(second.Tools) {
		t.Fatalf("tool counts differ: %v vs %v", first.Tools, second.Tools)
	}
	for i := range first.Tools {
		if first.Tools[i] != second.Tools[i] {
			t.Errorf("Tools[%d] differ: %v vs %v", i, first.Tools[i], second.Tools[i])
		}
	}
	if first.TaskComplexity != second.TaskComplexity {
		t.Errorf("complexity differs: %v vs %v", first.TaskComplexity, second.TaskComplexity)
	}
	if first.ExecutionStrategy != second.ExecutionStrategy {
		t.Errorf("strategy differs: %v vs %v", first.ExecutionStrategy, second.ExecutionStrategy)
	}
	if first.ExtractedContext != second.ExtractedContext {
		t.Errorf("context differs: %+v vs %+v", first.ExtractedContext, second.ExtractedContext)
	}
}

func TestExecutionOrder(t *testing.T) {
	d := testDispatcher()

	tests := []struct {
		name  string
		tools []models.ToolCategory
		want  []models.ToolCategory
	}{
		{
			name:  "reorders by priority",
			tools: []models.ToolCategory{models.ToolDataAnalysis, models.ToolWebSearch, models.ToolEnvironmentalData},
			want:  []models.ToolCategory{models.ToolEnvironmentalData, models.ToolWebSearch, models.ToolDataAnalysis},
		},
		{
			name:  "weather before market",
			tools: []models.ToolCategory{models.ToolMarketData, models.ToolWeatherData},
			want:  []models.ToolCategory{models.ToolWeatherData, models.ToolMarketData},
		},
		{
			name:  "unlisted categories keep relative order at the end",
			tools: []models.ToolCategory{models.ToolCategory("satellite"), models.ToolDataAnalysis, models.ToolCategory("archive")},
			want:  []models.ToolCategory{models.ToolDataAnalysis, models.ToolCategory("satellite"), models.ToolCategory("archive")},
		},
		{
			name:  "empty input",
			tools: nil,
			want:  []models.ToolCategory{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.ExecutionOrder(tt.tools)
			if len(got) != len(tt.want) {
				t.Fatalf("ExecutionOrder() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ExecutionOrder()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAnalyze_Timestamps(t *testing.T) {
	at := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	d := New(nil, WithClock(func() time.Time { return at }))

	plan := d.Analyze("Check pollution levels")

	params, ok := plan.Parameters[models.ToolEnvironmentalData].(models.EnvironmentalParams)
	if !ok {
		t.Fatalf("Parameters[environmental_data] = %T, want EnvironmentalParams", plan.Parameters[models.ToolEnvironmentalData])
	}
	if !params.Timestamp.Equal(at) {
		t.Errorf("Timestamp = %v, want %v", params.Timestamp, at)
	}
	if params.TaskContext != "Check pollution levels" {
		t.Errorf("TaskContext = %q, want original task text", params.TaskContext)
	}
}

func TestAnalyze_MarketDataGetsGenericParams(t *testing.T) {
	plan := testDispatcher().Analyze("Track stock trading volumes and weather impact on sales")

	if !plan.Includes(models.ToolMarketData) {
		t.Fatalf("Tools = %v, want market_data included", plan.Tools)
	}

	params, ok := plan.Parameters[models.ToolMarketData].(models.GenericParams)
	if !ok {
		t.Fatalf("Parameters[market_data] = %T, want GenericParams", plan.Parameters[models.ToolMarketData])
	}
	if params.Category() != models.ToolMarketData {
		t.Errorf("Category() = %v, want market_data", params.Category())
	}
}

func TestAnalyze_ConcurrentUse(t *testing.T) {
	// One dispatcher, many goroutines: the pattern tables are read-only.
	d := testDispatcher()
	done := make(chan *models.AnalysisPlan, 16)

	for i := 0; i < 16; i++ {
		go func() {
			done <- d.Analyze("Compare air quality in Delhi vs Mumbai")
		}()
	}

	for i := 0; i < 16; i++ {
		plan := <-done
		if !plan.Includes(models.ToolEnvironmentalData) {
			t.Errorf("concurrent Analyze missed environmental_data: %v", plan.Tools)
		}
	}
}
