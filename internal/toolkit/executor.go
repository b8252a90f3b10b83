package toolkit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/somind-ai/somind/pkg/models"
)

// Sequencer orders a plan's tools for sequential execution. The
// dispatcher satisfies this with its priority table.
type Sequencer interface {
	ExecutionOrder(tools []models.ToolCategory) []models.ToolCategory
}

// Executor runs an analysis plan against a registry, honoring the plan's
// recommended strategy.
type Executor struct {
	registry    *Registry
	sequencer   Sequencer
	toolTimeout time.Duration
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithToolTimeout bounds each individual tool invocation. Zero or
// negative means no bound beyond the caller's context.
func WithToolTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) {
		if timeout > 0 {
			e.toolTimeout = timeout
		}
	}
}

// NewExecutor creates an executor. A nil registry gets the stock toolkit.
func NewExecutor(registry *Registry, sequencer Sequencer, opts ...ExecutorOption) *Executor {
	if registry == nil {
		registry = DefaultRegistry()
	}
	e := &Executor{registry: registry, sequencer: sequencer}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes every tool in the plan and returns one result per tool,
// in execution order. A tool failure produces an error-status result and
// does not stop the rest of the plan; Run itself fails only on a
// cancelled context or a plan referencing no runnable tools.
func (e *Executor) Run(ctx context.Context, plan *models.AnalysisPlan) ([]*Result, error) {
	if plan == nil || len(plan.Tools) == 0 {
		return nil, fmt.Errorf("empty plan")
	}

	ordered := plan.Tools
	if e.sequencer != nil {
		ordered = e.sequencer.ExecutionOrder(plan.Tools)
	}

	if plan.ExecutionStrategy == models.StrategyParallel {
		return e.runParallel(ctx, plan, ordered)
	}
	return e.runSequential(ctx, plan, ordered)
}

// runSequential covers the single and sequential strategies. Each tool
// sees the results of everything that ran before it.
func (e *Executor) runSequential(ctx context.Context, plan *models.AnalysisPlan, ordered []models.ToolCategory) ([]*Result, error) {
	results := make([]*Result, 0, len(ordered))
	for _, category := range ordered {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, e.invoke(ctx, plan, category, results))
	}
	return results, nil
}

// runParallel fans out data collection concurrently, then runs the
// analysis tool last so it can consume the collected results.
func (e *Executor) runParallel(ctx context.Context, plan *models.AnalysisPlan, ordered []models.ToolCategory) ([]*Result, error) {
	collectors := make([]models.ToolCategory, 0, len(ordered))
	runAnalysis := false
	for _, category := range ordered {
		if category == models.ToolDataAnalysis {
			runAnalysis = true
			continue
		}
		collectors = append(collectors, category)
	}

	collected := make([]*Result, len(collectors))
	var wg sync.WaitGroup
	for i, category := range collectors {
		wg.Add(1)
		go func(i int, category models.ToolCategory) {
			defer wg.Done()
			collected[i] = e.invoke(ctx, plan, category, nil)
		}(i, category)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return collected, err
	}

	results := collected
	if runAnalysis {
		results = append(results, e.invoke(ctx, plan, models.ToolDataAnalysis, collected))
	}
	return results, nil
}

func (e *Executor) invoke(ctx context.Context, plan *models.AnalysisPlan, category models.ToolCategory, prior []*Result) *Result {
	tool, err := e.registry.Get(category)
	if err != nil {
		return errorResult(category, err)
	}

	params, ok := plan.Parameters[category]
	if !ok {
		return errorResult(category, fmt.Errorf("%w: no parameters for %s", ErrBadParams, category))
	}

	if e.toolTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.toolTimeout)
		defer cancel()
	}

	result, err := tool.Execute(ctx, Invocation{Params: params, Prior: prior})
	if err != nil {
		return errorResult(category, err)
	}
	return result
}
