// Package toolkit provides the canned data tools the dispatcher routes to,
// a registry keyed by tool category, and an executor that runs an analysis
// plan under its recommended strategy. The tools return realistic but
// fabricated payloads; no network access is required.
package toolkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/somind-ai/somind/pkg/models"
)

// ErrUnknownTool is returned when a plan selects a category the registry
// has no implementation for.
var ErrUnknownTool = errors.New("unknown tool category")

// ErrBadParams is returned when a tool receives a parameter variant for a
// different category.
var ErrBadParams = errors.New("parameter variant does not match tool")

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the envelope for one tool invocation.
type Result struct {
	// Tool is the category that produced this result.
	Tool models.ToolCategory `json:"tool_name"`
	// Status is "success" or "error".
	Status string `json:"status"`
	// Payload is the tool's structured output when Status is success.
	Payload any `json:"response_data,omitempty"`
	// Error carries the stringified failure when Status is error.
	Error string `json:"error,omitempty"`
	// Timestamp is when the invocation finished.
	Timestamp time.Time `json:"timestamp"`
}

// JSON renders the payload as indented JSON for report composition.
func (r *Result) JSON() string {
	if r.Payload == nil {
		return ""
	}
	raw, err := json.MarshalIndent(r.Payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("{%q: %q}", "error", err.Error())
	}
	return string(raw)
}

// Invocation carries everything a tool needs for one call: its parameter
// variant and the results of tools that already ran in this plan. Prior
// results let the analysis tool consume collected data without re-running
// collection.
type Invocation struct {
	Params models.ToolParams
	Prior  []*Result
}

// Tool is one external capability.
type Tool interface {
	// Name reports the category this tool serves.
	Name() models.ToolCategory
	// Execute runs the tool. Implementations return an error only for
	// programming mistakes (wrong parameter variant); data-level
	// problems are reported inside the payload.
	Execute(ctx context.Context, inv Invocation) (*Result, error)
}

// Registry resolves tool categories to implementations.
type Registry struct {
	tools map[models.ToolCategory]Tool
}

// NewRegistry builds a registry from the given tools. Later entries for
// the same category replace earlier ones.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[models.ToolCategory]Tool, len(tools))}
	for _, tool := range tools {
		r.tools[tool.Name()] = tool
	}
	return r
}

// DefaultRegistry returns a registry with the full stock toolkit.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewEnvironmentalTool(),
		NewWebSearchTool(),
		NewMarketTool(),
		NewWeatherTool(),
		NewAnalysisTool(),
	)
}

// Get returns the tool for a category.
func (r *Registry) Get(category models.ToolCategory) (Tool, error) {
	tool, ok := r.tools[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, category)
	}
	return tool, nil
}

// Has reports whether a category is registered.
func (r *Registry) Has(category models.ToolCategory) bool {
	_, ok := r.tools[category]
	return ok
}

func successResult(tool models.ToolCategory, payload any) *Result {
	return &Result{
		Tool:      tool,
		Status:    StatusSuccess,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

func errorResult(tool models.ToolCategory, err error) *Result {
	return &Result{
		Tool:      tool,
		Status:    StatusError,
		Error:     err.Error(),
		Timestamp: time.Now(),
	}
}
