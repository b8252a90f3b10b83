package toolkit

import (
	"context"
	"fmt"
	"time"

	"github.com/somind-ai/somind/pkg/models"
)

// IndexQuote is one canned market index snapshot.
type IndexQuote struct {
	Value         float64 `json:"value"`
	ChangePercent float64 `json:"change_percent"`
	Trend         string  `json:"trend"`
}

// MarketSnapshot is the market data tool's payload.
type MarketSnapshot struct {
	Region    string                `json:"region"`
	Timestamp time.Time             `json:"timestamp"`
	Indices   map[string]IndexQuote `json:"indices"`
	Sectors   map[string]string     `json:"sectors"`
	Summary   string                `json:"summary"`
}

// MarketTool serves canned financial market data.
type MarketTool struct {
	now func() time.Time
}

// NewMarketTool creates the market data tool.
func NewMarketTool() *MarketTool {
	return &MarketTool{now: time.Now}
}

// Name implements Tool.
func (t *MarketTool) Name() models.ToolCategory {
	return models.ToolMarketData
}

// Execute implements Tool.
func (t *MarketTool) Execute(_ context.Context, inv Invocation) (*Result, error) {
	params, ok := inv.Params.(models.GenericParams)
	if !ok || params.Tool != models.ToolMarketData {
		return nil, fmt.Errorf("%w: market_data got %T", ErrBadParams, inv.Params)
	}

	region := params.Location
	if region == "" {
		region = "global"
	}

	snapshot := &MarketSnapshot{
		Region:    region,
		Timestamp: t.now(),
		Indices: map[string]IndexQuote{
			"composite":  {Value: 4821.6, ChangePercent: 0.8, Trend: "Up"},
			"technology": {Value: 15204.3, ChangePercent: 1.4, Trend: "Up"},
			"energy":     {Value: 2987.1, ChangePercent: -0.6, Trend: "Down"},
		},
		Sectors: map[string]string{
			"technology": "outperforming",
			"energy":     "lagging",
			"financials": "stable",
		},
		Summary: "Markets broadly positive with technology leading",
	}

	return successResult(t.Name(), snapshot), nil
}
