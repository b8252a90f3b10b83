package toolkit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/somind-ai/somind/pkg/models"
)

// SearchHit is one canned search result.
type SearchHit struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Source    string  `json:"source"`
	Relevance float64 `json:"relevance"`
}

// SearchResults is the web search tool's payload.
type SearchResults struct {
	Query        string      `json:"query"`
	DateFilter   string      `json:"date_filter"`
	Timestamp    time.Time   `json:"timestamp"`
	Results      []SearchHit `json:"results"`
	TotalResults int         `json:"total_results"`
}

// WebSearchTool serves canned search results.
type WebSearchTool struct {
	now func() time.Time
}

// NewWebSearchTool creates the web search tool.
func NewWebSearchTool() *WebSearchTool {
	return &WebSearchTool{now: time.Now}
}

// Name implements Tool.
func (t *WebSearchTool) Name() models.ToolCategory {
	return models.ToolWebSearch
}

// Execute implements Tool.
func (t *WebSearchTool) Execute(_ context.Context, inv Invocation) (*Result, error) {
	params, ok := inv.Params.(models.WebSearchParams)
	if !ok {
		return nil, fmt.Errorf("%w: web_search got %T", ErrBadParams, inv.Params)
	}

	hits := cannedHits(params.Query)
	if params.ResultLimit > 0 && len(hits) > params.ResultLimit {
		hits = hits[:params.ResultLimit]
	}

	payload := &SearchResults{
		Query:        params.Query,
		DateFilter:   params.DateFilter,
		Timestamp:    t.now(),
		Results:      hits,
		TotalResults: len(hits),
	}

	return successResult(t.Name(), payload), nil
}

func cannedHits(query string) []SearchHit {
	if strings.Contains(strings.ToLower(query), "india") {
		return []SearchHit{
			{
				Title:     "India - Country Overview",
				Content:   "India is a South Asian country known for its rich cultural heritage, diverse population of over 1.4 billion people, and rapidly growing economy. It is the world's largest democracy.",
				Source:    "Encyclopedia",
				Relevance: 1.0,
			},
			{
				Title:     "Indian Economy and Development",
				Content:   "India has one of the fastest-growing major economies globally, with significant developments in technology, manufacturing, and services sectors.",
				Source:    "Economic Data",
				Relevance: 0.9,
			},
			{
				Title:     "Cultural Diversity of India",
				Content:   "India is known for its incredible cultural diversity, with hundreds of languages, multiple religions, and varied traditions across different regions.",
				Source:    "Cultural Studies",
				Relevance: 0.8,
			},
		}
	}

	return []SearchHit{
		{
			Title:     fmt.Sprintf("Search Results for %s", query),
			Content:   fmt.Sprintf("Comprehensive information about %s from multiple sources.", query),
			Source:    "Search Engine",
			Relevance: 0.85,
		},
	}
}
