package search

import (
	"github.com/mamadousow/clipsentry/internal/config"
	"github.com/mamadousow/clipsentry/internal/models"
)

// FilterPolicy narrows search results to items worth running through the
// pipeline. Zero values disable the corresponding check.
type FilterPolicy struct {
	MinDurationSec int
	MaxDurationSec int
	MinViews       int64
}

func PolicyFromConfig(cfg config.SearchConfig) FilterPolicy {
	return FilterPolicy{
		MinDurationSec: cfg.MinDurationSec,
		MaxDurationSec: cfg.MaxDurationSec,
		MinViews:       int64(cfg.MinViews),
	}
}

func (p FilterPolicy) Apply(items []models.SearchResult) []models.SearchResult {
	filtered := make([]models.SearchResult, 0, len(items))
	for _, item := range items {
		if p.MinDurationSec > 0 && item.Duration < p.MinDurationSec {
			continue
		}
		if p.MaxDurationSec > 0 && item.Duration > p.MaxDurationSec {
			continue
		}
		if p.MinViews > 0 && item.ViewCount < p.MinViews {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}
