package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadousow/clipsentry/internal/config"
	"github.com/mamadousow/clipsentry/internal/models"
)

func result(id string, duration int, views int64) models.SearchResult {
	return models.SearchResult{
		ID:        id,
		Title:     "Title " + id,
		Channel:   "Channel",
		Duration:  duration,
		URL:       "https://example/video/" + id,
		ViewCount: views,
	}
}

func ids(items []models.SearchResult) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestFilterPolicyApply(t *testing.T) {
	items := []models.SearchResult{
		result("short", 5, 10000),
		result("long", 600, 10000),
		result("unpopular", 60, 50),
		result("keeper", 60, 10000),
		result("edge-min", 10, 10000),
		result("edge-max", 180, 10000),
	}

	policy := FilterPolicy{MinDurationSec: 10, MaxDurationSec: 180, MinViews: 100}
	filtered := policy.Apply(items)

	assert.Equal(t, []string{"keeper", "edge-min", "edge-max"}, ids(filtered))
}

func TestFilterPolicyZeroValuesDisableChecks(t *testing.T) {
	items := []models.SearchResult{
		result("a", 1, 0),
		result("b", 100000, 1),
	}

	filtered := FilterPolicy{}.Apply(items)
	require.Len(t, filtered, 2)
}

func TestFilterPolicyEmptyInput(t *testing.T) {
	filtered := FilterPolicy{MinViews: 100}.Apply(nil)
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestPolicyFromConfig(t *testing.T) {
	policy := PolicyFromConfig(config.SearchConfig{
		MinDurationSec: 15,
		MaxDurationSec: 300,
		MinViews:       500,
	})

	assert.Equal(t, 15, policy.MinDurationSec)
	assert.Equal(t, 300, policy.MaxDurationSec)
	assert.Equal(t, int64(500), policy.MinViews)
}
