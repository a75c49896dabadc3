package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadousow/clipsentry/internal/config"
	"github.com/mamadousow/clipsentry/pkg/logger"
)

func newSearchLogger(t *testing.T) logger.Logger {
	t.Helper()
	l := logger.NewApiLogger(&config.Config{
		Server: config.ServerConfig{Mode: "Development"},
		Logger: config.Logger{Level: "error", Encoding: "console"},
	})
	l.InitLogger()
	return l
}

const searchFixture = `{"items":[
	{"id":"abc","title":"Prix du carburant","channel":"ActuTV","duration":60,"url":"https://example/video/abc","view_count":5000},
	{"id":"tiny","title":"Clip","channel":"ActuTV","duration":3,"url":"https://example/video/tiny","view_count":5000}
]}`

func TestSearchAppliesPolicyAndQuery(t *testing.T) {
	var gotQuery, gotLimit, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotLimit = r.URL.Query().Get("limit")
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, searchFixture)
	}))
	defer srv.Close()

	client := NewHTTPSearchClient(config.SearchConfig{
		Endpoint:       srv.URL,
		APIKey:         "search-key",
		MaxResults:     25,
		MinDurationSec: 10,
	}, newSearchLogger(t))

	results, err := client.Search(context.Background(), "carburant dakar", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "abc", results[0].ID)
	assert.Equal(t, int64(5000), results[0].ViewCount)

	assert.Equal(t, "carburant dakar", gotQuery)
	assert.Equal(t, "5", gotLimit)
	assert.Equal(t, "Bearer search-key", gotAuth)
}

func TestSearchClampsLimit(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		io.WriteString(w, `{"items":[]}`)
	}))
	defer srv.Close()

	client := NewHTTPSearchClient(config.SearchConfig{Endpoint: srv.URL, MaxResults: 25}, newSearchLogger(t))

	_, err := client.Search(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Equal(t, "25", gotLimit)

	_, err = client.Search(context.Background(), "q", 1000)
	require.NoError(t, err)
	assert.Equal(t, "25", gotLimit)
}

func TestSearchServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPSearchClient(config.SearchConfig{Endpoint: srv.URL, MaxResults: 25}, newSearchLogger(t))

	_, err := client.Search(context.Background(), "q", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSearchInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	}))
	defer srv.Close()

	client := NewHTTPSearchClient(config.SearchConfig{Endpoint: srv.URL, MaxResults: 25}, newSearchLogger(t))

	_, err := client.Search(context.Background(), "q", 5)
	assert.Error(t, err)
}
