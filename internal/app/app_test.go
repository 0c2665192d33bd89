package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CatalogLens/internal/config"
	"CatalogLens/internal/source"
	"CatalogLens/internal/usecase"
)

func newBackend(t *testing.T) config.Config {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tables/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": [
			{"name": "Klima", "total_products": 100, "embeddings_count": 100, "avg_price": 200, "avg_rating": 4, "embedding_coverage": 100},
			{"name": "Telefon", "total_products": 1, "embeddings_count": 0, "avg_price": 2, "avg_rating": 2, "embedding_coverage": 0}
		]}`))
	})
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": [
			{"id": 1, "name": "LG Klima", "source_table": "klima", "similarity": 0.9, "details": {"brand": "LG"}},
			{"id": 2, "name": "", "source_table": "klima", "similarity": 0.8},
			{"id": 3, "name": "Boş", "source_table": "klima", "similarity": 0.7, "details": {"price": "0", "brand": " "}}
		]}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := config.LoadFrom("")
	cfg.API.BaseURL = server.URL + "/api"
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRejectsUnknownSource(t *testing.T) {
	t.Parallel()

	_, err := New(config.LoadFrom(""), "csv", io.Discard, quietLogger())
	require.ErrorIs(t, err, source.ErrUnknown)
}

func TestOverviewAndSearchThroughAPI(t *testing.T) {
	t.Parallel()

	cfg := newBackend(t)
	application, err := New(cfg, "", io.Discard, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	overview, err := application.Dashboard().Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 101, overview.Metrics.TotalProducts)
	assert.Equal(t, 2, overview.Metrics.TotalTables)
	assert.InDelta(t, 198.04, overview.Metrics.AvgPrice, 0.01)

	result, err := application.Dashboard().Search(context.Background(), usecase.SearchRequest{Query: "klima"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "LG Klima", result.Hits[0].Name)
	assert.Equal(t, 2, result.Dropped)
}

func TestWatchPublishesUntilCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := newBackend(t)
	cfg.Dashboard.RefreshInterval = time.Hour

	var out bytes.Buffer
	application, err := New(cfg, SourceAPI, &out, quietLogger())
	require.NoError(t, err)

	var once sync.Once
	publish := application.publish
	application.publish = func(at time.Time, o usecase.Overview, err error) {
		publish(at, o, err)
		once.Do(cancel)
	}

	require.NoError(t, application.Watch(ctx))
	assert.Contains(t, out.String(), "Klima")
}

func TestCloseWithoutDatabase(t *testing.T) {
	t.Parallel()

	application, err := New(config.LoadFrom(""), SourceDB, io.Discard, quietLogger())
	require.NoError(t, err)
	assert.NoError(t, application.Close())
	assert.NotNil(t, application.Presenter())
}
