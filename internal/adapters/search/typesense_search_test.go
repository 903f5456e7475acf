package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tsclient "github.com/broki/marketplace-api/internal/infrastructure/clients/typesense"
	"github.com/broki/marketplace-api/pkg/config"
)

// fakeTypesense serves /health and the properties search endpoint from a
// fixed number of matching documents.
func fakeTypesense(t *testing.T, found int) (*PropertyIndex, *[]map[string]string) {
	t.Helper()

	var mu sync.Mutex
	var queries []map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("/collections/properties/documents/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		mu.Lock()
		queries = append(queries, map[string]string{
			"page":      q.Get("page"),
			"per_page":  q.Get("per_page"),
			"infix":     q.Get("infix"),
			"num_typos": q.Get("num_typos"),
		})
		mu.Unlock()

		page, _ := strconv.Atoi(q.Get("page"))
		perPage, _ := strconv.Atoi(q.Get("per_page"))
		hits := []map[string]interface{}{}
		for id := (page-1)*perPage + 1; id <= found && id <= page*perPage; id++ {
			hits = append(hits, map[string]interface{}{
				"document": map[string]interface{}{"id": strconv.Itoa(id)},
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"found":          found,
			"out_of":         found,
			"page":           page,
			"search_time_ms": 1,
			"hits":           hits,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := tsclient.NewClient(&config.TypesenseConfig{URL: srv.URL, APIKey: "test"})
	require.NoError(t, err)
	return NewPropertyIndex(client), &queries
}

func TestPropertyIndex_SearchReadsEveryPage(t *testing.T) {
	index, queries := fakeTypesense(t, 260)

	ids, err := index.Search(context.Background(), "ngal")

	require.NoError(t, err)
	require.Len(t, ids, 260)
	assert.Equal(t, int64(1), ids[0])
	assert.Equal(t, int64(260), ids[259])

	require.Len(t, *queries, 2)
	assert.Equal(t, "1", (*queries)[0]["page"])
	assert.Equal(t, "2", (*queries)[1]["page"])
	assert.Equal(t, "250", (*queries)[0]["per_page"])
	assert.Equal(t, "always,always,always", (*queries)[0]["infix"])
	assert.Equal(t, "0", (*queries)[0]["num_typos"])
}

func TestPropertyIndex_SearchExactPageMultiple(t *testing.T) {
	index, queries := fakeTypesense(t, 250)

	ids, err := index.Search(context.Background(), "pune")

	require.NoError(t, err)
	assert.Len(t, ids, 250)
	assert.Len(t, *queries, 1)
}

func TestPropertyIndex_SearchNoHits(t *testing.T) {
	index, _ := fakeTypesense(t, 0)

	ids, err := index.Search(context.Background(), "nothing")

	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
}
