package taxonomy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeUnipept serves a canned taxonomy.json response and counts the
// number of distinct batches it received, so tests can assert on
// batching and caching behavior without a real Unipept instance.
func fakeUnipept(t *testing.T, lineages map[int]map[string]int) (*httptest.Server, *int) {
	t.Helper()
	batches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		batches++
		var req taxonomyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		rows := make([]map[string]interface{}, 0, len(req.Input))
		for _, id := range req.Input {
			row := map[string]interface{}{"taxon_id": id}
			for rank, v := range lineages[id] {
				row[rank+"_id"] = v
			}
			rows = append(rows, row)
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(rows))
	}))
	return srv, &batches
}

func TestResolveToRank_DeduplicatesAndReadsTargetRank(t *testing.T) {
	srv, _ := fakeUnipept(t, map[int]map[string]int{
		1: {"genus": 100, "species": 1},
		2: {"genus": 100, "species": 2},
		3: {"genus": 200, "species": 3},
	})
	defer srv.Close()

	c := NewClient(srv.URL)
	out, err := c.ResolveToRank(context.Background(), []int{1, 1, 2, 3}, "genus")
	require.NoError(t, err)
	require.Equal(t, []int{100, 200}, out)
}

func TestResolveToRank_UnknownRankReturnsError(t *testing.T) {
	srv, _ := fakeUnipept(t, map[int]map[string]int{1: {"genus": 100}})
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ResolveToRank(context.Background(), []int{1}, "not_a_rank")
	require.ErrorIs(t, err, ErrUnknownRank)
}

func TestResolveToRank_MissingTaxonIDInResponseFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"genus_id": 100}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ResolveToRank(context.Background(), []int{1}, "genus")
	require.ErrorIs(t, err, ErrLookupFailed)
}

func TestResolveToRank_SecondCallHitsCacheNotService(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"taxon_id": 1, "genus_id": 100}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ResolveToRank(context.Background(), []int{1}, "genus")
	require.NoError(t, err)
	_, err = c.ResolveToRank(context.Background(), []int{1}, "genus")
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestResolveToRank_BatchesRequestsOverBatchSize(t *testing.T) {
	lineages := make(map[int]map[string]int, 150)
	ids := make([]int, 150)
	for i := 0; i < 150; i++ {
		ids[i] = i + 1
		lineages[i+1] = map[string]int{"genus": i + 1}
	}
	srv, batches := fakeUnipept(t, lineages)
	defer srv.Close()

	c := NewClient(srv.URL)
	out, err := c.ResolveToRank(context.Background(), ids, "genus")
	require.NoError(t, err)
	require.Len(t, out, 150)
	require.Equal(t, 2, *batches)
}
