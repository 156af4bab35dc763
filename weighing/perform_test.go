package weighing

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/compomics/peptonizer-go/taxonomy"
	"github.com/stretchr/testify/require"
)

// identityTaxonomyServer returns every requested id as its own "genus_id",
// so normalize is a no-op and tests can reason about raw taxon ids.
func identityTaxonomyServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []int `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		rows := make([]map[string]interface{}, 0, len(req.Input))
		for _, id := range req.Input {
			rows = append(rows, map[string]interface{}{"taxon_id": id, "genus_id": id})
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(rows))
	}))
}

func TestPerform_SingleTaxonRecordsAreMarkedUnique(t *testing.T) {
	srv := identityTaxonomyServer(t)
	defer srv.Close()
	client := taxonomy.NewClient(srv.URL)

	records := []Record{
		{Sequence: "AAA", Taxa: []int{1}},
		{Sequence: "BBB", Taxa: []int{2, 3}},
	}
	scores := map[string]float32{"AAA": 1.0, "BBB": 2.0}
	psms := map[string]int32{"AAA": 4, "BBB": 6}

	cfg := DefaultConfig()
	cfg.MaxTaxa = 10
	cfg.Rank = "genus"

	seqRows, taxRows, err := Perform(context.Background(), client, records, scores, psms, cfg, WithSeed(1))
	require.NoError(t, err)
	require.NotEmpty(t, seqRows)

	byTaxon := make(map[int]TaxonWeightRow)
	for _, row := range taxRows {
		byTaxon[row.HigherTaxon] = row
	}
	require.True(t, byTaxon[1].Unique)
	require.False(t, byTaxon[2].Unique)
	require.False(t, byTaxon[3].Unique)
}

func TestPerform_ExcludedTaxonNeverAppearsInOutput(t *testing.T) {
	srv := identityTaxonomyServer(t)
	defer srv.Close()
	client := taxonomy.NewClient(srv.URL)

	records := []Record{{Sequence: "AAA", Taxa: []int{1869227}}}
	scores := map[string]float32{"AAA": 1.0}
	psms := map[string]int32{"AAA": 1}

	cfg := DefaultConfig()
	cfg.MaxTaxa = 10
	cfg.Rank = "genus"

	seqRows, taxRows, err := Perform(context.Background(), client, records, scores, psms, cfg, WithSeed(1))
	require.NoError(t, err)
	require.Empty(t, taxRows)
	require.Empty(t, seqRows)
}

func TestPerform_MissingScoreReturnsError(t *testing.T) {
	srv := identityTaxonomyServer(t)
	defer srv.Close()
	client := taxonomy.NewClient(srv.URL)

	records := []Record{{Sequence: "AAA", Taxa: []int{1}}}
	cfg := DefaultConfig()
	cfg.MaxTaxa = 10
	cfg.Rank = "genus"

	_, _, err := Perform(context.Background(), client, records, map[string]float32{}, map[string]int32{"AAA": 1}, cfg, WithSeed(1))
	require.ErrorIs(t, err, ErrMissingScore)
}

func TestPerform_FewerThan50SurvivingTaxaEmitsEveryRow(t *testing.T) {
	srv := identityTaxonomyServer(t)
	defer srv.Close()
	client := taxonomy.NewClient(srv.URL)

	records := make([]Record, 5)
	scores := map[string]float32{}
	psms := map[string]int32{}
	for i := range records {
		seq := string(rune('A' + i))
		records[i] = Record{Sequence: seq, Taxa: []int{i + 1}}
		scores[seq] = 1.0
		psms[seq] = 1
	}

	cfg := DefaultConfig()
	cfg.MaxTaxa = 1
	cfg.Rank = "genus"

	_, taxRows, err := Perform(context.Background(), client, records, scores, psms, cfg, WithSeed(1))
	require.NoError(t, err)
	require.Len(t, taxRows, 5, "fewer than 50 survivors means every taxon is emitted despite MaxTaxa=1")
}

func TestDrawDistinctWeighted_IsDeterministicGivenASeed(t *testing.T) {
	weights := []float64{1, 2, 0, 3, 4}
	a := DrawDistinctWeighted(weights, 3, rand.New(rand.NewSource(42)))
	b := DrawDistinctWeighted(weights, 3, rand.New(rand.NewSource(42)))
	require.Equal(t, a, b)
}

func TestDrawDistinctWeighted_NeverSelectsZeroWeightEntries(t *testing.T) {
	weights := []float64{1, 0, 1, 0, 1}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		out := DrawDistinctWeighted(weights, 3, rng)
		for _, idx := range out {
			require.NotEqual(t, 0.0, weights[idx])
		}
	}
}
