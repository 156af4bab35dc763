package weighing

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/compomics/peptonizer-go/taxonomy"
)

// Perform runs the five-step weighing preprocessor described for taxa
// aggregation: normalize each record's taxa to the target rank, draw a
// degeneracy-weighted distinct sample, project degeneracy weights, sum
// per-taxon weight, and select either every surviving taxon or the top
// MaxTaxa plus every unique-PSM taxon. Returns the sequences.csv and
// taxa_weights.csv row sets.
func Perform(ctx context.Context, client *taxonomy.Client, records []Record, scores map[string]float32, psmCounts map[string]int32, cfg Config, opts ...Option) ([]SequenceRow, []TaxonWeightRow, error) {
	o := resolveOptions(opts)

	normalized, err := normalize(ctx, client, records, cfg.Rank)
	if err != nil {
		return nil, nil, err
	}

	weights := make([]float64, len(normalized))
	for i, rec := range normalized {
		if len(rec.Taxa) == 0 {
			continue
		}
		weights[i] = 1.0 / float64(len(rec.Taxa))
	}

	sampleCap := cfg.SampleCap
	if sampleCap <= 0 {
		sampleCap = 10000
	}
	if sampleCap > len(normalized) {
		sampleCap = len(normalized)
	}
	sampleIdx := DrawDistinctWeighted(weights, sampleCap, o.rng)

	sampled := make([]Record, len(sampleIdx))
	for i, j := range sampleIdx {
		sampled[i] = normalized[j]
	}

	pepWeight := make([]float64, len(sampled))
	logWeight := make([]float64, len(sampled))
	pepScore := make([]float32, len(sampled))
	pepPSM := make([]int32, len(sampled))
	for i, rec := range sampled {
		score, ok := scores[rec.Sequence]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrMissingScore, rec.Sequence)
		}
		count, ok := psmCounts[rec.Sequence]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrMissingPSMCount, rec.Sequence)
		}
		pepScore[i] = score
		pepPSM[i] = count

		w := float64(count) / math.Pow(float64(len(rec.Taxa)), 3)
		pepWeight[i] = w
		logWeight[i] = math.Log10(w + 1)
	}

	uniquePSMTaxa := make(map[int]struct{})
	for _, rec := range sampled {
		if len(rec.Taxa) == 1 {
			uniquePSMTaxa[rec.Taxa[0]] = struct{}{}
		}
	}

	taxonSum := make(map[int]float64)
	for i, rec := range sampled {
		for _, tax := range rec.Taxa {
			taxonSum[tax] += logWeight[i]
		}
	}

	ranked := make([]int, 0, len(taxonSum))
	for tax := range taxonSum {
		ranked = append(ranked, tax)
	}
	sort.Slice(ranked, func(a, b int) bool {
		wa, wb := taxonSum[ranked[a]], taxonSum[ranked[b]]
		if wa != wb {
			return wa > wb
		}
		return ranked[a] < ranked[b]
	})

	survivors := make([]int, 0, len(ranked))
	for _, tax := range ranked {
		if _, excluded := cfg.ExcludedTaxa[tax]; excluded {
			continue
		}
		survivors = append(survivors, tax)
	}

	var include map[int]struct{}
	narrowed := len(survivors) >= 50
	if narrowed {
		limit := cfg.MaxTaxa
		if limit > len(survivors) {
			limit = len(survivors)
		}
		include = make(map[int]struct{}, limit+len(uniquePSMTaxa))
		for _, tax := range survivors[:limit] {
			include[tax] = struct{}{}
		}
		for tax := range uniquePSMTaxa {
			include[tax] = struct{}{}
		}
	}

	sequenceRows := make([]SequenceRow, 0, len(sampled))
	id := 0
	for i, rec := range sampled {
		for _, tax := range rec.Taxa {
			if _, excluded := cfg.ExcludedTaxa[tax]; excluded {
				continue
			}
			if narrowed {
				if _, ok := include[tax]; !ok {
					continue
				}
			}
			sequenceRows = append(sequenceRows, SequenceRow{
				ID:          id,
				Sequence:    rec.Sequence,
				Score:       pepScore[i],
				PSMCount:    pepPSM[i],
				HigherTaxon: tax,
				Weight:      pepWeight[i],
				LogWeight:   logWeight[i],
			})
			id++
		}
	}

	taxonRows := make([]TaxonWeightRow, 0, len(survivors))
	for i, tax := range survivors {
		_, unique := uniquePSMTaxa[tax]
		taxonRows = append(taxonRows, TaxonWeightRow{
			ID:           i,
			HigherTaxon:  tax,
			ScaledWeight: taxonSum[tax],
			Unique:       unique,
		})
	}

	return sequenceRows, taxonRows, nil
}

// normalize replaces each record's taxa with its lineage set at rank.
func normalize(ctx context.Context, client *taxonomy.Client, records []Record, rank string) ([]Record, error) {
	out := make([]Record, len(records))
	for i, rec := range records {
		lineage, err := client.ResolveToRank(ctx, rec.Taxa, rank)
		if err != nil {
			return nil, err
		}
		out[i] = Record{Sequence: rec.Sequence, Taxa: lineage}
	}
	return out, nil
}
