package weighing

// Record is one PSM-level input row: a peptide sequence and the taxon
// ids it was matched against.
type Record struct {
	Sequence string
	Taxa     []int
}

// Config holds the weighing preprocessor's tunables.
type Config struct {
	// MaxTaxa is the number of highest-weighted taxa to keep when
	// selection narrows the output (see Perform step 5). Required.
	MaxTaxa int

	// Rank is the target NCBI rank every record's taxa are normalized
	// to before aggregation (see taxonomy.NCBIRanks). Required.
	Rank string

	// ExcludedTaxa is dropped unconditionally from the aggregated taxon
	// list before selection.
	ExcludedTaxa map[int]struct{}

	// SampleCap bounds the degeneracy sample drawn in step 2; the
	// effective sample size is min(SampleCap, len(records)). Zero means
	// the documented default of 10000.
	SampleCap int
}

// DefaultConfig returns a Config with the documented default exclusion
// set and sample cap; MaxTaxa and Rank must still be set by the caller.
func DefaultConfig() Config {
	return Config{
		ExcludedTaxa: map[int]struct{}{1869227: {}},
		SampleCap:    10000,
	}
}

// SequenceRow is one row of the sequences.csv output: one per
// (sampled record, taxon) pair.
type SequenceRow struct {
	ID          int
	Sequence    string
	Score       float32
	PSMCount    int32
	HigherTaxon int
	Weight      float64
	LogWeight   float64
}

// TaxonWeightRow is one row of the taxa_weights.csv output: one per
// surviving aggregated taxon.
type TaxonWeightRow struct {
	ID           int
	HigherTaxon  int
	ScaledWeight float64
	Unique       bool
}
