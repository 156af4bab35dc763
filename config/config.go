package config

// Config holds every tunable the engine's stages read. It is built once
// by Load and passed by value from there on; nothing in the engine reads
// ambient global state mid-run.
type Config struct {
	// Alpha and Beta are the noisy-OR sensitivity/false-positive rates
	// used by graph.FillFactors. No default: callers must set them.
	Alpha float64
	Beta  float64

	// Regularized selects the regularized CPD variant in FillFactors.
	Regularized bool

	// Prior is the taxon presence prior used by graph.FillPriors. No
	// default: callers must set it.
	Prior float64

	// MaxIter and Tol are the residual-loop limits (bp.Config).
	MaxIter int
	Tol     float64

	// UnipeptURL is the taxonomy service base URL.
	UnipeptURL string

	// TaxonomyBatchSize is the max ids per taxonomy request.
	TaxonomyBatchSize int

	// TargetRank is the rank taxa are normalized to in the weighing
	// preprocessor (see taxonomy.NCBIRanks). No default: callers must
	// set it.
	TargetRank string

	// MaxTaxa is the weighing preprocessor's selection cutoff
	// (weighing.Config.MaxTaxa). No default: callers must set it.
	MaxTaxa int
}

// defaults returns the engine's documented ambient defaults. Domain
// parameters with no sensible default (Alpha, Beta, Prior, TargetRank,
// MaxTaxa) are left zero-valued.
func defaults() Config {
	return Config{
		MaxIter:           10000,
		Tol:               0.006,
		UnipeptURL:        "http://api.unipept.ugent.be",
		TaxonomyBatchSize: 100,
	}
}
