package taxonomy

// NCBIRanks is the fixed, ordered list of lineage ranks the Unipept
// taxonomy service reports for every taxon. Index into a cached lineage
// at rankIndex[rank] to read the ancestor id at that rank.
var NCBIRanks = []string{
	"superkingdom",
	"kingdom",
	"subkingdom",
	"superphylum",
	"phylum",
	"subphylum",
	"superclass",
	"class",
	"subclass",
	"superorder",
	"order",
	"suborder",
	"infraorder",
	"superfamily",
	"family",
	"subfamily",
	"tribe",
	"subtribe",
	"genus",
	"subgenus",
	"species_group",
	"species_subgroup",
	"species",
	"subspecies",
	"strain",
	"varietas",
	"forma",
}

var rankIndex = buildRankIndex()

func buildRankIndex() map[string]int {
	idx := make(map[string]int, len(NCBIRanks))
	for i, r := range NCBIRanks {
		idx[r] = i
	}
	return idx
}
