package peptio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/compomics/peptonizer-go/weighing"
)

// WriteSequencesCSV writes sequences.csv: one row per (sampled record,
// taxon) pair, columns id, sequence, score, psms, HigherTaxa, weight,
// log_weight.
func WriteSequencesCSV(w io.Writer, rows []weighing.SequenceRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "sequence", "score", "psms", "HigherTaxa", "weight", "log_weight"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.ID),
			row.Sequence,
			strconv.FormatFloat(float64(row.Score), 'g', -1, 32),
			strconv.FormatInt(int64(row.PSMCount), 10),
			strconv.Itoa(row.HigherTaxon),
			strconv.FormatFloat(row.Weight, 'g', -1, 64),
			strconv.FormatFloat(row.LogWeight, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTaxaWeightsCSV writes taxa_weights.csv: one row per surviving
// aggregated taxon, columns id, HigherTaxa, scaled_weight, Unique.
func WriteTaxaWeightsCSV(w io.Writer, rows []weighing.TaxonWeightRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "HigherTaxa", "scaled_weight", "Unique"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.ID),
			strconv.Itoa(row.HigherTaxon),
			strconv.FormatFloat(row.ScaledWeight, 'g', -1, 64),
			strconv.FormatBool(row.Unique),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
