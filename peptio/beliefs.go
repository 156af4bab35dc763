package peptio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/compomics/peptonizer-go/graph"
)

// WriteBeliefsCSV writes rows "name,p1,category" for every node in g
// whose category is one of the original GraphML schema's three kinds
// (peptide, taxon, factor), reading p1 from beliefs[node.ID][1].
// ConvolutionTree nodes are an internal insertion with no GraphML
// counterpart and are never emitted.
func WriteBeliefsCSV(w io.Writer, g *graph.CTFactorGraph, beliefs [][2]float64) error {
	cw := csv.NewWriter(w)
	for _, n := range g.Nodes {
		if n.Kind == graph.ConvolutionTree {
			continue
		}
		record := []string{
			n.Name,
			strconv.FormatFloat(beliefs[n.ID][1], 'g', -1, 64),
			n.Kind.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
