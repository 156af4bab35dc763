package engine

import (
	"bytes"
	"fmt"

	"github.com/compomics/peptonizer-go/bp"
	"github.com/compomics/peptonizer-go/graph"
	"github.com/compomics/peptonizer-go/peptio"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Params holds the per-run tunables accepted by RunBeliefPropagation.
type Params struct {
	Alpha       float64
	Beta        float64
	Regularized bool
	Prior       float64
	MaxIter     int
	Tol         float64
}

// RunBeliefPropagation parses a GraphML document, fills in priors and
// factors, inserts convolution-tree nodes, decomposes the graph into
// connected components, runs residual belief propagation on every
// component larger than two nodes (singleton and pair components carry
// no informative messages and are left at their initial belief), and
// renders every taxon, peptide and factor node as a CSV with rows
// "name,p1,category" (taxon and peptide rows carry the posterior; factor
// rows carry 0). Convolution-tree nodes are not written.
func RunBeliefPropagation(graphmlDoc []byte, p Params) (string, error) {
	runID := uuid.New()
	logger := log.With().Str("run_id", runID.String()).Logger()

	g, err := graph.ParseGraphML(graphmlDoc)
	if err != nil {
		return "", fmt.Errorf("engine: parse graphml: %w", err)
	}

	g.FillPriors(p.Prior)
	g.FillFactors(p.Alpha, p.Beta, p.Regularized)
	g.AddCTNodes()

	components, err := g.Components()
	if err != nil {
		return "", fmt.Errorf("engine: split components: %w", err)
	}

	logger.Info().Int("components", len(components)).Msg("starting belief propagation")

	var buf bytes.Buffer
	cfg := bp.Config{MaxIter: p.MaxIter, Tol: p.Tol}

	for i, comp := range components {
		if len(comp.Nodes) <= 2 {
			if err := peptio.WriteBeliefsCSV(&buf, comp, initialBeliefs(comp)); err != nil {
				return "", fmt.Errorf("engine: write component %d: %w", i, err)
			}
			continue
		}

		result := bp.Run(comp, cfg)
		if !result.Converged {
			logger.Warn().Int("component", i).Int("steps", result.Steps).Msg("component did not converge")
		}

		if err := peptio.WriteBeliefsCSV(&buf, comp, result.Beliefs); err != nil {
			return "", fmt.Errorf("engine: write component %d: %w", i, err)
		}
	}

	return buf.String(), nil
}

// initialBeliefs collects every node's starting belief for components too
// small for belief propagation to change (size <= 2): no message passing
// can happen between so few nodes, so the initial beliefs already are the
// answer.
func initialBeliefs(g *graph.CTFactorGraph) [][2]float64 {
	out := make([][2]float64, len(g.Nodes))
	for i, n := range g.Nodes {
		out[i] = n.Belief
	}
	return out
}
