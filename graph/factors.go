package graph

import "github.com/compomics/peptonizer-go/internal/arrmath"

// FillPriors sets every Taxon node's belief to (1-prior, prior). Peptide
// and Factor nodes are left untouched.
func (g *CTFactorGraph) FillPriors(prior float64) {
	for i := range g.Nodes {
		if g.Nodes[i].Kind == Taxon {
			g.Nodes[i].Belief = [2]float64{1 - prior, prior}
		}
	}
}

// FillFactors builds the noisy-OR CPD for every Factor node of parent
// count N:
//
//	cpd[i][0] = (1-alpha)^i * (1-beta)
//	cpd[i][1] = 1 - cpd[i][0]
//
// If regularized, cpd is replaced by
//
//	cpd_reg[i][0] = cpd[i][0]^i * (1-beta) / divide[i]
//	cpd_reg[i][1] = 1 - cpd_reg[i][0]
//
// with divide = [1, 1, 2, 3, ..., N]. Either table is then normalized by
// its own total sum across all N+1 rows (not per row — every row already
// sums to exactly 1 by construction, so this scales the whole table down
// to 1/(N+1) per row); the regularized table additionally has every
// entry floored at 1e-30.
func (g *CTFactorGraph) FillFactors(alpha, beta float64, regularized bool) {
	for i := range g.Nodes {
		if g.Nodes[i].Kind != Factor {
			continue
		}
		g.Nodes[i].CPD = buildCPD(g.Nodes[i].ParentCount, alpha, beta, regularized)
	}
}

func buildCPD(n int, alpha, beta float64, regularized bool) [][2]float64 {
	divide := make([]float64, n+1)
	divide[0] = 1
	for i := 1; i <= n; i++ {
		divide[i] = float64(i)
	}

	cpd := make([][2]float64, n+1)
	cpdSum := 0.0
	for i := 0; i <= n; i++ {
		c0 := ipow(1-alpha, i) * (1 - beta)
		c1 := 1 - c0
		cpd[i] = [2]float64{c0, c1}
		cpdSum += c0 + c1
	}

	if !regularized {
		normalizeCPD(cpd, cpdSum, false)
		return cpd
	}

	reg := make([][2]float64, n+1)
	regSum := 0.0
	for i := 0; i <= n; i++ {
		r0 := ipow(cpd[i][0], i) * (1 - beta) / divide[i]
		r1 := 1 - r0
		reg[i] = [2]float64{r0, r1}
		regSum += r0 + r1
	}
	normalizeCPD(reg, regSum, true)
	return reg
}

func ipow(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

func normalizeCPD(cpd [][2]float64, sum float64, avoidUnderflow bool) {
	for i := range cpd {
		cpd[i][0] /= sum
		cpd[i][1] /= sum
		if avoidUnderflow {
			cpd[i][0] = arrmath.AvoidUnderflow([]float64{cpd[i][0]})[0]
			cpd[i][1] = arrmath.AvoidUnderflow([]float64{cpd[i][1]})[0]
		}
	}
}
