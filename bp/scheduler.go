package bp

import "container/heap"

// pqItem is one entry in the residual priority queue: the directed edge
// (end, startInEnd) and its current residual. start is cached so the
// scheduler need not re-derive it from the graph on pop.
type pqItem struct {
	end        int
	startInEnd int
	start      int
	residual   float64
	seq        int
	index      int
	stale      bool
}

// residualPQ is a max-heap of *pqItem ordered by residual descending,
// inverted from dijkstra's min-heap-by-distance (see dijkstra/dijkstra.go
// nodePQ) since the scheduler always wants the largest outstanding
// residual next. Like dijkstra's lazy decrease-key, updating an edge's
// priority pushes a fresh item and marks any prior entry for that edge
// stale rather than fixing it in place; stale entries are skipped on pop.
// Ties (bit-equal residuals) break on seq, the insertion order, so two
// schedulers fed the same sequence of setPriority calls always agree.
type residualPQ []*pqItem

func (pq residualPQ) Len() int { return len(pq) }

func (pq residualPQ) Less(i, j int) bool {
	if pq[i].residual != pq[j].residual {
		return pq[i].residual > pq[j].residual
	}
	return pq[i].seq < pq[j].seq
}

func (pq residualPQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *residualPQ) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *residualPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// setPriority installs or replaces the priority of directed edge
// (end, startInEnd, start), marking any previous entry for that key
// stale.
func (m *messages) setPriority(end, startInEnd, start int, residual float64) {
	key := edgeKey{End: end, StartInEnd: startInEnd}
	if prev, ok := m.items[key]; ok {
		prev.stale = true
	}
	item := &pqItem{end: end, startInEnd: startInEnd, start: start, residual: residual, seq: m.nextSeq}
	m.nextSeq++
	m.items[key] = item
	heap.Push(&m.pq, item)
}

// popMaxPriority pops and returns the highest-priority non-stale entry,
// or ok=false if the queue is exhausted.
func (m *messages) popMaxPriority() (item *pqItem, ok bool) {
	for m.pq.Len() > 0 {
		next := heap.Pop(&m.pq).(*pqItem)
		if next.stale {
			continue
		}
		delete(m.items, edgeKey{End: next.end, StartInEnd: next.startInEnd})
		return next, true
	}
	return nil, false
}

// peekMaxResidual returns the largest residual still outstanding, or 0
// if the queue is empty/fully stale.
func (m *messages) peekMaxResidual() float64 {
	max := 0.0
	for _, item := range m.pq {
		if !item.stale && item.residual > max {
			max = item.residual
		}
	}
	return max
}
