package bp

import "testing"

// TestSetPriority_TiesBreakByInsertionOrder verifies that when two edges
// carry bit-equal residuals, popMaxPriority returns whichever was pushed
// first, matching the scheduler's documented tie-break rule.
func TestSetPriority_TiesBreakByInsertionOrder(t *testing.T) {
	m := &messages{items: make(map[edgeKey]*pqItem)}

	m.setPriority(1, 0, 2, 0.5)
	m.setPriority(2, 0, 3, 0.5)
	m.setPriority(3, 0, 4, 0.5)

	var order []int
	for {
		item, ok := m.popMaxPriority()
		if !ok {
			break
		}
		order = append(order, item.end)
	}

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected pop order [1 2 3], got %v", order)
	}
}

// TestSetPriority_HigherResidualWinsRegardlessOfInsertionOrder checks that
// the tie-break only applies when residuals are exactly equal.
func TestSetPriority_HigherResidualWinsRegardlessOfInsertionOrder(t *testing.T) {
	m := &messages{items: make(map[edgeKey]*pqItem)}

	m.setPriority(1, 0, 2, 0.1)
	m.setPriority(2, 0, 3, 0.9)

	item, ok := m.popMaxPriority()
	if !ok || item.end != 2 {
		t.Fatalf("expected edge with residual 0.9 to pop first, got %+v ok=%v", item, ok)
	}
}
