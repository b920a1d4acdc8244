package booking

import "ferry-backend/internal/domain"

// TreeLedger keeps the same contract as SliceLedger on a lazy range-add /
// range-max tree, O(log legs) per operation. Worth it only on long routes;
// both implementations must stay observably identical.
type TreeLedger struct {
	capacity int
	legs     int
	maxv     []int
	minv     []int
	lazy     []int
}

// NewTreeLedger builds a tree ledger for a route with the given leg count.
func NewTreeLedger(legs, capacity int) *TreeLedger {
	size := 4 * legs
	if size < 4 {
		size = 4
	}
	return &TreeLedger{
		capacity: capacity,
		legs:     legs,
		maxv:     make([]int, size),
		minv:     make([]int, size),
		lazy:     make([]int, size),
	}
}

func (l *TreeLedger) Legs() int { return l.legs }

func (l *TreeLedger) checkRange(origin, destination int) error {
	if origin < 0 || destination <= origin || destination > l.legs {
		return domain.InvalidRangeError{Origin: origin, Destination: destination, Stops: l.legs + 1}
	}
	return nil
}

func (l *TreeLedger) push(node int) {
	if l.lazy[node] == 0 {
		return
	}
	for _, child := range []int{2*node + 1, 2*node + 2} {
		l.lazy[child] += l.lazy[node]
		l.maxv[child] += l.lazy[node]
		l.minv[child] += l.lazy[node]
	}
	l.lazy[node] = 0
}

func (l *TreeLedger) add(node, nodeLo, nodeHi, lo, hi, delta int) {
	if hi < nodeLo || nodeHi < lo {
		return
	}
	if lo <= nodeLo && nodeHi <= hi {
		l.lazy[node] += delta
		l.maxv[node] += delta
		l.minv[node] += delta
		return
	}
	l.push(node)
	mid := (nodeLo + nodeHi) / 2
	l.add(2*node+1, nodeLo, mid, lo, hi, delta)
	l.add(2*node+2, mid+1, nodeHi, lo, hi, delta)
	l.maxv[node] = maxInt(l.maxv[2*node+1], l.maxv[2*node+2])
	l.minv[node] = minInt(l.minv[2*node+1], l.minv[2*node+2])
}

func (l *TreeLedger) queryMax(node, nodeLo, nodeHi, lo, hi int) int {
	if hi < nodeLo || nodeHi < lo {
		return 0
	}
	if lo <= nodeLo && nodeHi <= hi {
		return l.maxv[node]
	}
	l.push(node)
	mid := (nodeLo + nodeHi) / 2
	return maxInt(
		l.queryMax(2*node+1, nodeLo, mid, lo, hi),
		l.queryMax(2*node+2, mid+1, nodeHi, lo, hi),
	)
}

func (l *TreeLedger) queryMin(node, nodeLo, nodeHi, lo, hi int) int {
	if hi < nodeLo || nodeHi < lo {
		return int(^uint(0) >> 1)
	}
	if lo <= nodeLo && nodeHi <= hi {
		return l.minv[node]
	}
	l.push(node)
	mid := (nodeLo + nodeHi) / 2
	return minInt(
		l.queryMin(2*node+1, nodeLo, mid, lo, hi),
		l.queryMin(2*node+2, mid+1, nodeHi, lo, hi),
	)
}

func (l *TreeLedger) AvailableSeats(origin, destination int) (int, error) {
	if err := l.checkRange(origin, destination); err != nil {
		return 0, err
	}
	peak := l.queryMax(0, 0, l.legs-1, origin, destination-1)
	return l.capacity - peak, nil
}

func (l *TreeLedger) Reserve(origin, destination, count int) error {
	if count <= 0 {
		return domain.InvalidSeatCountError{Count: count}
	}
	available, err := l.AvailableSeats(origin, destination)
	if err != nil {
		return err
	}
	if available < count {
		return domain.InsufficientCapacityError{Requested: count, Available: available}
	}
	l.add(0, 0, l.legs-1, origin, destination-1, count)
	return nil
}

func (l *TreeLedger) Release(origin, destination, count int) error {
	if count <= 0 {
		return domain.InvalidSeatCountError{Count: count}
	}
	if err := l.checkRange(origin, destination); err != nil {
		return err
	}
	if l.queryMin(0, 0, l.legs-1, origin, destination-1) < count {
		return domain.LedgerInvariantError{Leg: origin, Msg: "release below zero"}
	}
	l.add(0, 0, l.legs-1, origin, destination-1, -count)
	return nil
}

func (l *TreeLedger) Counts() []int {
	out := make([]int, l.legs)
	for leg := 0; leg < l.legs; leg++ {
		out[leg] = l.queryMax(0, 0, l.legs-1, leg, leg)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
