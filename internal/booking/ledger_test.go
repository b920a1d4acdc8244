package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferry-backend/internal/domain"
)

func TestSliceLedgerOverlappingSegments(t *testing.T) {
	// Route A,B,C,D (4 stops, 3 legs), capacity 10.
	ledger := NewSliceLedger(3, 10)

	require.NoError(t, ledger.Reserve(0, 2, 4)) // A->C
	assert.Equal(t, []int{4, 4, 0}, ledger.Counts())

	err := ledger.Reserve(1, 3, 7) // B->D, only 6 free on leg 1
	require.Error(t, err)
	assert.True(t, domain.IsInsufficientCapacity(err))
	assert.Equal(t, []int{4, 4, 0}, ledger.Counts(), "failed reserve must leave ledger unchanged")

	require.NoError(t, ledger.Reserve(1, 3, 6))
	assert.Equal(t, []int{4, 10, 6}, ledger.Counts())

	available, err := ledger.AvailableSeats(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, available)

	require.NoError(t, ledger.Release(0, 2, 4))
	assert.Equal(t, []int{0, 6, 6}, ledger.Counts())
}

func TestSliceLedgerAvailableSeatsIsCapacityMinusPeak(t *testing.T) {
	ledger := NewSliceLedger(4, 20)
	require.NoError(t, ledger.Reserve(0, 2, 5))
	require.NoError(t, ledger.Reserve(1, 4, 12))

	cases := []struct {
		o, d, want int
	}{
		{0, 1, 15},
		{0, 2, 3},
		{1, 2, 3},
		{2, 4, 8},
		{0, 4, 3},
	}
	for _, tc := range cases {
		got, err := ledger.AvailableSeats(tc.o, tc.d)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "segment [%d,%d)", tc.o, tc.d)
	}
}

func TestSliceLedgerInvalidRange(t *testing.T) {
	ledger := NewSliceLedger(3, 10)
	for _, tc := range [][2]int{{-1, 2}, {2, 2}, {2, 1}, {0, 4}} {
		_, err := ledger.AvailableSeats(tc[0], tc[1])
		assert.True(t, domain.IsInvalidRange(err), "range [%d,%d)", tc[0], tc[1])
	}
}

func TestSliceLedgerInvalidSeatCount(t *testing.T) {
	ledger := NewSliceLedger(3, 10)
	assert.True(t, domain.IsInvalidSeatCount(ledger.Reserve(0, 1, 0)))
	assert.True(t, domain.IsInvalidSeatCount(ledger.Reserve(0, 1, -2)))
}

func TestSliceLedgerReleaseBelowZeroIsInvariantViolation(t *testing.T) {
	ledger := NewSliceLedger(3, 10)
	require.NoError(t, ledger.Reserve(0, 3, 2))

	err := ledger.Release(0, 3, 3)
	assert.True(t, domain.IsLedgerInvariant(err))
	assert.Equal(t, []int{2, 2, 2}, ledger.Counts(), "failed release must not partially apply")
}

func TestTreeLedgerMatchesSliceLedger(t *testing.T) {
	const legs, capacity = 12, 30
	slice := NewSliceLedger(legs, capacity)
	tree := NewTreeLedger(legs, capacity)

	ops := []struct {
		release bool
		o, d, k int
	}{
		{false, 0, 5, 7},
		{false, 3, 9, 10},
		{false, 8, 12, 13},
		{false, 0, 12, 4},
		{true, 3, 9, 10},
		{false, 2, 7, 16},
		{false, 5, 6, 40}, // over capacity, must fail on both
		{true, 0, 5, 7},
		{false, 0, 3, 19},
	}
	for i, op := range ops {
		var errSlice, errTree error
		if op.release {
			errSlice = slice.Release(op.o, op.d, op.k)
			errTree = tree.Release(op.o, op.d, op.k)
		} else {
			errSlice = slice.Reserve(op.o, op.d, op.k)
			errTree = tree.Reserve(op.o, op.d, op.k)
		}
		assert.Equal(t, errSlice == nil, errTree == nil, "op %d diverged: slice=%v tree=%v", i, errSlice, errTree)
		assert.Equal(t, slice.Counts(), tree.Counts(), "op %d counts diverged", i)
	}

	for o := 0; o < legs; o++ {
		for d := o + 1; d <= legs; d++ {
			wantAvail, err1 := slice.AvailableSeats(o, d)
			gotAvail, err2 := tree.AvailableSeats(o, d)
			require.NoError(t, err1)
			require.NoError(t, err2)
			assert.Equal(t, wantAvail, gotAvail, "availability [%d,%d)", o, d)
		}
	}
}

func TestTreeLedgerSingleLegRoute(t *testing.T) {
	tree := NewTreeLedger(1, 5)
	require.NoError(t, tree.Reserve(0, 1, 5))
	assert.True(t, domain.IsInsufficientCapacity(tree.Reserve(0, 1, 1)))
	require.NoError(t, tree.Release(0, 1, 5))
	assert.Equal(t, []int{0}, tree.Counts())
}
