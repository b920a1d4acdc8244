package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferry-backend/internal/domain/models"
)

func TestSweeperReclaimsInBackground(t *testing.T) {
	manager, _, clock := newTestManager(t, 10)
	res, err := manager.Hold(HoldRequest{TripID: "T1", Origin: 0, Destination: 2, SeatCount: 4, HoldTTL: time.Minute})
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := &Sweeper{Manager: manager, Interval: 10 * time.Millisecond, Now: clock.Now}
	go sweeper.Run(ctx)

	deadline := time.After(2 * time.Second)
	for {
		cur, err := manager.GetReservation(res.ID)
		require.NoError(t, err)
		if cur.State == models.StateExpired {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("sweeper did not expire the hold, state=%s", cur.State)
		case <-time.After(10 * time.Millisecond):
		}
	}

	available, err := manager.AvailableSeats("T1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 10, available)
}
