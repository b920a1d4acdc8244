package booking

import (
	"context"
	"strconv"
	"time"

	"ferry-backend/internal/utils"
)

// Sweeper periodically reclaims expired holds. Safe to run alongside user
// Confirm/Release traffic; every path re-validates state behind the trip
// lock or the state compare-and-set.
type Sweeper struct {
	Manager  *ReservationManager
	Interval time.Duration
	Now      func() time.Time
}

// Run sweeps on each tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	now := s.Now
	if now == nil {
		now = utils.NowUTC
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := s.Manager.ExpireSweep(now())
			if err != nil {
				utils.LogEvent("", "sweep", "run", "sweep failed: "+err.Error())
				continue
			}
			if expired > 0 {
				utils.LogEvent("", "sweep", "run", "expired="+strconv.Itoa(expired))
			}
		}
	}
}
