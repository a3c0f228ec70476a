package utils

import "time"

// TickTimer gates ticks to a fixed minimum real-time interval.
// Ready reports true at most once per elapsed interval; calls in between are no-ops.
type TickTimer struct {
	interval time.Duration
	last     time.Time
	started  bool
}

func NewTickTimer(interval time.Duration) *TickTimer {
	return &TickTimer{interval: interval}
}

// Ready reports whether a tick may run at now, and if so starts the next interval.
// The first call only starts the clock.
func (t *TickTimer) Ready(now time.Time) bool {
	if !t.started {
		t.started = true
		t.last = now
		return false
	}
	if t.interval <= 0 {
		t.last = now
		return true
	}
	if now.Sub(t.last) < t.interval {
		return false
	}
	// Keep the cadence fixed; skip whole intervals lost to a stall instead of bursting
	elapsed := now.Sub(t.last)
	t.last = t.last.Add(elapsed - elapsed%t.interval)
	return true
}
