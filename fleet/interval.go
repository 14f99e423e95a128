// Package fleet manages many SLMP sessions keyed by endpoint, polling each
// at its own rate and delivering values to a user callback (spec §4.6).
package fleet

// PollingInterval is the refresh bucket a monitor target is assigned to.
// The poller ticks every 100ms and decides which buckets are due this
// tick from a single modulo-50 counter (spec §4.6).
type PollingInterval byte

const (
	Fast PollingInterval = iota
	Medium
	Slow
	Watch
)

func (p PollingInterval) String() string {
	switch p {
	case Fast:
		return "Fast"
	case Medium:
		return "Medium"
	case Slow:
		return "Slow"
	case Watch:
		return "Watch"
	default:
		return "Unknown"
	}
}

// dueBuckets returns the buckets due to poll at counter value cnt, per the
// multi-rate schedule: Fast every tick, Medium every 5th, Slow every 10th,
// Watch on the 49th (spec §4.6).
func dueBuckets(cnt int) []PollingInterval {
	buckets := []PollingInterval{Fast}
	if cnt%5 == 0 {
		buckets = append(buckets, Medium)
	}
	if cnt%10 == 0 {
		buckets = append(buckets, Slow)
	}
	if cnt == 49 {
		buckets = append(buckets, Watch)
	}
	return buckets
}

// nextCount advances the 0..49 poller counter, wrapping to 1 after 49
// (spec §4.6 "reset to 1 after 49 per the source").
func nextCount(cnt int) int {
	if cnt >= 49 {
		return 1
	}
	return cnt + 1
}
