package fleet

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-slmp/slmp/clog"
	"github.com/go-slmp/slmp/metrics"
	"github.com/go-slmp/slmp/protocol"
	"github.com/go-slmp/slmp/session"
)

const tickInterval = 100 * time.Millisecond

// worker holds one endpoint's live session and its poller (spec §4.6
// "Worker (C6 entry)").
type worker struct {
	endpoint    string
	sess        *session.Session
	connectedAt time.Time
	callback    Callback

	mu      sync.RWMutex
	targets []MonitorTarget

	// targetCh is a single-slot, always-latest-value channel: since
	// register_monitor_targets replaces the whole target list, only the
	// most recent send matters, so a non-blocking drain-and-retry on send
	// gives the "never blocks" suspension-point guarantee (spec §5)
	// without an actually-unbounded backing queue.
	targetCh chan []MonitorTarget

	cancel context.CancelFunc
	eg     *errgroup.Group
	log    clog.Clog
}

func newWorker(endpoint string, sess *session.Session, callback Callback) *worker {
	return &worker{
		endpoint:    endpoint,
		sess:        sess,
		connectedAt: time.Now(),
		callback:    callback,
		targetCh:    make(chan []MonitorTarget, 1),
		log:         clog.NewLogger("fleet:" + endpoint),
	}
}

// start spawns the poller loop under an errgroup so close() can Wait for
// its termination (spec §4.6 "Cancellation").
func (w *worker) start() {
	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)
	w.cancel = cancel
	w.eg = eg
	eg.Go(func() error {
		w.pollLoop(ctx)
		return nil
	})
}

// setTargets replaces the worker's monitor list via the update channel,
// never blocking the caller (spec §4.6 "register_monitor_targets").
func (w *worker) setTargets(targets []MonitorTarget) {
	for {
		select {
		case w.targetCh <- targets:
			return
		default:
			select {
			case <-w.targetCh:
			default:
			}
		}
	}
}

// pollLoop is the worker's main loop: cancel, target-channel receive, and
// the 100ms tick race, with cancel always preferred (spec §4.6, §5).
func (w *worker) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	cnt := 0
	for {
		select {
		case <-ctx.Done():
			return
		case targets := <-w.targetCh:
			if ctx.Err() != nil {
				return
			}
			w.mu.Lock()
			w.targets = targets
			w.mu.Unlock()
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			buckets := dueBuckets(cnt)
			cnt = nextCount(cnt)
			w.tick(buckets)
		}
	}
}

// tick composes the union of due buckets into one random_read request and
// dispatches results to the callback (spec §4.6 "Per-tick dispatch").
func (w *worker) tick(buckets []PollingInterval) {
	for _, b := range buckets {
		metrics.ObservePollTick(w.endpoint, toMetricsBucket(b))
	}

	due := make(map[PollingInterval]bool, len(buckets))
	for _, b := range buckets {
		due[b] = true
	}

	w.mu.RLock()
	devices := make([]protocol.TypedDevice, 0, len(w.targets))
	for _, t := range w.targets {
		if due[t.Interval] {
			devices = append(devices, t.Device)
		}
	}
	w.mu.RUnlock()

	if len(devices) == 0 {
		return
	}

	data, err := w.sess.RandomRead(devices)
	if err != nil {
		w.log.Warn("poll tick for %s failed: %v", w.endpoint, err)
		return
	}

	plcData := make([]PLCData, len(data))
	for i, d := range data {
		plcData[i] = PLCData{Endpoint: w.endpoint, Data: d}
	}

	if w.callback == nil {
		return
	}
	if err := w.callback(plcData); err != nil {
		metrics.ObserveCallbackError(w.endpoint)
		w.log.Warn("callback for %s returned error: %v", w.endpoint, err)
	}
}

func toMetricsBucket(p PollingInterval) metrics.PollBucket {
	switch p {
	case Fast:
		return metrics.BucketFast
	case Medium:
		return metrics.BucketMedium
	case Slow:
		return metrics.BucketSlow
	default:
		return metrics.BucketWatch
	}
}

// close cancels the poller, waits for it to terminate, then closes the
// session — synchronous with respect to the poller (spec §4.6, §5).
func (w *worker) close() error {
	if w.cancel != nil {
		w.cancel()
	}
	if w.eg != nil {
		_ = w.eg.Wait()
	}
	return w.sess.Close()
}
