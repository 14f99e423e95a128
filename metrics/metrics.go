// Package metrics instruments the session and fleet packages with
// process-local counters and histograms, exposed via VictoriaMetrics'
// metrics registry (github.com/VictoriaMetrics/metrics) so a host
// application can serve /metrics without this library taking an opinion
// on the HTTP layer.
package metrics

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// ExchangeResult labels a completed Session.exchange.
type ExchangeResult string

const (
	ExchangeOK       ExchangeResult = "ok"
	ExchangeTimeout  ExchangeResult = "timeout"
	ExchangeProtocol ExchangeResult = "protocol_error"
	ExchangeIO       ExchangeResult = "io_error"
)

// ObserveExchange records one Session.exchange outcome for endpoint.
func ObserveExchange(endpoint string, result ExchangeResult, d time.Duration) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`slmp_session_exchanges_total{endpoint=%q,result=%q}`, endpoint, result)).Inc()
	metrics.GetOrCreateHistogram(fmt.Sprintf(`slmp_session_exchange_duration_seconds{endpoint=%q}`, endpoint)).Update(d.Seconds())
}

// PollBucket labels a fleet poller tick.
type PollBucket string

const (
	BucketFast   PollBucket = "fast"
	BucketMedium PollBucket = "medium"
	BucketSlow   PollBucket = "slow"
	BucketWatch  PollBucket = "watch"
)

// ObservePollTick records one poll of bucket for endpoint.
func ObservePollTick(endpoint string, bucket PollBucket) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`slmp_fleet_poll_ticks_total{endpoint=%q,bucket=%q}`, endpoint, bucket)).Inc()
}

// ObserveCallbackError records that the user callback returned an error
// during a poll tick; the poller never dies on this (spec §4.6).
func ObserveCallbackError(endpoint string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`slmp_fleet_callback_errors_total{endpoint=%q}`, endpoint)).Inc()
}
