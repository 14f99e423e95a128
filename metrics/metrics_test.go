package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObserveFunctionsDoNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		ObserveExchange("127.0.0.1:5007", ExchangeOK, 5*time.Millisecond)
		ObserveExchange("127.0.0.1:5007", ExchangeTimeout, time.Second)
		ObservePollTick("127.0.0.1:5007", BucketFast)
		ObserveCallbackError("127.0.0.1:5007")
	})
}
