package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDueBucketsMultiRateSchedule(t *testing.T) {
	assert.Equal(t, []PollingInterval{Fast, Medium, Slow}, dueBuckets(0))
	assert.Equal(t, []PollingInterval{Fast}, dueBuckets(1))
	assert.Equal(t, []PollingInterval{Fast, Medium}, dueBuckets(5))
	assert.Equal(t, []PollingInterval{Fast, Medium, Slow}, dueBuckets(10))
	assert.Equal(t, []PollingInterval{Fast, Watch}, dueBuckets(49))
}

func TestNextCountWrapsAfter49(t *testing.T) {
	assert.Equal(t, 1, nextCount(49))
	assert.Equal(t, 2, nextCount(1))
	assert.Equal(t, 1, nextCount(0))
}

func TestPollingIntervalString(t *testing.T) {
	assert.Equal(t, "Fast", Fast.String())
	assert.Equal(t, "Watch", Watch.String())
}
