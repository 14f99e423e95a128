package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidAppliesDefaults(t *testing.T) {
	var c Config
	require.NoError(t, c.Valid())
	assert.Equal(t, 1*time.Second, c.ConnectTimeout)
	assert.Equal(t, 1*time.Second, c.SendTimeout)
	assert.Equal(t, 1*time.Second, c.RecvTimeout)
	assert.Equal(t, BufSize, c.BufSize)
}

func TestConfigValidRejectsOutOfRange(t *testing.T) {
	c := Config{ConnectTimeout: 10 * time.Minute}
	require.Error(t, c.Valid())

	c = Config{SendTimeout: 10 * time.Minute}
	require.Error(t, c.Valid())

	c = Config{RecvTimeout: 10 * time.Minute}
	require.Error(t, c.Valid())
}

func TestConfigValidNilPointer(t *testing.T) {
	var c *Config
	require.Error(t, c.Valid())
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Valid())
	assert.Equal(t, BufSize, c.BufSize)
}
