package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileControlRequestNotImplemented(t *testing.T) {
	_, err := FileControlRequest(FileRead)
	assert.ErrorIs(t, err, ErrNotImplemented)
}
