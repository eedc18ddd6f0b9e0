package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeKnownValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "00000000000000000000000000", encode([16]byte{}))

	var full [16]byte
	for i := range full {
		full[i] = 0xFF
	}
	assert.Equal(t, "7ZZZZZZZZZZZZZZZZZZZZZZZZZ", encode(full))
}

func TestTimestampPrefix(t *testing.T) {
	t.Parallel()

	// 1469918176385 ms is the timestamp of the reference ULID 01ARYZ6S41...
	at := time.UnixMilli(1469918176385)
	assert.Equal(t, "01ARYZ6S41", newULIDAt(at)[:10])
}
