package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTimestamp(t *testing.T) {
	ts := time.Date(2025, 12, 29, 19, 55, 8, 0, time.UTC)
	assert.Equal(t, "20251229_195508", FileTimestamp(ts))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "1.50", FormatSeconds(1500*time.Millisecond))
	assert.Equal(t, "0.00", FormatSeconds(0))
}

func TestFormatISO(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2025, 1, 2, 5, 4, 5, 123000000, loc)
	assert.Equal(t, "2025-01-02T03:04:05.123Z", FormatISO(ts))
}

func TestGenerateUUID(t *testing.T) {
	a := GenerateUUID()
	b := GenerateUUID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}
