package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTransactionID(t *testing.T) {
	id := GenerateTransactionID("yappy")

	parts := strings.Split(id, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "TXN", parts[0])
	assert.Len(t, parts[1], 12)
	assert.Equal(t, "YAPPY", parts[2])
}

func TestGenerateTransactionID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateTransactionID("CARD")
		assert.False(t, seen[id], "duplicate transaction id %s", id)
		seen[id] = true
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	number := GenerateOrderNumber()

	parts := strings.Split(number, "-")
	require.Len(t, parts, 4)
	assert.Equal(t, "PED", parts[0])
	assert.Len(t, parts[1], 8)
	assert.Len(t, parts[2], 6)
	assert.Len(t, parts[3], 4)
}
