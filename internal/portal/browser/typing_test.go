package browser

import (
	"testing"

	"github.com/go-rod/rod/lib/input"
	"github.com/stretchr/testify/assert"
)

func TestTextKeys_ASCII(t *testing.T) {
	keys := textKeys("abc123")

	assert.Len(t, keys, 6)
	assert.Equal(t, input.Key('a'), keys[0])
	assert.Equal(t, input.Key('3'), keys[5])
}

func TestTextKeys_AccentedSpanish(t *testing.T) {
	keys := textKeys("razón de póliza")

	// One key per rune, never per byte.
	assert.Len(t, keys, 15)
	for i, k := range keys {
		assert.NotEqual(t, input.Key(0), k, "key %d is a NUL event", i)
	}
	assert.Equal(t, input.Key('ó'), keys[3])
}

func TestTextKeys_Empty(t *testing.T) {
	assert.Empty(t, textKeys(""))
}
