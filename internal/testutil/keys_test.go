package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceKeyGenerator_ReturnsInOrder(t *testing.T) {
	gen := NewSequenceKeyGenerator("k1", "k2", "k3")

	assert.Equal(t, "k1", gen.Generate())
	assert.Equal(t, "k2", gen.Generate())
	assert.Equal(t, "k3", gen.Generate())
}

func TestSequenceKeyGenerator_PanicsWhenExhausted(t *testing.T) {
	gen := NewSequenceKeyGenerator("only")
	gen.Generate()

	assert.Panics(t, func() { gen.Generate() })
}

func TestSequenceKeyGenerator_ThreadSafe(t *testing.T) {
	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = "key"
	}
	gen := NewSequenceKeyGenerator(keys...)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				assert.Equal(t, "key", gen.Generate())
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestMustParse(t *testing.T) {
	ts := MustParse(t, "2024-01-15T10:30:00+05:30")

	assert.Equal(t, 5*3600+30*60, Offset(ts))
	assert.Equal(t, int64(1705294800), ts.Unix())
}
