package testutil

import "sync"

// SequenceKeyGenerator returns predetermined entity keys in order.
//
// This enables deterministic store contents and golden output comparison.
//
// Thread-safety: SequenceKeyGenerator is safe for concurrent use via internal mutex.
type SequenceKeyGenerator struct {
	mu   sync.Mutex
	keys []string
	idx  int
}

// NewSequenceKeyGenerator creates a generator that returns keys in order.
//
// Example:
//
//	gen := NewSequenceKeyGenerator("k1", "k2")
//	gen.Generate() // "k1"
//	gen.Generate() // "k2"
//	gen.Generate() // panic: all keys exhausted
func NewSequenceKeyGenerator(keys ...string) *SequenceKeyGenerator {
	return &SequenceKeyGenerator{keys: keys}
}

// Generate returns the next predetermined key.
//
// Panics if all keys have been consumed. A test that stores more
// unkeyed entities than it planned for is misconfigured.
func (g *SequenceKeyGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.keys) {
		panic("SequenceKeyGenerator: all keys exhausted")
	}
	key := g.keys[g.idx]
	g.idx++
	return key
}
