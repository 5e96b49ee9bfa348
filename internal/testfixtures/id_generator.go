package testfixtures

import (
	"fmt"
	"sync/atomic"
)

// IDGenerator yields deterministic "prefix-N" identifiers so tests can
// address the sessions and documents they create by name.
type IDGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewIDGenerator builds a generator for the given prefix, defaulting to "id"
// when empty.
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence, starting at prefix-1.
func (g *IDGenerator) Next() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.counter.Add(1))
}

// NextFunc exposes Next as an injectable `func() string`. A nil generator
// yields empty identifiers.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}

// Reset rewinds the sequence so a fresh fixture sees prefix-1 again.
func (g *IDGenerator) Reset() {
	g.counter.Store(0)
}
