// Package uuid generates layout identifiers behind an interface so tests
// can make them predictable
package uuid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator is an interface for generating UUIDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new random UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// SequentialGenerator hands out prefix-1, prefix-2, ... and is safe for
// concurrent use
type SequentialGenerator struct {
	prefix string
	next   atomic.Int64
}

// NewSequentialGenerator creates a generator of predictable IDs
func NewSequentialGenerator(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// New returns the next ID in sequence
func (g *SequentialGenerator) New() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1))
}

// IsValid reports whether id parses as a UUID
func IsValid(id string) bool {
	return uuid.Validate(id) == nil
}
