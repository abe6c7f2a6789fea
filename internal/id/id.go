// Package id generates identifiers for monitor instances.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Source produces unique identifiers.
type Source interface {
	NewID() (uuid.UUID, error)
}

// Generator creates time ordered UUIDv7 identifiers, so events sort by the
// moment their monitor was opened.
type Generator struct{}

var _ Source = Generator{}

// New returns a Generator.
func New() Generator {
	return Generator{}
}

// NewID returns a fresh UUIDv7.
func (Generator) NewID() (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate uuid7: %w", err)
	}
	return id, nil
}
