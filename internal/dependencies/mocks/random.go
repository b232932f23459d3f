package mocks

import (
	"github.com/mcoot/gamehub/internal/dependencies/random"
)

// MockRandom returns queued strings, then falls back to a fixed value
type MockRandom struct {
	StringResults []string
	stringIndex   int
	Fallback      string
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{Fallback: "zzzz"}
}

// String returns the next queued result, or Fallback if none remain
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		return r.Fallback
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.StringResults = nil
	r.stringIndex = 0
}
