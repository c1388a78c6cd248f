package dice

import (
	"math/rand"
	"sync"
)

// Source is the randomness provider for dice rolls. Implementations shared
// between goroutines must be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Intn(n int) int { return rand.Intn(n) }

// DefaultSource draws from the package-level math/rand generator.
var DefaultSource Source = globalSource{}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// NewSource returns a deterministic Source seeded with seed. It is safe for
// concurrent use.
func NewSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}
