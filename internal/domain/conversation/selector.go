package conversation

import (
	"math/rand"
	"sync"
	"time"
)

// ResponseSelector picks one response text from a state's candidates. The
// production default is pseudo-random; tests inject a seeded selector so runs
// are reproducible.
type ResponseSelector interface {
	Select(candidates []string) string
}

type randomSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSelector returns a selector seeded with the given value.
func NewRandomSelector(seed int64) ResponseSelector {
	return &randomSelector{rng: rand.New(rand.NewSource(seed))}
}

// NewSelector returns the production selector, seeded from the clock.
func NewSelector() ResponseSelector {
	return NewRandomSelector(time.Now().UnixNano())
}

func (s *randomSelector) Select(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return candidates[s.rng.Intn(len(candidates))]
}
