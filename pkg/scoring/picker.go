package scoring

import (
	"math/rand/v2"
	"sync"
)

// Picker is the randomness source for the few intentionally random choices
// (shock phrase, one alternative per device). Inject a seeded picker to pin
// them in tests.
type Picker interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

// NewPicker returns a goroutine-safe picker seeded with seed.
func NewPicker(seed uint64) Picker {
	return &lockedPicker{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func randomPicker() Picker {
	return &lockedPicker{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

type lockedPicker struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (p *lockedPicker) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.r.IntN(n)
}

// FixedPicker always picks the same index, clamped to the slice length.
type FixedPicker int

func (f FixedPicker) IntN(n int) int {
	return min(int(f), n-1)
}
