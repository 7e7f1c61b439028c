package telemetry

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source yields values in [0, 1). Every synthetic step consumes one value.
type Source interface {
	Next() float64
}

type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource seeds a PCG generator. A zero seed picks one from the clock.
func NewRandomSource(seed uint64) *RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *RandomSource) Next() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// SequenceSource replays fixed values in a loop.
type SequenceSource struct {
	mu     sync.Mutex
	values []float64
	pos    int
}

func NewSequenceSource(values ...float64) *SequenceSource {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &SequenceSource{values: values}
}

func (s *SequenceSource) Next() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}
