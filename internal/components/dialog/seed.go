package dialog

import (
	"math/rand/v2"
	"sync"
)

// Seeder hands out reseed tokens. Consecutive tokens always differ.
type Seeder struct {
	mu   sync.Mutex
	last float64
	rand func() float64
}

func NewSeeder() *Seeder {
	return &Seeder{rand: rand.Float64}
}

func (s *Seeder) Next() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.rand()
	for token == s.last {
		token = s.rand()
	}
	s.last = token
	return token
}
