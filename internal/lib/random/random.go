package random

import (
	"math/rand"
	"time"
)

// Source yields the uniform draw the prize banding walks against. It is an
// interface so tests can pin the drawn value.
type Source interface {
	// Percent returns a uniform value in [0, 100).
	Percent() float64
}

type source struct {
	rnd *rand.Rand
}

func NewPercentSource() Source {
	return &source{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *source) Percent() float64 {
	return s.rnd.Float64() * 100
}
