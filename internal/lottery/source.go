package lottery

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
)

// Source draws a uniform integer in [0, n).
type Source interface {
	IntN(n int) (int, error)
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

func (CryptoSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid range %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

type seededSource struct {
	r *mrand.Rand
}

// NewSeededSource returns a reproducible source for tests and replays.
func NewSeededSource(seed uint64) Source {
	return &seededSource{r: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid range %d", n)
	}
	return s.r.IntN(n), nil
}
