package klondike

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Shuffler permutes a deck in place before it is dealt.
type Shuffler interface {
	Shuffle(cards []Card)
}

// CryptoShuffler is a Fisher-Yates shuffle fed by crypto/rand.
type CryptoShuffler struct{}

func (CryptoShuffler) Shuffle(cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		var b [8]byte
		_, _ = crand.Read(b[:])
		j := int(binary.BigEndian.Uint64(b[:]) % uint64(i+1))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// SeededShuffler produces the same permutation for the same seed.
type SeededShuffler struct {
	Seed uint64
}

func (s SeededShuffler) Shuffle(cards []Card) {
	r := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
}

// OrderedShuffler leaves the deck untouched. Dealing from it is fully
// predictable, which tests rely on.
type OrderedShuffler struct{}

func (OrderedShuffler) Shuffle([]Card) {}

// ShufflerFor returns a SeededShuffler for a non-zero seed and a
// CryptoShuffler otherwise.
func ShufflerFor(seed uint64) Shuffler {
	if seed == 0 {
		return CryptoShuffler{}
	}
	return SeededShuffler{Seed: seed}
}
