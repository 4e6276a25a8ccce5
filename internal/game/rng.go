package game

import "math/rand"

// DefaultSeed makes every new game repeatable
const DefaultSeed = 12345

// maxRandDraws bounds the native draws a save may ask Restore to replay
const maxRandDraws = 1 << 24

// generator produces the fluctuation bytes used when arriving at a system.
// Native mode uses the platform generator; otherwise the portable LCG
// supplied by D. McDonnell is used so games replay identically everywhere.
// The native source cannot be serialised, so it counts its draws since the
// last reseed and is restored by replaying them.
type generator struct {
	native bool
	last   uint32
	src    *rand.Rand
	draws  uint64
}

func newGenerator(seed uint32, native bool) *generator {
	g := &generator{native: native}
	g.seed(seed)
	return g
}

func (g *generator) seed(s uint32) {
	g.last = s - 1
	g.src = rand.New(rand.NewSource(int64(s)))
	g.draws = 0
}

// replay reseeds with s and discards the first n native draws
func (g *generator) replay(s uint32, n uint64) {
	g.seed(s)
	for range n {
		g.src.Int31()
	}
	g.draws = n
}

func (g *generator) next() uint32 {
	if g.native {
		g.draws++
		return uint32(g.src.Int31())
	}
	l := g.last
	r := (((((((((((l << 3) - l) << 3) + l) << 1) + l) << 4) - l) << 1) - l) + 0xe60) & 0x7fffffff
	g.last = r - 1
	return r
}

func (g *generator) byte() uint8 {
	return uint8(g.next() & 0xFF)
}
