package galaxy

// Seed is the six byte generator state a galaxy is built from. Each system
// consumes four tweaks of the seed.
type Seed struct {
	W0 uint16
	W1 uint16
	W2 uint16
}

// BaseSeed generates galaxy 1
var BaseSeed = Seed{W0: 0x5A4A, W1: 0x0248, W2: 0xB753}

// FastSeed is the four byte seed used for planet descriptions
type FastSeed struct {
	A, B, C, D uint8
}

// tweak advances the seed by one step of the 16-bit Fibonacci-like sequence
func (s *Seed) tweak() {
	t := s.W0 + s.W1 + s.W2
	s.W0 = s.W1
	s.W1 = s.W2
	s.W2 = t
}

// rotatel rotates an 8 bit value left by one
func rotatel(x uint16) uint16 {
	return 2*(x&127) + (x&128)>>7
}

// twist rotates both bytes of a word independently
func twist(x uint16) uint16 {
	return 256*rotatel(x>>8) + rotatel(x&255)
}

// Next returns the base seed of the following galaxy. Eight applications
// return to the starting seed.
func (s Seed) Next() Seed {
	return Seed{
		W0: twist(s.W0),
		W1: twist(s.W1),
		W2: twist(s.W2),
	}
}

// SeedFor returns the base seed of galaxy n (1..8)
func SeedFor(n int) (Seed, error) {
	if n < 1 || n > Count {
		return Seed{}, ErrInvalidGalaxy
	}
	s := BaseSeed
	for i := 1; i < n; i++ {
		s = s.Next()
	}
	return s, nil
}
