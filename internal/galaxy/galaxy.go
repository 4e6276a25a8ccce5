package galaxy

import (
	"errors"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Size is the number of systems in every galaxy
	Size = 256
	// Count is the number of galaxies
	Count = 8
)

var (
	ErrInvalidGalaxy = errors.New("invalid galaxy number")
	ErrInvalidSystem = errors.New("invalid system number")
)

// Galaxy is one fully generated galaxy of 256 systems
type Galaxy struct {
	Number  int
	Systems [Size]PlanetSystem
}

// Build generates galaxy n (1..8) from the base seed
func Build(n int) (*Galaxy, error) {
	seed, err := SeedFor(n)
	if err != nil {
		return nil, err
	}

	caser := cases.Title(language.English)
	g := &Galaxy{Number: n}
	for i := 0; i < Size; i++ {
		g.Systems[i] = makeSystem(&seed, caser)
		g.Systems[i].Number = i
	}
	return g, nil
}

// System returns system n of the galaxy
func (g *Galaxy) System(n int) (PlanetSystem, error) {
	if n < 0 || n >= Size {
		return PlanetSystem{}, ErrInvalidSystem
	}
	return g.Systems[n], nil
}

// Distance returns the distance between two systems in tenths of a light year
func Distance(a, b PlanetSystem) uint {
	dx := int(a.X) - int(b.X)
	dy := int(a.Y) - int(b.Y)
	return uint(math.Floor(4*math.Sqrt(float64(dx*dx+(dy*dy)/4)) + 0.5))
}

// Distance between systems a and b of this galaxy. Out of range numbers
// yield math.MaxUint.
func (g *Galaxy) Distance(a, b int) uint {
	if a < 0 || a >= Size || b < 0 || b >= Size {
		return math.MaxUint
	}
	return Distance(g.Systems[a], g.Systems[b])
}

// Local returns the numbers of all systems within maxDist of from, including
// from itself, in galaxy order.
func (g *Galaxy) Local(from int, maxDist uint) []int {
	if from < 0 || from >= Size {
		return nil
	}
	var out []int
	for i := range g.Systems {
		if Distance(g.Systems[from], g.Systems[i]) <= maxDist {
			out = append(out, i)
		}
	}
	return out
}

// InRectangle returns the systems whose raw coordinates fall inside the
// inclusive rectangle.
func (g *Galaxy) InRectangle(left, right, bottom, top uint) []int {
	var out []int
	for i, s := range g.Systems {
		if s.X >= left && s.X <= right && s.Y >= bottom && s.Y <= top {
			out = append(out, i)
		}
	}
	return out
}

// Match finds the system whose name starts with prefix (ignoring case). When
// several match, the one nearest to from wins.
func (g *Galaxy) Match(prefix string, from int) (int, bool) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return 0, false
	}
	best := -1
	bestDist := uint(math.MaxUint)
	for i, s := range g.Systems {
		if !strings.HasPrefix(strings.ToLower(s.Name), prefix) {
			continue
		}
		d := g.Distance(from, i)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best >= 0
}
