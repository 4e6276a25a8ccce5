package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lave = 7

func TestTwistCyclesAfterEightGalaxies(t *testing.T) {
	s := BaseSeed
	for i := 0; i < Count; i++ {
		s = s.Next()
	}
	assert.Equal(t, BaseSeed, s)
}

func TestSeedFor(t *testing.T) {
	s, err := SeedFor(1)
	require.NoError(t, err)
	assert.Equal(t, BaseSeed, s)

	s, err = SeedFor(2)
	require.NoError(t, err)
	assert.Equal(t, BaseSeed.Next(), s)

	_, err = SeedFor(0)
	assert.ErrorIs(t, err, ErrInvalidGalaxy)
	_, err = SeedFor(9)
	assert.ErrorIs(t, err, ErrInvalidGalaxy)
}

func TestBuildGalaxyOne(t *testing.T) {
	g, err := Build(1)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Number)

	l := g.Systems[lave]
	assert.Equal(t, "Lave", l.Name)
	assert.Equal(t, lave, l.Number)
	assert.Equal(t, uint(20), l.X)
	assert.Equal(t, uint(173), l.Y)
	assert.Equal(t, RichAgricultural, l.Economy)
	assert.Equal(t, Dictatorship, l.Government)
	assert.Equal(t, uint(4), l.TechLevel)
	assert.Equal(t, uint(25), l.Population)
	assert.Equal(t, uint(7000), l.Productivity)
	assert.Equal(t, uint(4116), l.Radius)

	names := map[int]string{0: "Tibedied", 1: "Qube", 46: "Riedquat", 129: "Zaonce", 147: "Diso", 255: "Orerve"}
	for n, name := range names {
		assert.Equal(t, name, g.Systems[n].Name, "system %d", n)
	}
}

func TestBuildOtherGalaxies(t *testing.T) {
	g, err := Build(2)
	require.NoError(t, err)
	assert.Equal(t, "Ausis", g.Systems[0].Name)

	g, err = Build(8)
	require.NoError(t, err)
	assert.Equal(t, "Anesbi", g.Systems[0].Name)

	_, err = Build(9)
	assert.ErrorIs(t, err, ErrInvalidGalaxy)
}

func TestGeneratedValuesStayInRange(t *testing.T) {
	for n := 1; n <= Count; n++ {
		g, err := Build(n)
		require.NoError(t, err)
		for _, s := range g.Systems {
			assert.LessOrEqual(t, s.X, uint(255))
			assert.LessOrEqual(t, s.Y, uint(255))
			assert.LessOrEqual(t, uint8(s.Economy), uint8(PoorAgricultural))
			assert.LessOrEqual(t, uint8(s.Government), uint8(CorporateState))
			assert.LessOrEqual(t, s.TechLevel, uint(14))
			assert.NotEmpty(t, s.Name)
			if s.Government <= Feudal {
				assert.GreaterOrEqual(t, uint8(s.Economy), uint8(PoorIndustrial))
			}
		}
	}
}

func TestDistance(t *testing.T) {
	g, err := Build(1)
	require.NoError(t, err)

	tests := []struct {
		to   int
		want uint
	}{
		{lave, 0},
		{147, 36}, // Diso
		{129, 57}, // Zaonce
		{46, 70},  // Riedquat
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.Distance(lave, tt.to), g.Systems[tt.to].Name)
		assert.Equal(t, tt.want, g.Distance(tt.to, lave), "distance is symmetric")
	}
}

func TestLocal(t *testing.T) {
	g, err := Build(1)
	require.NoError(t, err)

	assert.Equal(t, []int{7, 39, 46, 55, 129, 147, 255}, g.Local(lave, 70))
	assert.Equal(t, []int{7, 55, 147}, g.Local(lave, 40))
	assert.Nil(t, g.Local(-1, 70))
}

func TestInRectangle(t *testing.T) {
	g, err := Build(1)
	require.NoError(t, err)

	got := g.InRectangle(20, 20, 173, 173)
	assert.Equal(t, []int{lave}, got)

	all := g.InRectangle(0, 255, 0, 255)
	assert.Len(t, all, Size)
}

func TestMatch(t *testing.T) {
	g, err := Build(1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		prefix string
		want   int
		ok     bool
	}{
		{"exact", "lave", lave, true},
		{"upper case", "DISO", 147, true},
		{"nearest of many", "ri", 46, true},
		{"nearest zaonce", "za", 129, true},
		{"no match", "xyzzy", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Match(tt.prefix, lave)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	g, err := Build(1)
	require.NoError(t, err)

	assert.Equal(t, "Lave is most famous for its vast rain forests and the Lavian tree grub.", Describe(g.Systems[lave]))
	assert.Equal(t, "This planet is a tedious place.", Describe(g.Systems[129]))
	assert.Equal(t, Describe(g.Systems[147]), Describe(g.Systems[147]), "descriptions are deterministic")
}

func TestAdjectival(t *testing.T) {
	assert.Equal(t, "Lavian", adjectival("Lave"))
	assert.Equal(t, "Leestian", adjectival("Leesti"))
	assert.Equal(t, "Disoian", adjectival("Diso"))
	assert.Equal(t, "Lavian", adjectival("LAVE"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Rich agricultural", RichAgricultural.String())
	assert.Equal(t, "Rich Agri", RichAgricultural.Short())
	assert.Equal(t, "Multiple Governments", MultiGovernment.String())
	assert.Equal(t, "Multi-gov", MultiGovernment.Short())
}
