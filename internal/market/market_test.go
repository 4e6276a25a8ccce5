package market

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"melite/internal/galaxy"
)

func TestGenerateLaveAtFluctuationZero(t *testing.T) {
	c := Classic(false)
	m := Generate(&c, 0x00, galaxy.RichAgricultural)

	want := [NumGoods][2]uint{
		{36, 16}, {60, 15}, {200, 17}, {60, 0}, {232, 20}, {944, 14},
		{496, 55}, {896, 0}, {588, 10}, {332, 12}, {756, 0}, {524, 9},
		{108, 58}, {368, 7}, {644, 1}, {160, 0}, {512, 0},
	}
	for i, w := range want {
		assert.Equal(t, w[0], m.Price[i], "price of %s", c[i].Name)
		assert.Equal(t, w[1], m.Quantity[i], "quantity of %s", c[i].Name)
	}
}

func TestGenerateFluctuationRaisesStock(t *testing.T) {
	c := Classic(false)
	m := Generate(&c, 0xFF, galaxy.RichAgricultural)

	assert.Equal(t, uint(40), m.Price[Food])
	assert.Equal(t, uint(17), m.Quantity[Food])
	assert.Equal(t, uint(26), m.Quantity[Slaves])
	assert.Equal(t, uint(61), m.Quantity[Minerals])
}

func TestGenerateInvariants(t *testing.T) {
	c := Classic(false)
	for econ := galaxy.RichIndustrial; econ <= galaxy.PoorAgricultural; econ++ {
		for f := 0; f < 256; f++ {
			m := Generate(&c, uint8(f), econ)
			for i := range m.Price {
				assert.Zero(t, m.Price[i]%4)
				assert.LessOrEqual(t, m.Quantity[i], uint(63))
			}
			assert.Zero(t, m.Quantity[AlienItems])
		}
	}
}

func TestClassicNames(t *testing.T) {
	c := Classic(false)
	assert.Equal(t, "Slaves", c[Slaves].Name)
	assert.Equal(t, Grams, c[GemStones].Unit)
	assert.Equal(t, "kg", c[Gold].Unit.String())

	pc := Classic(true)
	assert.Equal(t, "Robot Slaves", pc[Slaves].Name)
	assert.Equal(t, "Beverages", pc[Liquor].Name)
	assert.Equal(t, "Rare Species", pc[Narcotics].Name)
	assert.Equal(t, "Slaves", classic[Slaves].Name, "package table is not modified")
}

func TestLookup(t *testing.T) {
	c := Classic(false)
	tests := []struct {
		prefix string
		want   int
		ok     bool
	}{
		{"food", Food, true},
		{"FO", Food, true},
		{"al", Alloys, true},
		{"ali", AlienItems, true},
		{"gem", GemStones, true},
		{"", 0, false},
		{"spice", 0, false},
	}
	for _, tt := range tests {
		got, ok := c.Lookup(tt.prefix)
		assert.Equal(t, tt.ok, ok, tt.prefix)
		if ok {
			assert.Equal(t, tt.want, got, tt.prefix)
		}
	}
}
