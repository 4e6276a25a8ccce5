package market

import (
	"fmt"
	"strings"

	"melite/internal/galaxy"
)

// Unit a commodity is traded in. Only tonnes take up cargo space.
type Unit uint8

const (
	Tonnes Unit = iota
	Kilograms
	Grams
)

func (u Unit) String() string {
	switch u {
	case Tonnes:
		return "t"
	case Kilograms:
		return "kg"
	case Grams:
		return "g"
	}
	return "?"
}

// Commodity is one row of the 6502 trade table
type Commodity struct {
	Name         string
	BasePrice    uint8
	Gradient     int
	BaseQuantity uint8
	Mask         uint8
	Unit         Unit
}

const (
	Food = iota
	Textiles
	Radioactives
	Slaves
	Liquor
	Luxuries
	Narcotics
	Computers
	Machinery
	Alloys
	Firearms
	Furs
	Minerals
	Gold
	Platinum
	GemStones
	AlienItems

	// NumGoods is the size of every catalog
	NumGoods
)

// Catalog is the ordered table of tradeable goods
type Catalog [NumGoods]Commodity

var classic = Catalog{
	{"Food", 0x13, -0x02, 0x06, 0x01, Tonnes},
	{"Textiles", 0x14, -0x01, 0x0A, 0x03, Tonnes},
	{"Radioactives", 0x41, -0x03, 0x02, 0x07, Tonnes},
	{"Slaves", 0x28, -0x05, 0xE2, 0x1F, Tonnes},
	{"Liquor/Wines", 0x53, -0x05, 0xFB, 0x0F, Tonnes},
	{"Luxuries", 0xC4, +0x08, 0x36, 0x03, Tonnes},
	{"Narcotics", 0xEB, +0x1D, 0x08, 0x78, Tonnes},
	{"Computers", 0x9A, +0x0E, 0x38, 0x03, Tonnes},
	{"Machinery", 0x75, +0x06, 0x28, 0x07, Tonnes},
	{"Alloys", 0x4E, +0x01, 0x11, 0x1F, Tonnes},
	{"Firearms", 0x7C, +0x0D, 0x1D, 0x07, Tonnes},
	{"Furs", 0xB0, -0x09, 0xDC, 0x3F, Tonnes},
	{"Minerals", 0x20, -0x01, 0x35, 0x03, Tonnes},
	{"Gold", 0x61, -0x01, 0x42, 0x07, Kilograms},
	{"Platinum", 0xAB, -0x02, 0x37, 0x1F, Kilograms},
	{"Gem-Stones", 0x2D, -0x01, 0xFA, 0x0F, Grams},
	{"Alien Items", 0x35, +0x0F, 0xC0, 0x07, Tonnes},
}

// Classic returns the trade table. With politicallyCorrect set the NES
// names are used for slaves, liquor and narcotics.
func Classic(politicallyCorrect bool) Catalog {
	c := classic
	if politicallyCorrect {
		c[Slaves].Name = "Robot Slaves"
		c[Liquor].Name = "Beverages"
		c[Narcotics].Name = "Rare Species"
	}
	return c
}

// Lookup finds a good by case-insensitive name prefix. The first match in
// table order wins.
func (c *Catalog) Lookup(prefix string) (int, bool) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return 0, false
	}
	for i, g := range c {
		if strings.HasPrefix(strings.ToLower(g.Name), prefix) {
			return i, true
		}
	}
	return 0, false
}

// Market is the price (tenths of a credit) and stock of every good at one
// system visit.
type Market struct {
	Price    [NumGoods]uint
	Quantity [NumGoods]uint
}

// Generate builds the market of a system with the given economy for one
// fluctuation byte.
func Generate(c *Catalog, fluct uint8, economy galaxy.Economy) Market {
	var m Market
	for i, g := range c {
		product := int(economy) * g.Gradient
		changing := int(fluct & g.Mask)

		q := (int(g.BaseQuantity) + changing - product) & 0xFF
		if q&0x80 != 0 {
			q = 0 // clip to positive 8-bit
		}
		m.Quantity[i] = uint(q & 0x3F)

		p := (int(g.BasePrice) + changing + product) & 0xFF
		m.Price[i] = uint(p * 4)
	}
	m.Quantity[AlienItems] = 0
	return m
}

func (m Market) String() string {
	var b strings.Builder
	for i := range m.Price {
		fmt.Fprintf(&b, "%2d %6.1f %2d\n", i, float64(m.Price[i])/10, m.Quantity[i])
	}
	return b.String()
}
