package galaxy

import (
	"strings"

	"golang.org/x/text/cases"
)

// Economy type of a system, from rich industrial to poor agricultural
type Economy uint8

const (
	RichIndustrial Economy = iota
	AverageIndustrial
	PoorIndustrial
	MainlyIndustrial
	MainlyAgricultural
	RichAgricultural
	AverageAgricultural
	PoorAgricultural
)

var economyNames = [...]string{
	"Rich industrial",
	"Average industrial",
	"Poor industrial",
	"Mainly industrial",
	"Mainly agricultural",
	"Rich agricultural",
	"Average agricultural",
	"Poor agricultural",
}

var economyShort = [...]string{
	"Rich Ind", "Average Ind", "Poor Ind", "Mainly Ind",
	"Mainly Agri", "Rich Agri", "Average Agri", "Poor Agri",
}

func (e Economy) String() string {
	if int(e) < len(economyNames) {
		return economyNames[e]
	}
	return "unknown"
}

// Short returns the abbreviated label used in compact listings
func (e Economy) Short() string {
	if int(e) < len(economyShort) {
		return economyShort[e]
	}
	return "?"
}

// Government type of a system
type Government uint8

const (
	Anarchy Government = iota
	Feudal
	MultiGovernment
	Dictatorship
	Communist
	Confederacy
	Democracy
	CorporateState
)

var governmentNames = [...]string{
	"Anarchy",
	"Feudalism",
	"Multiple Governments",
	"Dictatorship",
	"Communism",
	"Confederacy",
	"Democracy",
	"Corporate State",
}

var governmentShort = [...]string{
	"Anarchy", "Feudal", "Multi-gov", "Dictatorship",
	"Communist", "Confederacy", "Democracy", "Corporate State",
}

func (g Government) String() string {
	if int(g) < len(governmentNames) {
		return governmentNames[g]
	}
	return "unknown"
}

// Short returns the abbreviated label used in compact listings
func (g Government) Short() string {
	if int(g) < len(governmentShort) {
		return governmentShort[g]
	}
	return "?"
}

// PlanetSystem holds the generated data of one star system. Coordinates are
// one byte each; TechLevel is zero based.
type PlanetSystem struct {
	Number          int
	X               uint
	Y               uint
	Economy         Economy
	Government      Government
	TechLevel       uint
	Population      uint // tenths of a billion
	Productivity    uint // M CR
	Radius          uint // km
	Name            string
	DescriptionSeed FastSeed
}

// digram table for system names; dots print as nothing
const namePairs = "..lexegezacebiso" +
	"usesarmaindirea." +
	"eratenberalaveti" +
	"edorquanteisrion"

// makeSystem generates the system for the current seed and advances the seed
// by four tweaks.
func makeSystem(s *Seed, caser cases.Caser) PlanetSystem {
	var sys PlanetSystem
	longName := s.W0&64 != 0

	sys.X = uint(s.W1 >> 8)
	sys.Y = uint(s.W0 >> 8)

	gov := uint((s.W1 >> 3) & 7)
	econ := uint((s.W0 >> 8) & 7)
	if gov <= 1 {
		econ |= 2
	}
	sys.Government = Government(gov)
	sys.Economy = Economy(econ)

	// C simulation of the 6502 LSR then ADC
	tech := uint((s.W1>>8)&3) + (econ ^ 7)
	tech += gov >> 1
	if gov&1 == 1 {
		tech++
	}
	sys.TechLevel = tech

	sys.Population = 4*tech + econ + gov + 1
	sys.Productivity = ((econ ^ 7) + 3) * (gov + 4) * sys.Population * 8
	sys.Radius = 256*(uint((s.W2>>8)&15)+11) + sys.X

	sys.DescriptionSeed = FastSeed{
		A: uint8(s.W1 & 0xFF),
		B: uint8(s.W1 >> 8),
		C: uint8(s.W2 & 0xFF),
		D: uint8(s.W2 >> 8),
	}

	var pairs [4]int
	for i := range pairs {
		pairs[i] = 2 * int((s.W2>>8)&31)
		s.tweak()
	}

	count := 3
	if longName {
		count = 4
	}
	var name strings.Builder
	for i := 0; i < count; i++ {
		for _, c := range []byte{namePairs[pairs[i]], namePairs[pairs[i]+1]} {
			if c != '.' {
				name.WriteByte(c)
			}
		}
	}
	sys.Name = caser.String(name.String())

	return sys
}
