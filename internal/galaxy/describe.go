package galaxy

import (
	"strings"
	"unicode"
)

// phrase codes 0x81..0xA4, five options each
var phrases = [...][5]string{
	/* 81 */ {"fabled", "notable", "well known", "famous", "noted"},
	/* 82 */ {"very", "mildly", "most", "reasonably", ""},
	/* 83 */ {"ancient", "\x95", "great", "vast", "pink"},
	/* 84 */ {"\x9E \x9D plantations", "mountains", "\x9C", "\x94 forests", "oceans"},
	/* 85 */ {"shyness", "silliness", "mating traditions", "loathing of \x86", "love for \x86"},
	/* 86 */ {"food blenders", "tourists", "poetry", "discos", "\x8E"},
	/* 87 */ {"talking tree", "crab", "bat", "lobst", "\xB2"},
	/* 88 */ {"beset", "plagued", "ravaged", "cursed", "scourged"},
	/* 89 */ {"\x96 civil war", "\x9B \x98 \x99s", "a \x9B disease", "\x96 earthquakes", "\x96 solar activity"},
	/* 8A */ {"its \x83 \x84", "the \xB1 \x98 \x99", "its inhabitants' \x9A \x85", "\xA1", "its \x8D \x8E"},
	/* 8B */ {"juice", "brandy", "water", "brew", "gargle blasters"},
	/* 8C */ {"\xB2", "\xB1 \x99", "\xB1 \xB2", "\xB1 \x9B", "\x9B \xB2"},
	/* 8D */ {"fabulous", "exotic", "hoopy", "unusual", "exciting"},
	/* 8E */ {"cuisine", "night life", "casinos", "sit coms", " \xA1 "},
	/* 8F */ {"\xB0", "The planet \xB0", "The world \xB0", "This planet", "This world"},
	/* 90 */ {"n unremarkable", " boring", " dull", " tedious", " revolting"},
	/* 91 */ {"planet", "world", "place", "little planet", "dump"},
	/* 92 */ {"wasp", "moth", "grub", "ant", "\xB2"},
	/* 93 */ {"poet", "arts graduate", "yak", "snail", "slug"},
	/* 94 */ {"tropical", "dense", "rain", "impenetrable", "exuberant"},
	/* 95 */ {"funny", "wierd", "unusual", "strange", "peculiar"},
	/* 96 */ {"frequent", "occasional", "unpredictable", "dreadful", "deadly"},
	/* 97 */ {"\x82 \x81 for \x8A", "\x82 \x81 for \x8A and \x8A", "\x88 by \x89", "\x82 \x81 for \x8A but \x88 by \x89", "a\x90 \x91"},
	/* 98 */ {"\x9B", "mountain", "edible", "tree", "spotted"},
	/* 99 */ {"\x9F", "\xA0", "\x87oid", "\x93", "\x92"},
	/* 9A */ {"ancient", "exceptional", "eccentric", "ingrained", "\x95"},
	/* 9B */ {"killer", "deadly", "evil", "lethal", "vicious"},
	/* 9C */ {"parking meters", "dust clouds", "ice bergs", "rock formations", "volcanoes"},
	/* 9D */ {"plant", "tulip", "banana", "corn", "\xB2weed"},
	/* 9E */ {"\xB2", "\xB1 \xB2", "\xB1 \x9B", "inhabitant", "\xB1 \xB2"},
	/* 9F */ {"shrew", "beast", "bison", "snake", "wolf"},
	/* A0 */ {"leopard", "cat", "monkey", "goat", "fish"},
	/* A1 */ {"\x8C \x8B", "\xB1 \x9F \xA2", "its \x8D \xA0 \xA2", "\xA3 \xA4", "\x8C \x8B"},
	/* A2 */ {"meat", "cutlet", "steak", "burgers", "soup"},
	/* A3 */ {"ice", "mud", "Zero-G", "vacuum", "\xB1 ultra"},
	/* A4 */ {"hockey", "cricket", "karate", "polo", "tennis"},
}

// digrams for made up words; the table runs on into the name digrams
const wordPairs = "ABOUSEITILETSTONLONUTHNO" + "..LEXEGEZACEBISOUSESARMAINDIREA.ERATENBERALAVETIEDORQUANTEISRION"

const (
	codeName      = 0xB0
	codeNameIan   = 0xB1
	codeRandomWrd = 0xB2
)

const descriptionTemplate = "\x8F is \x97."

// descRand is the byte generator behind planet descriptions
type descRand FastSeed

func (r *descRand) next() uint8 {
	x := (int(r.A) * 2) & 0xFF
	a := x + int(r.C)
	if r.A > 127 {
		a++
	}
	r.A = uint8(a & 0xFF)
	r.C = uint8(x)

	a /= 256 // carry
	x = int(r.B)
	a = (a + x + int(r.D)) & 0xFF
	r.B = uint8(a)
	r.D = uint8(x)
	return uint8(a)
}

// Describe returns the generated one-line description of a system. The
// result depends only on the system's description seed.
func Describe(sys PlanetSystem) string {
	rnd := descRand(sys.DescriptionSeed)
	var out strings.Builder
	expand(descriptionTemplate, &sys, &rnd, &out)
	return out.String()
}

func expand(source string, sys *PlanetSystem, rnd *descRand, out *strings.Builder) {
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case c < 0x80:
			out.WriteByte(c)
		case c >= 0x81 && c <= 0xA4:
			r := rnd.next()
			opt := 0
			for _, limit := range []uint8{0x33, 0x66, 0x99, 0xCC} {
				if r >= limit {
					opt++
				}
			}
			expand(phrases[c-0x81][opt], sys, rnd, out)
		case c == codeName:
			out.WriteString(properName(sys.Name))
		case c == codeNameIan:
			out.WriteString(adjectival(sys.Name))
		case c == codeRandomWrd:
			out.WriteString(randomWord(rnd))
		}
	}
}

func properName(name string) string {
	if name == "" {
		return name
	}
	return name[:1] + strings.ToLower(name[1:])
}

// adjectival turns "Lave" into "Lavian" and "Diso" into "Disoian"
func adjectival(name string) string {
	n := properName(name)
	if len(n) > 1 {
		switch unicode.ToUpper(rune(n[len(n)-1])) {
		case 'E', 'I':
			n = n[:len(n)-1]
		}
	}
	return n + "ian"
}

func randomWord(rnd *descRand) string {
	var w strings.Builder
	length := int(rnd.next() & 3)
	for i := 0; i <= length; i++ {
		x := int(rnd.next() & 0x3e)
		if wordPairs[x] != '.' {
			w.WriteByte(wordPairs[x])
		}
		if i > 0 && wordPairs[x+1] != '.' {
			w.WriteByte(wordPairs[x+1])
		}
	}
	return properName(w.String())
}
