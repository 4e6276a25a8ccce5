package chart

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/BourgeoisBear/rasterm"
	"github.com/mattn/go-sixel"

	"melite/internal/galaxy"
	"melite/internal/log"
)

// Protocol is a terminal inline image protocol
type Protocol int

const (
	Sixel Protocol = iota
	Kitty
	ITerm
	// PNGFile writes the raw PNG bytes
	PNGFile
)

func (p Protocol) String() string {
	switch p {
	case Kitty:
		return "kitty"
	case ITerm:
		return "iterm"
	case PNGFile:
		return "png"
	default:
		return "sixel"
	}
}

// ParseProtocol accepts the names returned by Protocol.String, and "auto"
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectProtocol(), nil
	case "sixel":
		return Sixel, nil
	case "kitty":
		return Kitty, nil
	case "iterm", "iterm2":
		return ITerm, nil
	case "png":
		return PNGFile, nil
	}
	return Sixel, fmt.Errorf("unknown image protocol %q", s)
}

// DetectProtocol picks kitty or iTerm2 when the environment says so, and
// falls back to sixel
func DetectProtocol() Protocol {
	switch {
	case rasterm.IsKittyCapable():
		return Kitty
	case rasterm.IsItermCapable():
		return ITerm
	}
	return Sixel
}

// WriteTerminal writes a PNG image inline using protocol p
func WriteTerminal(w io.Writer, data []byte, p Protocol) error {
	if p == PNGFile {
		_, err := w.Write(data)
		return err
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode PNG: %w", err)
	}

	switch p {
	case Kitty:
		err = rasterm.KittyWriteImage(w, img, rasterm.KittyImgOpts{})
	case ITerm:
		err = rasterm.ItermWriteImage(w, img)
	default:
		err = writeSixel(w, img)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s image: %w", p, err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func writeSixel(w io.Writer, img image.Image) error {
	enc := sixel.NewEncoder(w)
	enc.Dither = true
	return enc.Encode(img)
}

// Source is the game state a chart is drawn from
type Source interface {
	Galaxy() *galaxy.Galaxy
	CurrentSystem() int
	Fuel() float64
	MaxFuel() float64
}

// Options sizes charts drawn by Command
type Options struct {
	Radius   uint
	Width    int
	Height   int
	Protocol Protocol
}

// Command returns a chart printer for the interpreter's chart command
func Command(src Source, opts Options) func(ctx context.Context, w io.Writer) error {
	return func(ctx context.Context, w io.Writer) error {
		c := Chart{
			Galaxy:  src.Galaxy(),
			Center:  src.CurrentSystem(),
			Fuel:    tenths(src.Fuel()),
			MaxFuel: tenths(src.MaxFuel()),
			Radius:  opts.Radius,
		}
		data, err := c.PNG(ctx, opts.Width, opts.Height)
		if err != nil {
			return err
		}
		log.Debug("chart drawn", "protocol", opts.Protocol, "bytes", len(data))
		return WriteTerminal(w, data, opts.Protocol)
	}
}

func tenths(ly float64) uint {
	if ly <= 0 {
		return 0
	}
	return uint(ly*10 + 0.5)
}
