package theme

import "github.com/gdamore/tcell/v2"

// The sixteen DOS text mode colors
var (
	DOSBlack     = tcell.NewHexColor(0x000000)
	DOSRed       = tcell.NewHexColor(0x800000)
	DOSGreen     = tcell.NewHexColor(0x008000)
	DOSBrown     = tcell.NewHexColor(0x808000)
	DOSBlue      = tcell.NewHexColor(0x000080)
	DOSMagenta   = tcell.NewHexColor(0x800080)
	DOSCyan      = tcell.NewHexColor(0x008080)
	DOSLightGray = tcell.NewHexColor(0xC0C0C0)

	DOSDarkGray     = tcell.NewHexColor(0x808080)
	DOSLightRed     = tcell.NewHexColor(0xFF0000)
	DOSLightGreen   = tcell.NewHexColor(0x00FF00)
	DOSYellow       = tcell.NewHexColor(0xFFFF00)
	DOSLightBlue    = tcell.NewHexColor(0x0000FF)
	DOSLightMagenta = tcell.NewHexColor(0xFF00FF)
	DOSLightCyan    = tcell.NewHexColor(0x00FFFF)
	DOSWhite        = tcell.NewHexColor(0xFFFFFF)
)

var dosPalette = [16]tcell.Color{
	DOSBlack, DOSRed, DOSGreen, DOSBrown,
	DOSBlue, DOSMagenta, DOSCyan, DOSLightGray,
	DOSDarkGray, DOSLightRed, DOSLightGreen, DOSYellow,
	DOSLightBlue, DOSLightMagenta, DOSLightCyan, DOSWhite,
}

// TelixTheme is the blue and gray look of the old DOS terminal programs
type TelixTheme struct{}

// NewTelixTheme creates a new Telix theme instance
func NewTelixTheme() *TelixTheme {
	return &TelixTheme{}
}

func (t *TelixTheme) Name() string {
	return "telix"
}

func (t *TelixTheme) DefaultColors() DefaultColors {
	return DefaultColors{
		Background: DOSBlack,
		Foreground: DOSLightGray,
		Waiting:    DOSDarkGray,
	}
}

func (t *TelixTheme) DialogColors() DialogColors {
	return DialogColors{
		Background: DOSBlue,
		Foreground: DOSWhite,
		Border:     DOSWhite,
		Title:      DOSWhite,
		SelectedBg: DOSWhite,
		SelectedFg: DOSBlack,
		ButtonBg:   DOSLightGray,
		ButtonFg:   DOSBlack,
		FieldBg:    tcell.NewHexColor(0x000040),
		FieldFg:    DOSWhite,
	}
}

func (t *TelixTheme) TerminalColors() TerminalColors {
	return TerminalColors{
		Background: DOSBlack,
		Foreground: DOSLightGray,
		Border:     DOSLightGray,
		ScrollBar:  DOSDarkGray,
	}
}

func (t *TelixTheme) StatusColors() StatusColors {
	return StatusColors{
		Background:    DOSBlue,
		Foreground:    DOSLightGray,
		HighlightBg:   DOSRed,
		HighlightFg:   DOSWhite,
		ErrorBg:       DOSRed,
		ErrorFg:       DOSWhite,
		ReachableFg:   DOSLightGreen,
		UnreachableFg: DOSLightRed,
	}
}

func (t *TelixTheme) PanelColors() PanelColors {
	return PanelColors{
		Background: DOSBlack,
		Foreground: DOSLightGray,
		Border:     DOSLightGray,
		Title:      DOSLightGray,
		HeaderBg:   DOSBlack,
		HeaderFg:   DOSYellow,
		SelectedBg: DOSRed,
		SelectedFg: DOSWhite,
	}
}

func (t *TelixTheme) BorderStyle() BorderStyle {
	return BorderStyle{
		Color:      DOSLightGray,
		TitleColor: DOSLightGray,
		Padding:    0,
	}
}

func (t *TelixTheme) ANSIColorPalette() [16]tcell.Color {
	return dosPalette
}
