package theme

import "github.com/gdamore/tcell/v2"

// MonoTheme uses the terminal's own default colors and reverse video for
// selection, for terminals where the DOS palette is unreadable.
type MonoTheme struct{}

// NewMonoTheme creates a new monochrome theme
func NewMonoTheme() *MonoTheme {
	return &MonoTheme{}
}

func (m *MonoTheme) Name() string {
	return "mono"
}

func (m *MonoTheme) DefaultColors() DefaultColors {
	return DefaultColors{
		Background: tcell.ColorDefault,
		Foreground: tcell.ColorDefault,
		Waiting:    tcell.ColorDefault,
	}
}

func (m *MonoTheme) DialogColors() DialogColors {
	return DialogColors{
		Background: tcell.ColorDefault,
		Foreground: tcell.ColorDefault,
		Border:     tcell.ColorDefault,
		Title:      tcell.ColorDefault,
		SelectedBg: tcell.ColorWhite,
		SelectedFg: tcell.ColorBlack,
		ButtonBg:   tcell.ColorWhite,
		ButtonFg:   tcell.ColorBlack,
		FieldBg:    tcell.ColorDefault,
		FieldFg:    tcell.ColorDefault,
	}
}

func (m *MonoTheme) TerminalColors() TerminalColors {
	return TerminalColors{
		Background: tcell.ColorDefault,
		Foreground: tcell.ColorDefault,
		Border:     tcell.ColorDefault,
		ScrollBar:  tcell.ColorDefault,
	}
}

func (m *MonoTheme) StatusColors() StatusColors {
	return StatusColors{
		Background:    tcell.ColorWhite,
		Foreground:    tcell.ColorBlack,
		HighlightBg:   tcell.ColorBlack,
		HighlightFg:   tcell.ColorWhite,
		ErrorBg:       tcell.ColorBlack,
		ErrorFg:       tcell.ColorWhite,
		ReachableFg:   tcell.ColorDefault,
		UnreachableFg: tcell.ColorGray,
	}
}

func (m *MonoTheme) PanelColors() PanelColors {
	return PanelColors{
		Background: tcell.ColorDefault,
		Foreground: tcell.ColorDefault,
		Border:     tcell.ColorDefault,
		Title:      tcell.ColorDefault,
		HeaderBg:   tcell.ColorDefault,
		HeaderFg:   tcell.ColorDefault,
		SelectedBg: tcell.ColorWhite,
		SelectedFg: tcell.ColorBlack,
	}
}

func (m *MonoTheme) BorderStyle() BorderStyle {
	return BorderStyle{
		Color:      tcell.ColorDefault,
		TitleColor: tcell.ColorDefault,
	}
}

// ANSIColorPalette falls back to the DOS palette; mono only changes the
// chrome around the console.
func (m *MonoTheme) ANSIColorPalette() [16]tcell.Color {
	return dosPalette
}
