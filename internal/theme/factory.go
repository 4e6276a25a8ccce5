package theme

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ThemedComponents creates tview primitives styled with a theme while still
// allowing manual styling afterwards
type ThemedComponents struct {
	theme Theme
}

// NewThemedComponents creates a new themed components factory
func NewThemedComponents(theme Theme) *ThemedComponents {
	return &ThemedComponents{theme: theme}
}

// Theme returns the theme the factory styles with
func (tc *ThemedComponents) Theme() Theme {
	return tc.theme
}

// NewList creates a bordered list with theme applied
func (tc *ThemedComponents) NewList() *tview.List {
	list := tview.NewList()
	colors := tc.theme.PanelColors()
	border := tc.theme.BorderStyle()

	list.SetBackgroundColor(colors.Background)
	list.SetMainTextColor(colors.Foreground)
	list.SetSecondaryTextColor(tc.theme.DefaultColors().Waiting)
	list.SetSelectedTextColor(colors.SelectedFg)
	list.SetSelectedBackgroundColor(colors.SelectedBg)
	list.SetBorderColor(colors.Border)
	list.SetTitleColor(colors.Title)
	list.SetBorder(true)
	list.SetBorderPadding(border.Padding, border.Padding, border.Padding, border.Padding)

	return list
}

// NewModal creates a new modal with theme applied
func (tc *ThemedComponents) NewModal() *tview.Modal {
	modal := tview.NewModal()
	colors := tc.theme.DialogColors()

	modal.SetBackgroundColor(colors.Background)
	modal.SetTextColor(colors.Foreground)
	modal.SetButtonBackgroundColor(colors.ButtonBg)
	modal.SetButtonTextColor(colors.ButtonFg)

	return modal
}

// NewTextView creates a console style text view
func (tc *ThemedComponents) NewTextView() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.TerminalColors()
	border := tc.theme.BorderStyle()

	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetBorderColor(colors.Border)
	textView.SetTitleColor(border.TitleColor)

	return textView
}

// NewInputField creates a new input field with theme applied
func (tc *ThemedComponents) NewInputField() *tview.InputField {
	input := tview.NewInputField()
	colors := tc.theme.TerminalColors()

	input.SetBackgroundColor(colors.Background)
	input.SetFieldBackgroundColor(colors.Background)
	input.SetFieldTextColor(colors.Foreground)
	input.SetLabelColor(colors.Foreground)

	return input
}

// NewTable creates a bordered table with theme applied
func (tc *ThemedComponents) NewTable() *tview.Table {
	table := tview.NewTable()
	colors := tc.theme.PanelColors()

	table.SetBackgroundColor(colors.Background)
	table.SetBorderColor(colors.Border)
	table.SetTitleColor(colors.Title)
	table.SetBorder(true)
	table.SetSelectedStyle(tcell.StyleDefault.
		Background(colors.SelectedBg).
		Foreground(colors.SelectedFg))

	return table
}

// NewFlex creates a new flex with theme applied
func (tc *ThemedComponents) NewFlex() *tview.Flex {
	flex := tview.NewFlex()
	flex.SetBackgroundColor(tc.theme.TerminalColors().Background)
	return flex
}

// NewStatusBar creates a new text view styled for status bars
func (tc *ThemedComponents) NewStatusBar() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.StatusColors()

	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetDynamicColors(true)

	return textView
}

// NewPanelView creates a new text view styled for side panels
func (tc *ThemedComponents) NewPanelView() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.PanelColors()
	border := tc.theme.BorderStyle()

	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetBorderColor(colors.Border)
	textView.SetTitleColor(colors.Title)
	textView.SetBorder(true)
	textView.SetBorderPadding(border.Padding, border.Padding, border.Padding, border.Padding)

	return textView
}

// Hex formats a color as a tview color tag
func Hex(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "[-]"
	}
	return "[" + c.CSS() + "]"
}

var defaultFactory = &ThemedComponents{}

func updateDefaultFactory() {
	defaultFactory.theme = defaultThemeManager.Current()
}

// Factory returns a component factory for the current global theme
func Factory() *ThemedComponents {
	updateDefaultFactory()
	return defaultFactory
}

func NewList() *tview.List {
	updateDefaultFactory()
	return defaultFactory.NewList()
}

func NewModal() *tview.Modal {
	updateDefaultFactory()
	return defaultFactory.NewModal()
}

func NewTextView() *tview.TextView {
	updateDefaultFactory()
	return defaultFactory.NewTextView()
}

func NewInputField() *tview.InputField {
	updateDefaultFactory()
	return defaultFactory.NewInputField()
}

func NewTable() *tview.Table {
	updateDefaultFactory()
	return defaultFactory.NewTable()
}

func NewFlex() *tview.Flex {
	updateDefaultFactory()
	return defaultFactory.NewFlex()
}

func NewStatusBar() *tview.TextView {
	updateDefaultFactory()
	return defaultFactory.NewStatusBar()
}

func NewPanelView() *tview.TextView {
	updateDefaultFactory()
	return defaultFactory.NewPanelView()
}
