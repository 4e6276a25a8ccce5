package theme

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestANSIColorPalette(t *testing.T) {
	palette := NewTelixTheme().ANSIColorPalette()

	testCases := []struct {
		index                           int
		name                            string
		expectedR, expectedG, expectedB int32
	}{
		{0, "black", 0, 0, 0},
		{1, "dark red", 128, 0, 0},
		{2, "dark green", 0, 128, 0},
		{3, "brown/dark yellow", 128, 128, 0},
		{4, "dark blue", 0, 0, 128},
		{5, "dark magenta", 128, 0, 128},
		{6, "dark cyan", 0, 128, 128},
		{7, "light gray", 192, 192, 192},
		{8, "dark gray", 128, 128, 128},
		{9, "bright red", 255, 0, 0},
		{10, "bright green", 0, 255, 0},
		{11, "bright yellow", 255, 255, 0},
		{12, "bright blue", 0, 0, 255},
		{13, "bright magenta", 255, 0, 255},
		{14, "bright cyan", 0, 255, 255},
		{15, "white", 255, 255, 255},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b := palette[tc.index].RGB()
			assert.Equal(t, []int32{tc.expectedR, tc.expectedG, tc.expectedB}, []int32{r, g, b})
		})
	}
}

func TestThemeManager(t *testing.T) {
	tm := NewThemeManager()
	assert.Equal(t, "telix", tm.Current().Name())
	assert.Equal(t, []string{"mono", "telix"}, tm.Available())

	require.NoError(t, tm.SetTheme("mono"))
	assert.Equal(t, "mono", tm.Current().Name())

	assert.Error(t, tm.SetTheme("neon"))
	assert.Equal(t, "mono", tm.Current().Name())
}

func TestGlobalTheme(t *testing.T) {
	t.Cleanup(func() { _ = Set("telix") })

	require.NoError(t, Set("mono"))
	assert.Equal(t, "mono", Current().Name())
	assert.Equal(t, "mono", Factory().Theme().Name())
}

func TestHex(t *testing.T) {
	assert.Equal(t, "[#FFFF00]", Hex(DOSYellow))
	assert.Equal(t, "[-]", Hex(tcell.ColorDefault))
}

func TestFactoryAppliesTheme(t *testing.T) {
	tc := NewThemedComponents(NewTelixTheme())

	table := tc.NewTable()
	assert.Equal(t, DOSBlack, table.GetBackgroundColor())

	status := tc.NewStatusBar()
	assert.Equal(t, DOSBlue, status.GetBackgroundColor())

	list := tc.NewList()
	assert.Equal(t, DOSBlack, list.GetBackgroundColor())
}
