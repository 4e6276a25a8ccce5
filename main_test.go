package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		args []string
		cmd  string
		rest []string
	}{
		{nil, "play", nil},
		{[]string{"--seed", "1"}, "play", []string{"--seed", "1"}},
		{[]string{"serve", "--listen", ":23"}, "serve", []string{"--listen", ":23"}},
		{[]string{"chart"}, "chart", []string{}},
	}
	for _, tt := range tests {
		cmd, rest := splitCommand(tt.args)
		assert.Equal(t, tt.cmd, cmd)
		assert.Equal(t, tt.rest, rest)
	}
}

// runMelite runs the CLI against a throwaway config dir, log and database
func runMelite(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	cmd, rest := splitCommand(args)
	full := append([]string{cmd,
		"--config-dir", dir,
		"--log-file", filepath.Join(dir, "melite.log"),
		"--db", filepath.Join(dir, "melite.db"),
	}, rest...)

	var out bytes.Buffer
	err := run(context.Background(), full, strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runMelite(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "melite dev"))
}

func TestPlayLineMode(t *testing.T) {
	out, err := runMelite(t, "buy food 2\nsave\nquit\n", "play", "--commander", "Blake")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to mElite, Commander Blake.")
	assert.Contains(t, out, "Bought 2t of Food.")
	assert.Contains(t, out, "Commander Blake saved.")
}

func TestChartWritesPNGWhenPiped(t *testing.T) {
	out, err := runMelite(t, "", "chart", "--route", "tibedied")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\x89PNG\r\n\x1a\n"))
}

func TestChartUnknownSystem(t *testing.T) {
	_, err := runMelite(t, "", "chart", "--route", "nowhere")
	assert.ErrorContains(t, err, `no system called "nowhere"`)
}

func TestSavesWithoutCommanders(t *testing.T) {
	out, err := runMelite(t, "", "saves")
	require.NoError(t, err)
	assert.Contains(t, out, "applied")
	assert.Contains(t, out, "No saved commanders.")
}

func TestUnknownCommand(t *testing.T) {
	_, err := runMelite(t, "", "fly")
	assert.ErrorContains(t, err, `unknown command "fly"`)
}

func TestBadTheme(t *testing.T) {
	_, err := runMelite(t, "", "saves", "--theme", "neon")
	assert.Error(t, err)
}
