package ansi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamingStripper_BasicStripping(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no ansi sequences", "buy food 3", "buy food 3"},
		{"colour sequence", "\x1b[31mjump\x1b[0m lave", "jump lave"},
		{"cursor keys", "mkt\x1b[A\x1b[B", "mkt"},
		{"application cursor keys", "\x1bOAlocal", "local"},
		{"cursor position with parameters", "\x1b[12;40Hinfo", "info"},
		{"two byte escape", "\x1bcsell", "sell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewStreamingStripper().StripChunk(tt.input))
		})
	}
}

func TestStreamingStripper_ChunkSplitting(t *testing.T) {
	tests := []struct {
		name     string
		chunks   []string
		expected string
	}{
		{
			name:     "sequence split across chunks",
			chunks:   []string{"\x1b", "[31m", "fuel", "\x1b[0m"},
			expected: "fuel",
		},
		{
			name:     "escape character at end of chunk",
			chunks:   []string{"buy \x1b", "[31mfood\x1b[0m"},
			expected: "buy food",
		},
		{
			name:     "parameters split",
			chunks:   []string{"\x1b[3", "1", "m<A> ", "cash", "\x1b[", "0m"},
			expected: "<A> cash",
		},
		{
			name:     "ss3 split",
			chunks:   []string{"\x1bO", "Bhold"},
			expected: "hold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stripper := NewStreamingStripper()
			var result string
			for _, chunk := range tt.chunks {
				result += stripper.StripChunk(chunk)
			}
			assert.Equal(t, tt.expected, result)
			assert.False(t, stripper.Pending())
		})
	}
}

func TestStreamingStripper_Reset(t *testing.T) {
	stripper := NewStreamingStripper()

	assert.Empty(t, stripper.StripChunk("\x1b[31"))
	assert.True(t, stripper.Pending())

	stripper.Reset()
	assert.Equal(t, "Hello", stripper.StripChunk("Hello"))
}

func TestStripString(t *testing.T) {
	assert.Equal(t, "<A> Alien Items", StripString("\x1b[31m<A> Alien Items\x1b[0m"))
}
