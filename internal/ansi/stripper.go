package ansi

import (
	"strings"
)

type stripState int

const (
	stateNormal stripState = iota
	stateEscape            // saw ESC
	stateCSI               // inside ESC [ ... final
	stateSS3               // ESC O, one more byte to drop
)

// StreamingStripper removes ANSI escape sequences from streaming text.
// It keeps state so a sequence may be split across chunks.
type StreamingStripper struct {
	state stripState
}

// NewStreamingStripper creates a new streaming ANSI stripper
func NewStreamingStripper() *StreamingStripper {
	return &StreamingStripper{}
}

// StripChunk processes a chunk of text and returns it with escape sequences removed
func (s *StreamingStripper) StripChunk(text string) string {
	var result strings.Builder

	for _, char := range text {
		switch s.state {
		case stateNormal:
			if char == '\x1b' {
				s.state = stateEscape
			} else {
				result.WriteRune(char)
			}

		case stateEscape:
			switch char {
			case '[':
				s.state = stateCSI
			case 'O':
				s.state = stateSS3
			case '\x1b':
				// stay: a doubled escape starts over
			default:
				// two-byte escape such as ESC c
				s.state = stateNormal
			}

		case stateCSI:
			// parameters and intermediates are 0x20-0x3f, the final byte is 0x40-0x7e
			if char >= 0x40 && char <= 0x7e {
				s.state = stateNormal
			}

		case stateSS3:
			s.state = stateNormal
		}
	}

	return result.String()
}

// Reset resets the stripper state (useful for new connections)
func (s *StreamingStripper) Reset() {
	s.state = stateNormal
}

// Pending reports whether a sequence was cut off at the end of the last chunk
func (s *StreamingStripper) Pending() bool {
	return s.state != stateNormal
}

// StripString strips a complete string
func StripString(text string) string {
	return NewStreamingStripper().StripChunk(text)
}
