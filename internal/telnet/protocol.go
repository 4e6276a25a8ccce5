package telnet

import (
	"melite/internal/log"
)

// Telnet command constants
const (
	IAC  = 0xFF // Interpret As Command
	DONT = 0xFE // Don't use option
	DO   = 0xFD // Use option
	WONT = 0xFC // Won't use option
	WILL = 0xFB // Will use option
	SB   = 0xFA // Subnegotiation Begin
	GA   = 0xF9 // Go Ahead
	EL   = 0xF8 // Erase Line
	EC   = 0xF7 // Erase Character
	IP   = 0xF4 // Interrupt Process
	NOP  = 0xF1 // No Operation
	SE   = 0xF0 // Subnegotiation End
)

// Telnet option constants
const (
	ECHO              = 0x01
	SUPPRESS_GO_AHEAD = 0x03
	TERMINAL_TYPE     = 0x18
	NAWS              = 0x1F // Negotiate About Window Size
	LINEMODE          = 0x22
)

// Handler manages the server side of telnet option negotiation
type Handler struct {
	writer func([]byte) error
	// options the server has agreed to perform
	enabled map[byte]bool
	// an IAC sequence cut off at the end of the previous chunk
	partial []byte
	inSB    bool
	// set when the client sends IAC IP
	interrupted bool
}

// NewHandler creates a new telnet protocol handler
func NewHandler(writer func([]byte) error) *Handler {
	return &Handler{
		writer:  writer,
		enabled: make(map[byte]bool),
	}
}

// SendInitialNegotiation offers server-side echo and character-at-a-time mode
func (h *Handler) SendInitialNegotiation() error {
	commands := [][]byte{
		{IAC, WILL, ECHO},
		{IAC, WILL, SUPPRESS_GO_AHEAD},
		{IAC, DO, SUPPRESS_GO_AHEAD},
	}

	for _, cmd := range commands {
		log.Debug("telnet send", "cmd", cmd[1], "option", cmd[2])
		if err := h.writer(cmd); err != nil {
			return err
		}
	}
	h.enabled[ECHO] = true
	h.enabled[SUPPRESS_GO_AHEAD] = true
	return nil
}

// Enabled reports whether the server performs option
func (h *Handler) Enabled(option byte) bool {
	return h.enabled[option]
}

// Interrupted reports and clears a pending IAC IP from the client
func (h *Handler) Interrupted() bool {
	ip := h.interrupted
	h.interrupted = false
	return ip
}

// ProcessData filters telnet commands from incoming data and returns clean
// bytes. Commands split across calls are completed on the next call.
func (h *Handler) ProcessData(data []byte) []byte {
	if len(h.partial) > 0 {
		data = append(h.partial, data...)
		h.partial = nil
	}

	var result []byte
	i := 0
	for i < len(data) {
		if h.inSB {
			// skip subnegotiation payload until IAC SE
			if data[i] == IAC {
				if i+1 >= len(data) {
					h.partial = []byte{IAC}
					return result
				}
				if data[i+1] == SE {
					h.inSB = false
				}
				i += 2
				continue
			}
			i++
			continue
		}

		if data[i] != IAC {
			result = append(result, data[i])
			i++
			continue
		}

		if i+1 >= len(data) {
			h.partial = []byte{IAC}
			return result
		}
		cmd := data[i+1]

		switch cmd {
		case DONT, DO, WONT, WILL:
			if i+2 >= len(data) {
				h.partial = []byte{IAC, cmd}
				return result
			}
			h.handleNegotiation(cmd, data[i+2])
			i += 3

		case SB:
			h.inSB = true
			i += 2

		case IAC:
			// escaped 0xFF
			result = append(result, IAC)
			i += 2

		case EC:
			result = append(result, '\b')
			i += 2

		case IP:
			h.interrupted = true
			i += 2

		default:
			log.Debug("telnet command ignored", "cmd", cmd)
			i += 2
		}
	}

	return result
}

// handleNegotiation answers option requests from the client
func (h *Handler) handleNegotiation(cmd byte, option byte) {
	log.Debug("telnet negotiation", "cmd", cmd, "option", option)

	var response []byte

	switch cmd {
	case DO: // client asks the server to perform option
		switch option {
		case ECHO, SUPPRESS_GO_AHEAD:
			if !h.enabled[option] {
				h.enabled[option] = true
				response = []byte{IAC, WILL, option}
			}
		default:
			response = []byte{IAC, WONT, option}
		}

	case DONT:
		if h.enabled[option] {
			h.enabled[option] = false
			response = []byte{IAC, WONT, option}
		}

	case WILL: // client offers an option
		switch option {
		case SUPPRESS_GO_AHEAD:
			// requested in SendInitialNegotiation, this is the acknowledgement
		default:
			response = []byte{IAC, DONT, option}
		}

	case WONT:
		// nothing to acknowledge; the option stays off
	}

	if response != nil {
		if err := h.writer(response); err != nil {
			log.Warn("telnet negotiation reply failed", "error", err)
		}
	}
}
