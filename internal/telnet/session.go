package telnet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"
	"unicode/utf8"

	"melite/internal/ansi"
	"melite/internal/api"
	"melite/internal/commands"
	"melite/internal/log"
)

// session is one connected commander. It reads the connection as an
// io.Reader of clean command lines, echoing what the client types.
type session struct {
	id       int
	conn     net.Conn
	handler  *Handler
	stripper *ansi.StreamingStripper
	idle     time.Duration

	buf    [512]byte
	line   []byte
	ready  []byte
	lastCR bool
}

func newSession(id int, conn net.Conn, idle time.Duration) *session {
	s := &session{
		id:       id,
		conn:     conn,
		stripper: ansi.NewStreamingStripper(),
		idle:     idle,
	}
	s.handler = NewHandler(s.writeRaw)
	return s
}

func (s *session) writeRaw(p []byte) error {
	_, err := s.conn.Write(p)
	return err
}

func (s *session) echo(p string) {
	if !s.handler.Enabled(ECHO) {
		return
	}
	if err := s.writeRaw([]byte(p)); err != nil {
		log.Debug("telnet echo failed", "session", s.id, "error", err)
	}
}

// Read returns completed input lines, each terminated by '\n'
func (s *session) Read(p []byte) (int, error) {
	for len(s.ready) == 0 {
		if s.idle > 0 {
			if err := s.conn.SetReadDeadline(time.Now().Add(s.idle)); err != nil {
				return 0, err
			}
		}
		n, err := s.conn.Read(s.buf[:])
		if n > 0 {
			s.input(s.buf[:n])
		}
		if err != nil {
			if len(s.ready) > 0 {
				break
			}
			return 0, err
		}
	}
	n := copy(p, s.ready)
	s.ready = s.ready[n:]
	return n, nil
}

// input edits the current line with the bytes the client sent
func (s *session) input(data []byte) {
	text := s.stripper.StripChunk(string(s.handler.ProcessData(data)))
	if s.handler.Interrupted() {
		s.line = s.line[:0]
		s.echo("^C")
		s.finishLine()
	}

	for _, r := range text {
		cr := s.lastCR
		s.lastCR = false

		switch {
		case r == '\r':
			s.lastCR = true
			s.finishLine()
		case r == '\n' || r == 0:
			// CR LF and CR NUL end one line, not two
			if !cr {
				s.finishLine()
			}
		case r == '\b' || r == 0x7f:
			if len(s.line) > 0 {
				_, size := utf8.DecodeLastRune(s.line)
				s.line = s.line[:len(s.line)-size]
				s.echo("\b \b")
			}
		case r >= 0x20 && r != utf8.RuneError:
			s.line = utf8.AppendRune(s.line, r)
			s.echo(string(r))
		}
	}
}

func (s *session) finishLine() {
	s.echo("\r\n")
	s.ready = append(s.ready, s.line...)
	s.ready = append(s.ready, '\n')
	s.line = s.line[:0]
}

// crlfWriter converts interpreter output to network virtual terminal form
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	out := bytes.ReplaceAll(p, []byte{IAC}, []byte{IAC, IAC})
	out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	if _, err := c.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}

// run plays one game until the client quits, disconnects or idles out
func (s *session) run(ctx context.Context, cfg Config) error {
	if err := s.handler.SendInitialNegotiation(); err != nil {
		return fmt.Errorf("negotiation: %w", err)
	}

	g, err := api.New(cfg.Game)
	if err != nil {
		return err
	}

	// sessions share the store, so each starts under its own name
	name := fmt.Sprintf("%s-%d", cfg.Commander, s.id)
	out := crlfWriter{w: s.conn}
	opts := []commands.Option{commands.WithCommander(name)}
	if cfg.Store != nil {
		opts = append(opts, commands.WithStore(cfg.Store))
	}
	in := commands.New(g, out, opts...)
	defer in.Close()

	fmt.Fprintf(out, "\nWelcome to mElite, Commander %s.\nType help for a list of commands.\n", name)

	err = in.Run(ctx, s)
	switch {
	case err == nil:
		fmt.Fprint(out, "\nBye.\n")
		return nil
	case errors.Is(err, os.ErrDeadlineExceeded):
		fmt.Fprint(out, "\nIdle timeout, goodbye.\n")
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed), errors.Is(err, context.Canceled):
		return nil
	}
	return err
}
