// Package telnet serves Text Elite sessions over telnet. Every connection
// gets its own commander.
package telnet

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"melite/internal/commands"
	"melite/internal/game"
	"melite/internal/log"
)

// ErrServerClosed is returned by Serve after Shutdown or cancellation
var ErrServerClosed = errors.New("telnet: server closed")

// Config configures a Server
type Config struct {
	Address     string
	MaxSessions int // 0 means unlimited
	IdleTimeout time.Duration
	Game        game.Options
	Commander   string
	Store       commands.Store
}

// Server accepts telnet connections and runs one game per connection
type Server struct {
	cfg Config

	mu       sync.Mutex
	ln       net.Listener
	conns    map[int]net.Conn
	nextID   int
	closed   bool
	sessions sync.WaitGroup
}

// NewServer creates a server; call Listen and Serve, or ListenAndServe
func NewServer(cfg Config) *Server {
	if cfg.Commander == "" {
		cfg.Commander = "Jameson"
	}
	return &Server{cfg: cfg, conns: make(map[int]net.Conn)}
}

// Listen opens the listening socket
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("telnet listen %s: %w", s.cfg.Address, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	log.Info("telnet listening", "address", ln.Addr().String())
	return nil
}

// Addr returns the listening address, or nil before Listen
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Sessions returns the number of connected commanders
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// ListenAndServe listens on the configured address and serves until ctx is done
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve accepts connections until ctx is cancelled or Shutdown is called. It
// waits for every session to end before returning.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return errors.New("telnet: Serve called before Listen")
	}

	stop := context.AfterFunc(ctx, s.Shutdown)
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.sessions.Wait()
			if s.isClosed() {
				return ErrServerClosed
			}
			return fmt.Errorf("telnet accept: %w", err)
		}

		id, ok := s.track(conn)
		if !ok {
			log.Warn("telnet session refused", "remote", conn.RemoteAddr().String(), "max", s.cfg.MaxSessions)
			conn.Write([]byte("Too many commanders online, try again later.\r\n"))
			conn.Close()
			continue
		}

		s.sessions.Add(1)
		go s.serveConn(ctx, id, conn)
	}
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// track registers conn unless the server is full or closing
func (s *Server) track(conn net.Conn) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, false
	}
	if s.cfg.MaxSessions > 0 && len(s.conns) >= s.cfg.MaxSessions {
		return 0, false
	}
	s.nextID++
	s.conns[s.nextID] = conn
	return s.nextID, true
}

func (s *Server) untrack(id int) {
	s.mu.Lock()
	delete(s.conns, id)
	s.mu.Unlock()
}

func (s *Server) serveConn(ctx context.Context, id int, conn net.Conn) {
	defer s.sessions.Done()
	defer s.untrack(id)
	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			log.Error("telnet session panic", "session", id, "panic", r)
		}
	}()

	logger := log.With("session", id, "remote", conn.RemoteAddr().String())
	logger.Info("telnet session started")
	if err := newSession(id, conn, s.cfg.IdleTimeout).run(ctx, s.cfg); err != nil {
		logger.Warn("telnet session failed", "error", err)
	}
	logger.Info("telnet session ended")
}

// Shutdown closes the listener and every open session
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.ln != nil {
		s.ln.Close()
	}
	for _, c := range s.conns {
		c.Close()
	}
	log.Info("telnet server shut down", "sessions", len(s.conns))
}
