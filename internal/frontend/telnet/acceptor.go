package telnet

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/rowolff/bb-character-sheet/internal/config"
)

// SessionHandler runs the command loop for one connected client.
type SessionHandler interface {
	HandleSession(ctx context.Context, conn *Conn) error
}

// SessionHandlerFunc adapts a function to SessionHandler.
type SessionHandlerFunc func(ctx context.Context, conn *Conn) error

// HandleSession calls f.
func (f SessionHandlerFunc) HandleSession(ctx context.Context, conn *Conn) error {
	return f(ctx, conn)
}

// Acceptor accepts Telnet clients and runs a session per connection.
// Sessions share nothing but the handler.
type Acceptor struct {
	cfg     config.TelnetConfig
	handler SessionHandler
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	listener net.Listener
	sessions sync.WaitGroup
	active   atomic.Int64
}

// NewAcceptor builds an acceptor for cfg.Addr().
//
// Precondition: handler and logger are non-nil.
func NewAcceptor(cfg config.TelnetConfig, handler SessionHandler, logger *zap.Logger) *Acceptor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Acceptor{
		cfg:     cfg,
		handler: handler,
		logger:  logger.Named("telnet"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// ListenAndServe listens on the configured address and serves until
// Stop is called.
func (a *Acceptor) ListenAndServe() error {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}
	return a.Serve(ln)
}

// Serve accepts connections on ln until Stop is called. It returns nil
// after a clean stop.
//
// Postcondition: ln is closed when Serve returns.
func (a *Acceptor) Serve(ln net.Listener) error {
	a.mu.Lock()
	if a.ctx.Err() != nil {
		a.mu.Unlock()
		_ = ln.Close()
		return nil
	}
	a.listener = ln
	a.mu.Unlock()
	defer ln.Close()

	a.logger.Info("telnet acceptor listening", zap.String("addr", ln.Addr().String()))

	for {
		raw, err := ln.Accept()
		if err != nil {
			if a.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			a.logger.Error("accepting connection", zap.Error(err))
			continue
		}
		a.sessions.Add(1)
		go a.serveConn(raw)
	}
}

func (a *Acceptor) serveConn(raw net.Conn) {
	defer a.sessions.Done()
	a.active.Add(1)
	defer a.active.Add(-1)

	conn := NewConn(raw, a.cfg.ReadTimeout, a.cfg.WriteTimeout)
	log := a.logger.With(
		zap.String("session_id", conn.ID().String()),
		zap.String("remote_addr", raw.RemoteAddr().String()),
	)
	start := time.Now()
	log.Info("client connected")

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	// Closing the socket unblocks a pending ReadLine on shutdown.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer conn.Close()

	if err := conn.Negotiate(); err != nil {
		log.Warn("telnet negotiation failed", zap.Error(err))
		return
	}

	err := a.handler.HandleSession(ctx, conn)
	fields := []zap.Field{zap.Duration("duration", time.Since(start))}
	if err != nil && ctx.Err() == nil {
		log.Debug("session ended", append(fields, zap.Error(err))...)
		return
	}
	log.Info("session ended", fields...)
}

// Stop closes the listener, cancels every session and waits for them
// to return. It is safe to call more than once.
func (a *Acceptor) Stop() {
	a.mu.Lock()
	a.cancel()
	ln := a.listener
	a.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	a.sessions.Wait()
	a.logger.Info("telnet acceptor stopped")
}

// Addr returns the bound address, or "" before Serve is called.
func (a *Acceptor) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// ActiveSessions reports how many sessions are running.
func (a *Acceptor) ActiveSessions() int {
	return int(a.active.Load())
}
