package redisserver

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/dioritemc/diorite-go/internal/core/domain"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
	"github.com/dioritemc/diorite-go/pkg/cmap"
)

// Config holds the listener settings.
type Config struct {
	Addr string
	// TLSConfig switches the listener to TLS when set.
	TLSConfig *tls.Config
	// ReadTimeout bounds reading one command once its first byte arrived.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// IdleTimeout closes connections that send nothing for this long.
	IdleTimeout time.Duration
	// RateLimit is commands per second per client IP. Zero disables it.
	RateLimit float64
}

// DefaultConfig returns a plaintext loopback listener on 6379.
func DefaultConfig() Config {
	return Config{
		Addr:         "127.0.0.1:6379",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  5 * time.Minute,
		RateLimit:    1000,
	}
}

// Server accepts RESP connections and runs commands through a Handler.
type Server struct {
	cfg     Config
	handler *Handler
	log     logger.Logger

	clients *cmap.Map[string, *client]

	mu      sync.Mutex
	ln      net.Listener
	conns   map[net.Conn]struct{}
	closing atomic.Bool
	wg      sync.WaitGroup
}

// client is the rate limiter shared by every connection from one IP.
type client struct {
	limiter *rate.Limiter
	conns   atomic.Int32
}

// New creates a Server. Zero timeouts take the DefaultConfig values.
func New(cfg Config, h *Handler, log logger.Logger) *Server {
	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		cfg:     cfg,
		handler: h,
		log:     log.With("component", "resp"),
		clients: cmap.New[string, *client](),
		conns:   make(map[net.Conn]struct{}),
	}
}

// ListenAndServe listens on cfg.Addr and serves until Shutdown. It
// returns nil after Shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	if s.cfg.TLSConfig != nil {
		ln = tls.NewListener(ln, s.cfg.TLSConfig)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln. ctx is handed to every command.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.closing.Load() {
		s.mu.Unlock()
		_ = ln.Close()
		return nil
	}
	s.ln = ln
	s.mu.Unlock()

	s.log.Info("resp listener started", "addr", ln.Addr().String(), "tls", s.cfg.TLSConfig != nil)
	for {
		c, err := ln.Accept()
		if err != nil {
			if s.closing.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		if !s.track(c) {
			_ = c.Close()
			return nil
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(c)
			s.serveConn(ctx, c)
		}()
	}
}

// Addr returns the listening address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting, closes open connections and waits for their
// goroutines until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closing.Store(true)
	s.mu.Lock()
	var err error
	if s.ln != nil {
		err = s.ln.Close()
	}
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (s *Server) track(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing.Load() {
		return false
	}
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) untrack(c net.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	_ = c.Close()
}

// limiterFor returns the limiter for the connection's IP and a release
// func that drops it once the IP has no connections left.
func (s *Server) limiterFor(c net.Conn) (*rate.Limiter, func()) {
	if s.cfg.RateLimit <= 0 {
		return nil, func() {}
	}
	host, _, err := net.SplitHostPort(c.RemoteAddr().String())
	if err != nil {
		host = c.RemoteAddr().String()
	}
	burst := max(int(s.cfg.RateLimit), 1)
	cl, _ := s.clients.GetOrCreate(host, func() *client {
		return &client{limiter: rate.NewLimiter(rate.Limit(s.cfg.RateLimit), burst)}
	})
	cl.conns.Add(1)
	return cl.limiter, func() {
		if cl.conns.Add(-1) == 0 {
			s.clients.DeleteFunc(func(k string, v *client) bool {
				return k == host && v == cl && v.conns.Load() == 0
			})
		}
	}
}

func (s *Server) serveConn(ctx context.Context, c net.Conn) {
	log := s.log.With("remote", c.RemoteAddr().String())
	limiter, release := s.limiterFor(c)
	defer release()

	br := bufio.NewReader(c)
	w := NewWriter(c)
	reply := func() bool {
		_ = c.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		return w.Flush() == nil
	}

	for {
		// Idle connections may wait up to IdleTimeout for the next
		// command. Once it starts, the whole command must arrive within
		// ReadTimeout.
		_ = c.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout))
		if _, err := br.Peek(1); err != nil {
			logClosed(log, err)
			return
		}
		_ = c.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))

		args, err := ReadCommand(br)
		if err != nil {
			if errors.Is(err, ErrProtocol) || errors.Is(err, ErrLimitExceeded) {
				log.Warn("closing connection on bad input", "error", err)
				w.Error("ERR " + err.Error())
				reply()
				return
			}
			logClosed(log, err)
			return
		}
		if len(args) == 0 {
			continue
		}

		if limiter != nil && !limiter.Allow() {
			w.Error(formatError(domain.ErrRateLimited))
			if !reply() {
				return
			}
			continue
		}

		err = s.handler.Handle(ctx, w, args)
		if !reply() || errors.Is(err, errQuit) {
			return
		}
	}
}

func logClosed(log logger.Logger, err error) {
	var ne net.Error
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
	case errors.As(err, &ne) && ne.Timeout():
		log.Debug("resp connection timed out")
	default:
		log.Debug("resp connection read failed", "error", err)
	}
}
