// Package remote bridges a navigator to remote UIs over websocket.
//
// Remote clients receive a snapshot of the back stack after every transition
// and may send navigation requests, which are emitted on the navigator exactly
// like local calls.
//
// Client to server:
//
//	{"op": "navigate", "route": "home"}
//	{"op": "navigate_clear", "route": "home"}
//	{"op": "up"}
//	{"op": "pop_up_to", "route": "home", "inclusive": false}
//	{"op": "back_with_result", "key": "picked", "result": 25, "route": "home"}
//
// Server to client:
//
//	{"type": "snapshot", "op": "push", "stack": ["home", "details/..."]}
//	{"type": "error", "error": "..."}
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/backstack"
	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"github.com/BrandonKowalski/navigator/pkg/navigator/internal"
	"github.com/coder/websocket"
)

// Request operations.
const (
	OpNavigate       = "navigate"
	OpNavigateClear  = "navigate_clear"
	OpUp             = "up"
	OpPopUpTo        = "pop_up_to"
	OpBackWithResult = "back_with_result"
)

// Message types sent to clients.
const (
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

var (
	ErrUnknownOp    = errors.New("remote: unknown op")
	ErrMissingRoute = errors.New("remote: route required")
	ErrMissingKey   = errors.New("remote: key required")
	ErrBinaryFrame  = errors.New("remote: binary frames not supported")
)

// Request is a navigation request from a client.
type Request struct {
	Op        string          `json:"op"`
	Route     string          `json:"route,omitempty"`
	Inclusive bool            `json:"inclusive,omitempty"`
	Key       string          `json:"key,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
}

// Message is sent from the server to clients.
type Message struct {
	Type  string   `json:"type"`
	Op    string   `json:"op,omitempty"`
	Stack []string `json:"stack,omitempty"`
	Error string   `json:"error,omitempty"`
}

// ParseFunc decodes a route path received from a client.
type ParseFunc[T navigator.Route] func(path string) (T, error)

// Option configures a Server.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	sendBuffer   int
	writeTimeout time.Duration
	origins      []string
}

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSendBuffer sets how many messages may queue per client before the
// client is disconnected as too slow.
func WithSendBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sendBuffer = n
		}
	}
}

// WithWriteTimeout bounds each websocket write.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.writeTimeout = d
		}
	}
}

// WithOriginPatterns allows cross-origin clients matching patterns.
func WithOriginPatterns(patterns ...string) Option {
	return func(o *options) { o.origins = append(o.origins, patterns...) }
}

// Server is an http.Handler that upgrades requests to websocket connections.
type Server[T navigator.Route] struct {
	nav   navigator.ComposeNavigator[T]
	parse ParseFunc[T]
	opts  options

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte // latest snapshot, replayed to new clients
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) stop() {
	c.once.Do(func() { close(c.done) })
}

// NewServer creates a Server dispatching client requests on nav.
func NewServer[T navigator.Route](nav navigator.ComposeNavigator[T], parse ParseFunc[T], opts ...Option) *Server[T] {
	o := options{
		sendBuffer:   constants.DefaultClientSendBuffer,
		writeTimeout: constants.DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = internal.GetInternalLogger()
	}

	if nav == nil {
		nav = navigator.Unprovided[T]()
	}

	return &Server[T]{
		nav:     nav,
		parse:   parse,
		opts:    o,
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and serves the client until it disconnects.
func (s *Server[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.opts.origins,
	})
	if err != nil {
		s.opts.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, s.opts.sendBuffer),
		done: make(chan struct{}),
	}
	if !s.register(c) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer s.unregister(c)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go s.writeLoop(ctx, c)
	s.readLoop(ctx, c)
}

func (s *Server[T]) readLoop(ctx context.Context, c *client) {
	for {
		typ, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				s.opts.logger.Debug("websocket read ended", "error", err)
			}
			return
		}

		var req Request
		if typ != websocket.MessageText {
			err = ErrBinaryFrame
		} else if jerr := json.Unmarshal(data, &req); jerr != nil {
			err = fmt.Errorf("remote: decode request: %w", jerr)
		} else {
			err = s.dispatch(req)
		}

		if err != nil {
			s.opts.logger.Info("remote request rejected", "op", req.Op, "error", err)
			reply, _ := json.Marshal(Message{Type: TypeError, Op: req.Op, Error: err.Error()})
			s.enqueue(c, reply)
		}
	}
}

func (s *Server[T]) writeLoop(ctx context.Context, c *client) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			c.conn.CloseNow()
			return
		case data := <-c.send:
			wctx, cancel := context.WithTimeout(ctx, s.opts.writeTimeout)
			err := c.conn.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				s.opts.logger.Debug("websocket write failed", "error", err)
				c.conn.CloseNow()
				return
			}
		}
	}
}

// dispatch emits req on the navigator.
func (s *Server[T]) dispatch(req Request) error {
	switch req.Op {
	case OpNavigate, OpNavigateClear, OpPopUpTo:
		route, err := s.route(req.Route)
		if err != nil {
			return err
		}
		switch req.Op {
		case OpNavigate:
			s.nav.Navigate(route)
		case OpNavigateClear:
			s.nav.NavigateAndClearBackStack(route)
		default:
			s.nav.PopUpTo(route, req.Inclusive)
		}
		return nil

	case OpUp:
		s.nav.NavigateUp()
		return nil

	case OpBackWithResult:
		if req.Key == "" {
			return ErrMissingKey
		}
		var result any
		if len(req.Result) > 0 {
			if err := json.Unmarshal(req.Result, &result); err != nil {
				return fmt.Errorf("remote: decode result: %w", err)
			}
		}
		if req.Route == "" {
			s.nav.NavigateBackWithResult(req.Key, result)
			return nil
		}
		route, err := s.route(req.Route)
		if err != nil {
			return err
		}
		s.nav.NavigateBackWithResultTo(req.Key, result, route)
		return nil

	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, req.Op)
	}
}

func (s *Server[T]) route(path string) (T, error) {
	if path == "" {
		var zero T
		return zero, ErrMissingRoute
	}
	return s.parse(path)
}

// Publish sends snap to every connected client. It never blocks; a client
// whose send buffer is full is disconnected. Publish has the signature of a
// backstack.TransitionFunc so it can be registered with Controller.OnTransition.
func (s *Server[T]) Publish(snap backstack.Snapshot[T]) {
	data, err := json.Marshal(Message{Type: TypeSnapshot, Op: string(snap.Op), Stack: snap.Paths()})
	if err != nil {
		s.opts.logger.Error("encode snapshot", "error", err)
		return
	}

	s.mu.Lock()
	s.last = data
	targets := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	for _, c := range targets {
		s.enqueue(c, data)
	}
}

func (s *Server[T]) enqueue(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		s.opts.logger.Warn("websocket client too slow, disconnecting")
		s.unregister(c)
	}
}

// Clients returns the number of connected clients.
func (s *Server[T]) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Shutdown disconnects every client and rejects new ones. Close handshakes
// run concurrently; clients still connected when ctx is done are dropped
// without one and ctx's error is returned.
func (s *Server[T]) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	targets := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		targets = append(targets, c)
	}
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, c := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.conn.Close(websocket.StatusGoingAway, "server shutting down")
			c.stop()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		for _, c := range targets {
			c.stop()
			c.conn.CloseNow()
		}
		s.opts.logger.Warn("websocket shutdown deadline reached", "clients", len(targets))
		return ctx.Err()
	}
}

func (s *Server[T]) register(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.clients[c] = struct{}{}
	if s.last != nil {
		c.send <- s.last
	}
	return true
}

func (s *Server[T]) unregister(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	c.stop()
}
