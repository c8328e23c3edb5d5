package gateway

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// maxCalls bounds the in-memory call log shown in the UI
const maxCalls = 200

// ErrUnknownCommand is returned by Invoke for names with no registered handler
var ErrUnknownCommand = errors.New("unknown command")

// Handler serves one named command
type Handler func(ctx context.Context, args Args) (any, error)

// Call is one entry of the gateway call log
type Call struct {
	Command string
	Started time.Time
	Elapsed time.Duration
	Err     string
}

// Gateway dispatches named commands to registered handlers.
// It never retries and imposes no timeout; callers own ctx.
type Gateway struct {
	mu       sync.RWMutex
	handlers map[string]Handler

	logMu sync.Mutex
	calls []Call

	log *zap.Logger
	now func() time.Time
}

// New creates an empty gateway
func New(log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{
		handlers: make(map[string]Handler),
		log:      log,
		now:      time.Now,
	}
}

// Register binds name to h, replacing any existing handler
func (g *Gateway) Register(name string, h Handler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handlers[name] = h
}

// Commands returns the registered command names, sorted
func (g *Gateway) Commands() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.handlers))
	for name := range g.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the handler for name. A panicking handler is reported as an error.
func (g *Gateway) Invoke(ctx context.Context, name string, args Args) (result any, err error) {
	g.mu.RLock()
	h, ok := g.handlers[name]
	g.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if args == nil {
		args = Args{}
	}

	start := g.now()
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("command %s panicked: %v", name, r)
		}
		g.record(name, start, err)
	}()

	return h(ctx, args)
}

func (g *Gateway) record(name string, start time.Time, err error) {
	call := Call{Command: name, Started: start, Elapsed: g.now().Sub(start)}
	if err != nil {
		call.Err = err.Error()
		g.log.Warn("gateway command failed", zap.String("command", name), zap.Duration("elapsed", call.Elapsed), zap.Error(err))
	} else {
		g.log.Debug("gateway command", zap.String("command", name), zap.Duration("elapsed", call.Elapsed))
	}

	g.logMu.Lock()
	defer g.logMu.Unlock()
	g.calls = append(g.calls, call)
	if len(g.calls) > maxCalls {
		g.calls = g.calls[len(g.calls)-maxCalls:]
	}
}

// Calls returns a copy of the call log, oldest first
func (g *Gateway) Calls() []Call {
	g.logMu.Lock()
	defer g.logMu.Unlock()
	out := make([]Call, len(g.calls))
	copy(out, g.calls)
	return out
}
