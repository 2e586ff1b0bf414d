package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Gate converts asynchronous interrupt and terminate signals into state the
// capture loop can poll. The signal path does exactly one thing: flip the
// running flag and cancel the derived context. All other shutdown work
// happens on the main flow after the loop observes the flip.
type Gate struct {
	running atomic.Bool
	sigs    chan os.Signal
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// InstallGate registers handlers for SIGINT and SIGTERM and returns a gate in
// the running state. Cancelling the parent context has the same effect as a
// signal.
func InstallGate(parent context.Context) *Gate {
	g := &Gate{
		sigs: make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	g.running.Store(true)
	g.ctx, g.cancel = context.WithCancel(parent)

	signal.Notify(g.sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer close(g.done)
		select {
		case <-g.sigs:
		case <-g.ctx.Done():
		}
		g.running.Store(false)
		g.cancel()
	}()

	return g
}

// Running reports whether the daemon should keep looping. It is the loop
// condition and the sole reader of the flag.
func (g *Gate) Running() bool {
	return g.running.Load()
}

// Context is cancelled as soon as a shutdown signal arrives. It is handed to
// the capture source so a blocking iteration can unblock promptly instead of
// waiting for its next natural return.
func (g *Gate) Context() context.Context {
	return g.ctx
}

// Stop unregisters the signal handlers and releases the watcher goroutine.
// Stopping also flips the gate to not running.
func (g *Gate) Stop() {
	signal.Stop(g.sigs)
	g.cancel()
	<-g.done
}
