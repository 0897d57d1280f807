// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package eventloop is a reference host implementing stream.Scope over
// ordinary net.Conn sockets. It is not the engine the rest of this module
// cares about proving correct: it exists so cmd/streamdemo (and this
// package's own tests) have a real event loop to drive a stream.Stream
// against, without pulling in a platform-specific poller.
//
// There is no epoll/kqueue binding here. The retrieval pack this project
// was built from carries gaio's watcher.go (its timer heap and reactor
// shape) but not the platform poller file where the actual epoll syscalls
// live, so Loop does not invent one. Readiness is instead driven by a
// fixed-interval poll per registered Stream, and non-blocking reads/writes
// are emulated over net.Conn with a deadline a short window ahead of each
// call (the standard Go idiom for the same effect), translating the
// resulting timeout error
// into stream.ErrWouldBlock (see Conn in conn.go). Timer precision rides
// on the same poll tick rather
// than a discrete timer wheel, which stream.Stream's own spurious-timeout
// handling (stream.go's Timeout, comparing against scope.Now()) already
// tolerates by design.
package eventloop

import (
	"sync"
	"time"

	"code.hybscloud.com/stream"
)

// pollInterval bounds how promptly a parked Stream notices new data,
// write-buffer drain, or a reached deadline. Lower trades CPU for latency.
const pollInterval = 5 * time.Millisecond

// Drivable is the subset of *stream.Stream[C, S, P]'s method set Loop
// needs. Any instantiation of stream.Stream satisfies it structurally —
// Loop never needs to know C, S, or P.
type Drivable interface {
	Ready(events stream.EventSet) stream.Result
	Timeout() stream.Result
	Wakeup() stream.Result
}

// Loop is a reference stream.Scope[C] implementation: one poll goroutine
// per registered Stream, a shared context value, and a table of wakeup
// channels keyed by an opaque id returned from Drive.
//
// A single Loop may back any number of concurrently driven Streams; it
// holds no per-socket state of its own (Register is a no-op — see the
// package doc), only the wakeup registry Drive populates.
type Loop[C any] struct {
	ctx C

	mu   sync.Mutex
	next uint64
	wake map[uint64]chan struct{}
}

// NewLoop constructs a Loop whose Context() always returns ctx.
func NewLoop[C any](ctx C) *Loop[C] {
	return &Loop[C]{ctx: ctx, wake: make(map[uint64]chan struct{})}
}

// Context implements stream.Scope.
func (l *Loop[C]) Context() C { return l.ctx }

// Register implements stream.Scope. It is a deliberate no-op: readiness
// for a driven Stream is discovered by Drive's poll goroutine, not by a
// registration table keyed on the socket, so there is nothing to record
// here beyond the engine's own bookkeeping already done in stream.New.
func (l *Loop[C]) Register(_ stream.StreamSocket, _ stream.EventSet) error {
	return nil
}

// SetTimer implements stream.Scope. It returns immediately with a token
// that ClearTimer treats as a no-op: Drive's poll tick calls Timeout()
// unconditionally on every tick, and stream.Stream already discards
// early/spurious firings by comparing against its own deadline, so a
// discrete per-Stream timer registry would track state this Loop never
// reads back.
func (l *Loop[C]) SetTimer(time.Duration) (stream.TimerToken, error) {
	return struct{}{}, nil
}

// ClearTimer implements stream.Scope.
func (l *Loop[C]) ClearTimer(stream.TimerToken) {}

// Now implements stream.Scope. time.Time's Sub/Before/After already
// carry a monotonic reading alongside the wall clock (see the time
// package docs), which is what makes this a steady clock in the sense
// stream.Deadline needs: a wall-clock step does not perturb it.
func (l *Loop[C]) Now() time.Time { return time.Now() }

// Drive starts a poll goroutine for d and returns an id that Wakeup can
// target, plus a stop func that blocks until the goroutine has exited
// (either because d returned stream.Destroyed, or because stop was
// called). Callers normally don't call stop directly; d tearing itself
// down is the common exit path.
func (l *Loop[C]) Drive(d Drivable) (id uint64, stop func()) {
	wake := make(chan struct{}, 1)

	l.mu.Lock()
	id = l.next
	l.next++
	l.wake[id] = wake
	l.mu.Unlock()

	quit := make(chan struct{})
	done := make(chan struct{})
	go l.run(id, d, wake, quit, done)

	return id, func() {
		select {
		case <-quit:
		default:
			close(quit)
		}
		<-done
	}
}

func (l *Loop[C]) run(id uint64, d Drivable, wake chan struct{}, quit, done chan struct{}) {
	defer close(done)
	defer l.forget(id)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-wake:
			if d.Wakeup() == stream.Destroyed {
				return
			}
		case <-ticker.C:
			if d.Timeout() == stream.Destroyed {
				return
			}
			if d.Ready(stream.EventReadable|stream.EventWritable) == stream.Destroyed {
				return
			}
		}
	}
}

// Wakeup delivers an external wakeup message to the Stream identified by
// id (the value Drive returned for it). It is safe to call from any
// goroutine, including concurrently with the Stream's own drive loop;
// delivery is coalesced (a Stream already holding a pending wakeup does
// not queue a second one).
func (l *Loop[C]) Wakeup(id uint64) {
	l.mu.Lock()
	ch, ok := l.wake[id]
	l.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (l *Loop[C]) forget(id uint64) {
	l.mu.Lock()
	delete(l.wake, id)
	l.mu.Unlock()
}
