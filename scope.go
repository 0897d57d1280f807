// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "time"

// EventSet is the readiness interest mask a Stream registers with its
// host event loop. The engine always registers both bits together, once,
// in edge-triggered mode, and never branches on which bit fired: it
// always tries both directions.
type EventSet uint8

const (
	EventReadable EventSet = 1 << iota
	EventWritable
)

// TimerToken is an opaque handle a Scope hands back from SetTimer. The
// engine never inspects it; it only ever passes it back to ClearTimer.
type TimerToken any

// Deadline is an absolute point on a steady (monotonic) clock. It must
// never be derived from wall-clock time: a clock step must not perturb
// an in-flight Stream's notion of when its deadline falls.
type Deadline = time.Time

// Scope is the host event-loop contract a Stream is constructed with and
// that is threaded through every Protocol callback. An implementation
// owns the actual epoll/kqueue/IOCP reactor, the timer wheel, and the
// wakeup-token registry; Stream only ever calls back into it through this
// interface.
//
// A Scope implementation given to any particular Stream is only ever
// called from the single goroutine that owns that Stream.
type Scope[C any] interface {
	// Context returns the host-defined value threaded through callbacks —
	// e.g. a reference to shared server state, metrics handles, or a
	// logger. It carries no meaning to the engine itself.
	Context() C

	// Register adds sock to the event loop with interest, in
	// edge-triggered mode. Called exactly once per Stream, at
	// construction; the engine never calls it again for the same socket.
	Register(sock StreamSocket, interest EventSet) error

	// SetTimer arms a one-shot timer that fires after d and returns a
	// token identifying it. ErrTimerRegistration-class failures should be
	// returned here rather than panicking: construction callers need to
	// distinguish this from a successful Stream.
	SetTimer(d time.Duration) (TimerToken, error)

	// ClearTimer cancels a timer previously returned by SetTimer. It is
	// always paired 1:1 with a prior SetTimer call and is a no-op if the
	// timer already fired.
	ClearTimer(TimerToken)

	// Now returns the current point on the Scope's steady clock. Stream
	// uses this (never time.Now's wall-clock guarantees) to detect
	// spurious-early timeout deliveries.
	Now() time.Time
}
