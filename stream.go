// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// Stream couples the I/O engine (streamImpl) with a connection's Protocol
// value, its current Expectation, and its deadline/timer. It is the unit
// a host event loop registers and drives: call Ready when the socket's
// registered fd reports readiness, Timeout when its armed timer fires,
// and Wakeup when an external wakeup message arrives for it.
//
// A Stream belongs to exactly one event-loop goroutine for its entire
// lifetime: none of its methods are safe to call concurrently, including
// from two different goroutines believing they each own it.
type Stream[C any, S StreamSocket, P Protocol[C, S, P]] struct {
	impl     streamImpl[C, S, P]
	scope    Scope[C]
	handler  P
	expect   Expectation
	deadline Deadline
	timer    TimerToken
}

// Result reports whether the most recent Ready/Timeout/Wakeup call left
// the Stream parked (waiting on the host event loop for the next event)
// or destroyed (socket closed, timer cancelled; the Stream must not be
// used again and should be dropped from the host's registry).
type Result = ioResult

const (
	// Parked means the Stream is still alive, waiting on its registered
	// socket and/or its armed timer.
	Parked Result = resultParked
	// Destroyed means the Stream has been torn down: its timer is
	// cancelled and its socket closed. The host must remove it from any
	// registry it keeps; calling any method on it again is a bug.
	Destroyed Result = resultDestroyed
)

// New constructs a Stream from an already-accepted socket. It registers
// sock with scope in edge-triggered mode with both readable and writable
// interest exactly once, calls create to obtain the protocol's initial
// Request, and arms the first deadline timer.
//
// create takes the place of a per-protocol constructor: Go has no way to
// invoke "the constructor of a type parameter", so the seed and the
// construction logic are captured in an ordinary closure instead — the
// seed is whatever the closure closes over.
//
// New returns ErrSocketRegistration if scope rejects registration,
// ErrProtocolStopped if create returns the absent Request, or
// ErrTimerRegistration if the initial deadline can't be armed.
func New[C any, S StreamSocket, P Protocol[C, S, P]](
	sock S,
	scope Scope[C],
	create func(S, Scope[C]) Request[C, S, P],
	opts ...Option,
) (*Stream[C, S, P], error) {
	if err := scope.Register(sock, EventReadable|EventWritable); err != nil {
		return nil, ErrSocketRegistration
	}

	req := create(sock, scope)
	if !req.isPresent() {
		return nil, ErrProtocolStopped
	}

	o := resolveOptions(opts)
	st := &Stream[C, S, P]{
		impl: streamImpl[C, S, P]{
			socket: sock,
			inbuf:  newBuffer(o),
			outbuf: newBuffer(o),
		},
		scope: scope,
	}

	timer, err := st.armTimer(req.deadline)
	if err != nil {
		return nil, ErrTimerRegistration
	}

	st.handler = req.handler
	st.expect = req.expect
	st.deadline = req.deadline
	st.timer = timer
	return st, nil
}

// Accept is the convenience entry point for protocols whose creation
// needs nothing beyond the accepted socket and scope — the common case
// for a freshly accepted listener connection. It is identical to New; the
// name exists purely to document intent at call sites.
func Accept[C any, S StreamSocket, P Protocol[C, S, P]](
	sock S,
	scope Scope[C],
	create func(S, Scope[C]) Request[C, S, P],
	opts ...Option,
) (*Stream[C, S, P], error) {
	return New[C, S, P](sock, scope, create, opts...)
}

// Socket returns the Stream's underlying socket, for host-loop bookkeeping
// (e.g. extracting a raw fd to key an epoll registry by).
func (st *Stream[C, S, P]) Socket() S { return st.impl.socket }

// Deadline returns the Stream's current deadline.
func (st *Stream[C, S, P]) Deadline() Deadline { return st.deadline }

// Ready must be called when the host event loop reports readiness on the
// Stream's registered socket. events is advisory only: the engine always
// tries both reading and writing regardless of which bit fired, since the
// socket is always registered edge-triggered for both directions.
func (st *Stream[C, S, P]) Ready(events EventSet) Result {
	req := Continue[C, S, P](st.handler, st.expect, st.deadline)
	return st.drive(req)
}

// Timeout must be called when the timer armed by SetTimer fires. If the
// Stream's deadline has not actually been reached yet, this is a spurious
// early firing (possible for a couple of reasons inherent to any timer
// wheel) and the Stream is returned to parked, unchanged, without
// invoking any Protocol callback.
func (st *Stream[C, S, P]) Timeout() Result {
	if st.scope.Now().Before(st.deadline) {
		return Parked
	}
	req := st.handler.Timeout(st.transport(), st.scope)
	return st.drive(req)
}

// Wakeup must be called when the host event loop delivers an external
// wakeup message addressed to this Stream.
func (st *Stream[C, S, P]) Wakeup() Result {
	req := st.handler.Wakeup(st.transport(), st.scope)
	return st.drive(req)
}

func (st *Stream[C, S, P]) transport() *Transport[S] {
	return st.impl.transport()
}

func (st *Stream[C, S, P]) armTimer(deadline Deadline) (TimerToken, error) {
	d := deadline.Sub(st.scope.Now())
	if d < 0 {
		d = 0
	}
	return st.scope.SetTimer(d)
}

// drive runs req through the I/O engine and reconciles the resulting
// state: on destruction it cancels the timer and closes the socket; on
// park it re-arms the timer if (and only if) the deadline actually
// changed, then commits the new handler/expectation/deadline.
func (st *Stream[C, S, P]) drive(req Request[C, S, P]) Result {
	req, result := st.impl.action(req, st.scope)
	if result == resultDestroyed {
		st.teardown()
		return Destroyed
	}

	if !req.deadline.Equal(st.deadline) {
		st.scope.ClearTimer(st.timer)
		timer, err := st.armTimer(req.deadline)
		if err != nil {
			// Fatal mid-stream: continuing without an accurate timer
			// would silently break the deadline guarantee the protocol
			// relies on. The old timer is already cleared above, so only
			// the socket needs closing.
			_ = st.impl.socket.Close()
			return Destroyed
		}
		st.timer = timer
	}

	st.handler = req.handler
	st.expect = req.expect
	st.deadline = req.deadline
	return Parked
}

func (st *Stream[C, S, P]) teardown() {
	st.scope.ClearTimer(st.timer)
	_ = st.impl.socket.Close()
}
