// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// Protocol is the capability set a user-supplied connection handler
// implements: create (passed separately to New/Accept, see stream.go),
// BytesRead, BytesFlushed, Timeout, Wakeup, and DelimiterNotFound. Each
// returns a Request describing the next wait condition and the (possibly
// new) handler value, or the absent Request to tear the connection down.
//
// Self is the concrete implementing type, following the same F-bounded
// pattern Go code reaches for whenever a method needs to return "this
// type" generically (Protocol has no Rust-style "associated Self" of its
// own): a type MyProto implements Protocol[C, S, MyProto], and a Stream
// handling it is instantiated as Stream[C, S, MyProto].
type Protocol[C any, S StreamSocket, Self any] interface {
	// BytesRead fires when the current Expectation (Bytes, Delimiter, Eof,
	// or BufferEof) is satisfied. n is the count defined by that variant's
	// semantics (see ExpectX doc comments); t.Inbuf holds at least n
	// unread bytes starting at index 0 (except for BufferEof/Eof, whose
	// count equals the whole buffer at callback time by construction).
	BytesRead(t *Transport[S], n int, scope Scope[C]) Request[C, S, Self]

	// BytesFlushed fires when ExpectFlush(n)'s watermark is reached.
	BytesFlushed(t *Transport[S], scope Scope[C]) Request[C, S, Self]

	// Timeout fires when the Stream's deadline is reached, whatever the
	// current Expectation was waiting for.
	Timeout(t *Transport[S], scope Scope[C]) Request[C, S, Self]

	// Wakeup fires when the host event loop delivers an external wakeup
	// message for this Stream (e.g. cross-goroutine notification).
	Wakeup(t *Transport[S], scope Scope[C]) Request[C, S, Self]

	// DelimiterNotFound fires when an ExpectDelimiter's max is exceeded
	// without a match. Implementations may flush an error reply before
	// tearing down; it is the implementation's own responsibility to wait
	// for that flush (e.g. by returning ExpectFlush(0)) rather than
	// returning the absent Request immediately, which would discard any
	// unflushed bytes silently.
	DelimiterNotFound(t *Transport[S], scope Scope[C]) Request[C, S, Self]
}

// Request is the optional (handler, expectation, deadline) triple a
// Protocol callback returns. The zero value is the absent Request,
// meaning "tear down the connection gracefully" — build one with Stop.
// Use Continue to build a present Request.
type Request[C any, S StreamSocket, P any] struct {
	handler  P
	expect   Expectation
	deadline Deadline
	present  bool
}

// Continue builds a present Request: keep the connection alive, driven by
// handler, waiting on expect until deadline.
func Continue[C any, S StreamSocket, P Protocol[C, S, P]](handler P, expect Expectation, deadline Deadline) Request[C, S, P] {
	return Request[C, S, P]{handler: handler, expect: expect, deadline: deadline, present: true}
}

// Stop builds the absent Request: tear down the connection. The Stream
// cancels its timer and closes its socket without invoking any further
// callback.
func Stop[C any, S StreamSocket, P Protocol[C, S, P]]() Request[C, S, P] {
	return Request[C, S, P]{}
}

func (r Request[C, S, P]) isPresent() bool { return r.present }

// DefaultDelimiterNotFound is a mixin a Protocol implementation can embed
// to get the conventional DelimiterNotFound behavior — tear the
// connection down — without writing the method out by hand. Go has no
// trait-default-method mechanism, so an embeddable zero-size struct is
// the idiomatic substitute.
type DefaultDelimiterNotFound[C any, S StreamSocket, P Protocol[C, S, P]] struct{}

// DelimiterNotFound implements Protocol's hook by always tearing down.
func (DefaultDelimiterNotFound[C, S, P]) DelimiterNotFound(_ *Transport[S], _ Scope[C]) Request[C, S, P] {
	return Stop[C, S, P]()
}
