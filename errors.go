// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"errors"

	"code.hybscloud.com/iox"
)

var (
	// ErrProtocolStopped is returned by New/Accept when the protocol's
	// create callback returns the absent Request right at the start.
	ErrProtocolStopped = errors.New("stream: protocol stopped at create")

	// ErrTimerRegistration is returned by New/Accept, or surfaces as a
	// fatal teardown mid-stream, when the host Scope rejects a timer
	// registration for the requested deadline.
	ErrTimerRegistration = errors.New("stream: timer registration failed")

	// ErrSocketRegistration is returned by New/Accept when the host Scope
	// rejects the one-time, edge-triggered socket registration.
	ErrSocketRegistration = errors.New("stream: socket registration failed")

	// ErrBufferOverflow reports that a Buffer was asked to grow past its
	// configured cap. It is always fatal to the Stream that raised it.
	ErrBufferOverflow = errors.New("stream: buffer exceeds maximum size")
)

// These are re-exposed as package-level aliases so callers driving a
// StreamSocket directly (outside a Protocol callback) can recognize the
// same control-flow signal the engine itself reacts to, without importing
// iox directly.
var (
	// ErrWouldBlock means "no further progress without waiting". It is an
	// expected, non-failure control-flow signal from a non-blocking
	// socket; the engine suspends (returns to the event loop) rather than
	// treating it as an I/O error.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means "this completion is usable and more completions will
	// follow" from a socket that delivers data incrementally. The engine
	// treats it the same as a successful partial read/write.
	ErrMore = iox.ErrMore
)
