// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"errors"
	"io"
)

// StreamSocket is the minimal non-blocking socket contract the engine
// needs: byte-oriented Read/Write that may return ErrWouldBlock instead of
// blocking, and a Close that releases the underlying descriptor. A raw
// *net.TCPConn in non-blocking mode, or any edge-triggered wrapper around
// one, satisfies this.
type StreamSocket interface {
	io.Reader
	io.Writer
	io.Closer
}

// ioOutcome is the engine's 4-way classification of a single raw
// read/write attempt — a bare bool can't distinguish Eof from NoOp, and
// the Expectation variants driving the loop react to them differently.
type ioOutcome uint8

const (
	ioDone ioOutcome = iota // >=1 byte transferred
	ioNoOp                  // would block; no progress, try later
	ioEof                   // peer half-closed (reads only; a zero-progress write is ioError)
	ioError                 // unrecoverable
)

// classifyRead turns a raw sock.Read result into an ioOutcome. It guards
// against Readers that violate the io.Reader contract by returning
// (0, nil): without this guard the engine's action loop could spin
// indefinitely on a misbehaving socket implementation.
func classifyRead(n int, err error) ioOutcome {
	if n > 0 {
		return ioDone
	}
	if err == nil {
		return ioError // (0, nil): broken Reader, io.ErrNoProgress territory
	}
	if err == io.EOF {
		return ioEof
	}
	if errors.Is(err, ErrWouldBlock) {
		return ioNoOp
	}
	return ioError
}

// classifyWrite turns a raw sock.Write result into an ioOutcome. A write
// of zero bytes with no would-block signal is treated as a fatal error
// rather than end-of-stream: unlike reads, there is no legitimate "peer
// half-closed" interpretation of a short write.
func classifyWrite(n int, err error) ioOutcome {
	if n > 0 {
		return ioDone
	}
	if err == nil {
		return ioError
	}
	if errors.Is(err, ErrWouldBlock) {
		return ioNoOp
	}
	return ioError
}
