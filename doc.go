// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stream provides a reusable, non-blocking byte-stream protocol
// driver: the engine that sits between a non-blocking socket and a
// user-supplied protocol state machine, translating low-level readiness
// events into high-level "expectation" completions (read N bytes, read
// until a delimiter, flush output to a watermark, wait until a deadline).
//
// It is the connection-level substrate on which line- or frame-oriented
// protocols (HTTP-style, SMTP-style, custom length-prefixed wire formats)
// are built. The package itself never parses a protocol, pools
// connections, multiplexes logical streams on one socket, or adds flow
// control beyond what TCP already provides; those are the caller's
// concern, expressed through the Protocol type parameter.
//
// Semantics and design:
//   - Expectation-driven: a Protocol never calls Read/Write directly.
//     Instead, each callback returns a Request describing what to wait for
//     next (Bytes, Delimiter, BufferEof, Eof, Flush, or Sleep) plus a
//     Deadline. The engine drives the socket and invokes the matching
//     callback once the wait condition is satisfied.
//   - Non-blocking first: iox.ErrWouldBlock is the sole control-flow signal
//     the engine's own sockets use to suspend; a Stream never blocks a
//     goroutine waiting on I/O.
//   - Edge-triggered, register-once: a Stream's socket is registered with
//     its host event loop exactly once, with both readable and writable
//     interest, at construction. The engine never re-registers.
//   - Single-threaded cooperative: a Stream belongs to exactly one event
//     loop goroutine for its entire lifetime; there is no internal locking.
package stream
