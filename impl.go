// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "code.hybscloud.com/stream/internal/substr"

// ioResult is the outcome of a driving step returned to the caller of
// action: either the Stream should be re-parked in the host event loop,
// or it has been torn down and must not be touched again.
type ioResult uint8

const (
	resultParked ioResult = iota
	resultDestroyed
)

// streamImpl is the I/O engine: exclusive owner of the socket and its two
// buffers. It knows nothing about timers or deadlines — that bookkeeping
// belongs to Stream (stream.go), which decomposes into a streamImpl plus
// a Request before calling action and recomposes afterward.
type streamImpl[C any, S StreamSocket, P Protocol[C, S, P]] struct {
	socket S
	inbuf  *Buffer
	outbuf *Buffer
}

func (si *streamImpl[C, S, P]) transport() *Transport[S] {
	return &Transport[S]{Sock: si.socket, Inbuf: si.inbuf, Outbuf: si.outbuf}
}

// read performs exactly one read attempt, classifying the raw result.
// action re-checks the current Expectation after every read: this is what
// keeps an unconsumed, fast-arriving stream from growing its input buffer
// without bound — the Protocol gets a chance to consume and shrink the
// expectation as soon as it is satisfied, before more bytes are pulled in.
func (si *streamImpl[C, S, P]) read() ioOutcome {
	n, err := si.inbuf.ReadOnceFrom(si.socket)
	return classifyRead(n, err)
}

// write drains the output buffer greedily: as long as the socket accepts
// bytes, keep writing. It reports whether the buffer is now fully drained
// (true) or blocked with data still queued (false); a non-nil error means
// the connection must be torn down.
//
// Writing is greedy rather than single-shot because output is already
// bounded by the Protocol's own Flush watermarks: there is no equivalent
// risk of unbounded growth to guard against on the write side.
func (si *streamImpl[C, S, P]) write() (drained bool, err error) {
	for {
		if si.outbuf.Len() == 0 {
			return true, nil
		}
		n, werr := si.outbuf.WriteOnceTo(si.socket)
		switch classifyWrite(n, werr) {
		case ioDone:
			continue
		case ioNoOp:
			return si.outbuf.Len() == 0, nil
		default:
			return false, errTeardown
		}
	}
}

// errTeardown is an internal sentinel: action() never surfaces a
// particular cause to the caller beyond "destroyed" — errors inside the
// action loop collapse to a single binary outcome.
var errTeardown = teardownError{}

type teardownError struct{}

func (teardownError) Error() string { return "stream: connection torn down" }

// action drives req to completion against the current buffer/socket
// state: it alternates between draining outbuf and satisfying the current
// Expectation from inbuf, invoking Protocol callbacks as expectations are
// met, until the Stream should be parked (returned to the host event
// loop) or torn down. This is the single entry point through which a
// request advances.
func (si *streamImpl[C, S, P]) action(req Request[C, S, P], scope Scope[C]) (Request[C, S, P], ioResult) {
	if !req.isPresent() {
		return req, resultDestroyed
	}

	canWrite, err := si.write()
	if err != nil {
		return req, resultDestroyed
	}

outer:
	for {
		if canWrite {
			canWrite, err = si.write()
			if err != nil {
				return req, resultDestroyed
			}
		}

		switch req.expect.kind {
		case expectBytes:
			for {
				if si.inbuf.Len() >= req.expect.n {
					req = req.handler.BytesRead(si.transport(), req.expect.n, scope)
					if !req.isPresent() {
						return req, resultDestroyed
					}
					continue outer
				}
				switch si.read() {
				case ioDone:
					continue
				case ioNoOp:
					return req, resultParked
				default: // ioEof, ioError: a fixed byte count has no valid half-close
					return req, resultDestroyed
				}
			}

		case expectDelimiter:
			for {
				if si.inbuf.Len() > req.expect.offset {
					idx := substr.Find(si.inbuf.Slice(req.expect.offset, si.inbuf.Len()), req.expect.needle)
					if idx >= 0 {
						req = req.handler.BytesRead(si.transport(), idx, scope)
						if !req.isPresent() {
							return req, resultDestroyed
						}
						continue outer
					}
				}
				if si.inbuf.Len() > req.expect.max {
					req = req.handler.DelimiterNotFound(si.transport(), scope)
					if !req.isPresent() {
						return req, resultDestroyed
					}
					continue outer
				}
				switch si.read() {
				case ioDone:
					continue
				case ioNoOp:
					return req, resultParked
				default:
					return req, resultDestroyed
				}
			}

		case expectEof:
			for {
				if si.inbuf.Len() > req.expect.n {
					n := si.inbuf.Len()
					req = req.handler.BytesRead(si.transport(), n, scope)
					if !req.isPresent() {
						return req, resultDestroyed
					}
					continue outer
				}
				switch si.read() {
				case ioEof:
					n := si.inbuf.Len()
					req = req.handler.BytesRead(si.transport(), n, scope)
					if !req.isPresent() {
						return req, resultDestroyed
					}
					continue outer
				case ioDone:
					continue
				case ioNoOp:
					return req, resultParked
				default:
					return req, resultDestroyed
				}
			}

		case expectBufferEof:
			for {
				if si.inbuf.Len() > req.expect.max {
					return req, resultDestroyed // silent: overflow before EOF gets no callback
				}
				switch si.read() {
				case ioEof:
					n := si.inbuf.Len()
					req = req.handler.BytesRead(si.transport(), n, scope)
					if !req.isPresent() {
						return req, resultDestroyed
					}
					continue outer
				case ioDone:
					continue
				case ioNoOp:
					return req, resultParked
				default:
					return req, resultDestroyed
				}
			}

		case expectFlush:
			if si.outbuf.Len() <= req.expect.flush {
				req = req.handler.BytesFlushed(si.transport(), scope)
				if !req.isPresent() {
					return req, resultDestroyed
				}
				continue outer
			}
			return req, resultParked

		case expectSleep:
			return req, resultParked
		}
	}
}
