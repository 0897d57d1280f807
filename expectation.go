// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// expectationKind tags the variant held by an Expectation.
type expectationKind uint8

const (
	expectBytes expectationKind = iota
	expectBufferEof
	expectEof
	expectDelimiter
	expectFlush
	expectSleep
)

// Expectation is a declarative wait condition attached to a connection: it
// tells the engine what to read or flush before the next Protocol callback
// fires. Build one with the ExpectX constructors; the zero value is not a
// valid Expectation.
type Expectation struct {
	kind expectationKind

	// Bytes(n) / Eof(min): n or min.
	n int

	// Delimiter(offset, needle, max)
	offset int
	needle []byte
	max    int

	// Flush(n)
	flush int
}

// ExpectBytes waits until the input buffer holds at least n bytes.
//
// The callback BytesRead receives n as the reported count; the buffer may
// hold more. The callback is not required to consume any bytes — if it
// does not, the same expectation re-satisfies immediately on the next
// iteration. ExpectBytes(0) is satisfied immediately.
func ExpectBytes(n int) Expectation {
	return Expectation{kind: expectBytes, n: n}
}

// ExpectBufferEof waits until the peer half-closes, delivering everything
// buffered if it is at most max bytes. If the buffer grows past max before
// the peer half-closes, the connection is torn down without invoking any
// callback.
func ExpectBufferEof(max int) Expectation {
	return Expectation{kind: expectBufferEof, max: max}
}

// ExpectEof waits until the peer half-closes, or until more than min bytes
// are buffered, whichever comes first. Unlike ExpectBufferEof, whatever is
// buffered is always delivered to BytesRead; there is no failure mode.
func ExpectEof(min int) Expectation {
	return Expectation{kind: expectEof, n: min}
}

// ExpectDelimiter searches inbuf[offset:] for needle. The search offset is
// absolute and does not slide as more data arrives: it is always measured
// from the start of the buffer. BytesRead is reported the number of
// payload bytes preceding the needle (i.e. the needle's index relative to
// offset); the needle itself is guaranteed to still be in the buffer at
// callback time. max bounds total buffer growth, offset included: if the
// buffer exceeds max bytes without a match, DelimiterNotFound fires
// instead.
func ExpectDelimiter(offset int, needle []byte, max int) Expectation {
	return Expectation{kind: expectDelimiter, offset: offset, needle: needle, max: max}
}

// ExpectFlush waits until the output buffer holds at most n bytes, then
// invokes BytesFlushed. If the output buffer is already at or below the
// watermark, it fires immediately without any I/O.
func ExpectFlush(n int) Expectation {
	return Expectation{kind: expectFlush, flush: n}
}

// ExpectSleep waits only for the Stream's deadline or an external Wakeup;
// it is never satisfied by I/O.
func ExpectSleep() Expectation {
	return Expectation{kind: expectSleep}
}
