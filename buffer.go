// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "io"

// MaxBufferSize is the default hard cap on a Buffer's logical length: 4
// GiB minus one. Override per Stream via Options.MaxBufferSize.
const MaxBufferSize = 1<<32 - 1

// minGrow is the smallest chunk ReadOnceFrom grows the buffer by when it
// has no spare capacity left (or whatever room remains below the cap, if
// that is less), avoiding a storm of 1-byte-sized syscalls.
const minGrow = 4096

// Buffer is an append/drain byte container: data is appended at the tail
// (from ReadOnceFrom or Append) and consumed from the head (via Discard,
// after a Protocol callback has looked at Bytes()/Slice()). It is the
// concrete type behind a Stream's input and output buffers.
//
// It is never shared across Streams and is never accessed from more than
// one goroutine.
type Buffer struct {
	buf []byte
	off int // consumed prefix; buf[off:] is the unread/undrained region
	max int // hard cap on len(buf)-off
}

// NewBuffer returns an empty Buffer capped at maxSize bytes. maxSize <= 0
// means MaxBufferSize.
func NewBuffer(maxSize int) *Buffer {
	if maxSize <= 0 {
		maxSize = MaxBufferSize
	}
	return &Buffer{max: maxSize}
}

// Len reports the number of unread/undrained bytes currently buffered.
func (b *Buffer) Len() int { return len(b.buf) - b.off }

// Bytes returns the unread region. The slice is only valid until the next
// mutating call on b.
func (b *Buffer) Bytes() []byte { return b.buf[b.off:] }

// Slice returns buf[i:j] relative to the start of the unread region.
func (b *Buffer) Slice(i, j int) []byte { return b.buf[b.off+i : b.off+j] }

// Discard drops the first n unread bytes, as a Protocol callback does
// after consuming them.
func (b *Buffer) Discard(n int) {
	if n <= 0 {
		return
	}
	b.off += n
	if b.off >= len(b.buf) {
		b.buf = b.buf[:0]
		b.off = 0
	}
}

// Append copies p onto the tail of the buffer, growing (and possibly
// compacting) as needed. It is how a Protocol callback enqueues output
// bytes into a Transport's outbuf.
func (b *Buffer) Append(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := b.ensureSpace(len(p)); err != nil {
		return err
	}
	b.buf = append(b.buf, p...)
	return nil
}

// Write implements io.Writer in terms of Append, so a Buffer can be handed
// anywhere an io.Writer is expected (e.g. encoding helpers).
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.Append(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ReadOnceFrom performs exactly one Read call against r, appending
// whatever it returns to the buffer's tail. The engine relies on this
// being a single read (not a loop): re-checking the current Expectation
// after every such read is what bounds buffer growth when a fast peer
// outpaces a slow consumer.
func (b *Buffer) ReadOnceFrom(r io.Reader) (int, error) {
	if b.Len() >= b.max {
		return 0, ErrBufferOverflow
	}
	if cap(b.buf)-len(b.buf) == 0 {
		grow := minGrow
		if room := b.max - b.Len(); grow > room {
			grow = room
		}
		if err := b.ensureSpace(grow); err != nil {
			return 0, err
		}
	}
	tail := b.buf[len(b.buf):cap(b.buf)]
	n, err := r.Read(tail)
	b.buf = b.buf[:len(b.buf)+n]
	return n, err
}

// WriteOnceTo performs exactly one Write call against w, draining from the
// buffer's head whatever that call accepts. Unlike ReadOnceFrom, callers
// (streamImpl.write) loop this until it would-block or the buffer empties,
// since output draining is greedy.
func (b *Buffer) WriteOnceTo(w io.Writer) (int, error) {
	if b.Len() == 0 {
		return 0, nil
	}
	n, err := w.Write(b.buf[b.off:])
	b.off += n
	if b.off == len(b.buf) {
		b.buf = b.buf[:0]
		b.off = 0
	}
	return n, err
}

// ensureSpace guarantees room for n more tail bytes, compacting the
// already-consumed prefix first and growing geometrically within the cap.
// It returns ErrBufferOverflow if n additional bytes would exceed max.
func (b *Buffer) ensureSpace(n int) error {
	if b.off > 0 && cap(b.buf)-len(b.buf) < n {
		copy(b.buf, b.buf[b.off:])
		b.buf = b.buf[:len(b.buf)-b.off]
		b.off = 0
	}
	if cap(b.buf)-len(b.buf) >= n {
		return nil
	}
	need := len(b.buf) + n
	if need > b.max {
		return ErrBufferOverflow
	}
	newCap := cap(b.buf) * 2
	if newCap < need {
		newCap = need
	}
	if newCap > b.max {
		newCap = b.max
	}
	nb := make([]byte, len(b.buf), newCap)
	copy(nb, b.buf)
	b.buf = nb
	return nil
}
