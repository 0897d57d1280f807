// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventloop

import (
	"errors"
	"net"
	"time"

	"code.hybscloud.com/stream"
)

// attemptWindow bounds how long a single Read/Write attempt may wait. The
// net package fails every call made after an already-expired deadline,
// even when bytes (or write buffer space) are available, so each call
// gets a deadline this far in the future instead: data already there is
// returned at once, and an idle socket fails with a timeout error after at
// most this long — the non-blocking-attempt semantics stream.StreamSocket
// needs, without a platform-specific poller.
const attemptWindow = time.Millisecond

// Conn adapts a net.Conn into a stream.StreamSocket by bounding every
// Read/Write call with a deadline attemptWindow ahead, translating the
// resulting timeout into stream.ErrWouldBlock so the engine's
// classifyRead/classifyWrite recognize it.
type Conn struct {
	net.Conn
}

// Wrap adapts c into a stream.StreamSocket suitable for stream.New/Accept.
func Wrap(c net.Conn) *Conn { return &Conn{Conn: c} }

// Read implements stream.StreamSocket.
func (c *Conn) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(attemptWindow)); err != nil {
		return 0, err
	}
	n, err := c.Conn.Read(p)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return n, stream.ErrWouldBlock
		}
	}
	return n, err
}

// Write implements stream.StreamSocket.
func (c *Conn) Write(p []byte) (int, error) {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(attemptWindow)); err != nil {
		return 0, err
	}
	n, err := c.Conn.Write(p)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return n, stream.ErrWouldBlock
		}
	}
	return n, err
}
