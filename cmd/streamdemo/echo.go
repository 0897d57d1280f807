// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"code.hybscloud.com/stream"
	"code.hybscloud.com/stream/eventloop"
)

// echoContext is the Scope value threaded through every callback. It
// carries nothing the engine cares about; the echo callbacks read the idle
// timeout off it directly rather than through a side channel.
type echoContext struct {
	idleTimeout time.Duration
}

// echo is a minimal line protocol: read up to newline, write the line
// back verbatim followed by the newline, repeat. It embeds
// DefaultDelimiterNotFound so an over-long line (no newline within
// maxLine bytes) tears the connection down instead of buffering forever.
type echo struct {
	stream.DefaultDelimiterNotFound[*echoContext, *eventloop.Conn, echo]
}

const maxLine = 64 * 1024

func newEchoConnection(_ *eventloop.Conn, scope stream.Scope[*echoContext]) stream.Request[*echoContext, *eventloop.Conn, echo] {
	deadline := scope.Now().Add(scope.Context().idleTimeout)
	return stream.Continue[*echoContext, *eventloop.Conn, echo](echo{}, stream.ExpectDelimiter(0, []byte("\n"), maxLine), deadline)
}

func (h echo) BytesRead(t *stream.Transport[*eventloop.Conn], n int, scope stream.Scope[*echoContext]) stream.Request[*echoContext, *eventloop.Conn, echo] {
	line := t.Inbuf.Slice(0, n+1) // include the newline the delimiter matched on
	if err := t.Outbuf.Append(line); err != nil {
		return stream.Stop[*echoContext, *eventloop.Conn, echo]()
	}
	t.Inbuf.Discard(n + 1)

	deadline := scope.Now().Add(scope.Context().idleTimeout)
	return stream.Continue[*echoContext, *eventloop.Conn, echo](h, stream.ExpectDelimiter(0, []byte("\n"), maxLine), deadline)
}

func (h echo) BytesFlushed(t *stream.Transport[*eventloop.Conn], scope stream.Scope[*echoContext]) stream.Request[*echoContext, *eventloop.Conn, echo] {
	deadline := scope.Now().Add(scope.Context().idleTimeout)
	return stream.Continue[*echoContext, *eventloop.Conn, echo](h, stream.ExpectDelimiter(0, []byte("\n"), maxLine), deadline)
}

func (h echo) Timeout(_ *stream.Transport[*eventloop.Conn], _ stream.Scope[*echoContext]) stream.Request[*echoContext, *eventloop.Conn, echo] {
	return stream.Stop[*echoContext, *eventloop.Conn, echo]()
}

func (h echo) Wakeup(t *stream.Transport[*eventloop.Conn], scope stream.Scope[*echoContext]) stream.Request[*echoContext, *eventloop.Conn, echo] {
	deadline := scope.Now().Add(scope.Context().idleTimeout)
	return stream.Continue[*echoContext, *eventloop.Conn, echo](h, stream.ExpectDelimiter(0, []byte("\n"), maxLine), deadline)
}
