// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// Transport is the short-lived, borrowed view of a connection's socket
// and buffers handed to every Protocol callback. It is the exclusive path
// for mutation during a callback: the engine never aliases Sock, Inbuf,
// or Outbuf outside of one (the transport is rebuilt fresh for each
// callback), and Transport values must not be retained past the callback
// that received them.
type Transport[S StreamSocket] struct {
	// Sock is the underlying socket, exposed for attribute inspection
	// (e.g. peer address, TCP_NODELAY) or, rarely, direct use. Protocols
	// should prefer Inbuf/Outbuf over calling Sock.Read/Write directly:
	// doing so bypasses the engine's buffering and read/write accounting.
	Sock S

	// Inbuf holds bytes already read from the peer. A BytesRead callback
	// inspects Inbuf.Bytes()[:n] (or Slice) and calls Inbuf.Discard to
	// consume what it used.
	Inbuf *Buffer

	// Outbuf accumulates bytes queued for the peer. A callback calls
	// Outbuf.Append (or Outbuf.Write) to enqueue output; the engine drains
	// it greedily between callbacks.
	Outbuf *Buffer
}
