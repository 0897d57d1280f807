// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventloop

import (
	"bufio"
	"net"
	"testing"
	"time"

	"code.hybscloud.com/stream"
)

// lineEchoCtx carries nothing the engine needs; it exists to prove a
// caller-supplied context value reaches every callback via Scope.Context.
type lineEchoCtx struct{}

type lineEcho struct {
	stream.DefaultDelimiterNotFound[*lineEchoCtx, *Conn, lineEcho]
}

func newLineEcho(_ *Conn, scope stream.Scope[*lineEchoCtx]) stream.Request[*lineEchoCtx, *Conn, lineEcho] {
	deadline := scope.Now().Add(5 * time.Second)
	return stream.Continue[*lineEchoCtx, *Conn, lineEcho](lineEcho{}, stream.ExpectDelimiter(0, []byte("\n"), 4096), deadline)
}

func (h lineEcho) BytesRead(t *stream.Transport[*Conn], n int, scope stream.Scope[*lineEchoCtx]) stream.Request[*lineEchoCtx, *Conn, lineEcho] {
	line := t.Inbuf.Slice(0, n+1)
	_ = t.Outbuf.Append(line)
	t.Inbuf.Discard(n + 1)
	deadline := scope.Now().Add(5 * time.Second)
	return stream.Continue[*lineEchoCtx, *Conn, lineEcho](h, stream.ExpectDelimiter(0, []byte("\n"), 4096), deadline)
}

func (h lineEcho) BytesFlushed(t *stream.Transport[*Conn], scope stream.Scope[*lineEchoCtx]) stream.Request[*lineEchoCtx, *Conn, lineEcho] {
	deadline := scope.Now().Add(5 * time.Second)
	return stream.Continue[*lineEchoCtx, *Conn, lineEcho](h, stream.ExpectDelimiter(0, []byte("\n"), 4096), deadline)
}

func (h lineEcho) Timeout(_ *stream.Transport[*Conn], _ stream.Scope[*lineEchoCtx]) stream.Request[*lineEchoCtx, *Conn, lineEcho] {
	return stream.Stop[*lineEchoCtx, *Conn, lineEcho]()
}

func (h lineEcho) Wakeup(t *stream.Transport[*Conn], scope stream.Scope[*lineEchoCtx]) stream.Request[*lineEchoCtx, *Conn, lineEcho] {
	deadline := scope.Now().Add(5 * time.Second)
	return stream.Continue[*lineEchoCtx, *Conn, lineEcho](h, stream.ExpectDelimiter(0, []byte("\n"), 4096), deadline)
}

func TestLoopServeEchoesLines(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	loop := NewLoop(&lineEchoCtx{})
	go func() {
		_ = Serve[*lineEchoCtx, lineEcho](loop, ln, newLineEcho)
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if reply != "hello\n" {
		t.Fatalf("reply = %q, want %q", reply, "hello\n")
	}
}
