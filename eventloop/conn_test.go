// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventloop

import (
	"errors"
	"net"
	"testing"
	"time"

	"code.hybscloud.com/stream"
)

func TestConnReadWouldBlockOnEmptyPipe(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	c := Wrap(server)
	buf := make([]byte, 16)
	_, err := c.Read(buf)
	if !errors.Is(err, stream.ErrWouldBlock) {
		t.Fatalf("Read on empty pipe = %v, want ErrWouldBlock", err)
	}
}

func TestConnReadReturnsAvailableData(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	c := Wrap(server)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = client.Write([]byte("hi"))
	}()

	// net.Pipe is synchronous: the Write above blocks until something
	// reads, so poll Read until it observes the handoff.
	buf := make([]byte, 16)
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		n, err := c.Read(buf)
		if err == nil {
			if string(buf[:n]) != "hi" {
				t.Fatalf("Read = %q, want %q", buf[:n], "hi")
			}
			<-done
			return
		}
		if !errors.Is(err, stream.ErrWouldBlock) {
			t.Fatalf("Read = %v, want ErrWouldBlock or success", err)
		}
	}
	t.Fatalf("Read never observed the peer's write")
}

func TestConnWriteWouldBlockWithoutReader(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	c := Wrap(server)
	_, err := c.Write([]byte("hello"))
	if !errors.Is(err, stream.ErrWouldBlock) {
		t.Fatalf("Write with no reader = %v, want ErrWouldBlock", err)
	}
}
