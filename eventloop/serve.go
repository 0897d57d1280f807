// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventloop

import (
	"net"

	"github.com/pkg/errors"

	"code.hybscloud.com/stream"
)

// Serve accepts connections from ln forever, wraps each in a non-blocking
// Conn, builds a Stream via create, and hands it to l.Drive. It returns
// only when ln.Accept fails (typically because ln was closed), wrapping
// that error with call-site context.
//
// create is the same seed closure stream.Accept itself takes; Serve is a
// thin loop on top, not a replacement for it.
func Serve[C any, P stream.Protocol[C, *Conn, P]](
	l *Loop[C],
	ln net.Listener,
	create func(*Conn, stream.Scope[C]) stream.Request[C, *Conn, P],
	opts ...stream.Option,
) error {
	for {
		nc, err := ln.Accept()
		if err != nil {
			return errors.Wrap(err, "eventloop: accept")
		}

		sock := Wrap(nc)
		st, err := stream.Accept[C, *Conn, P](sock, l, create, opts...)
		if err != nil {
			_ = nc.Close()
			continue
		}
		l.Drive(st)
	}
}
