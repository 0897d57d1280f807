// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command streamdemo is a minimal TCP line-echo server wiring the
// eventloop reference host to the stream engine. It exists to exercise
// both packages end to end against a real listener.
package main

import (
	"log"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"code.hybscloud.com/stream/eventloop"
)

// VERSION is populated via build flags when packaging official binaries.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "streamdemo"
	myApp.Usage = "line-echo server over the stream engine"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "listen, l",
			Value: ":7000",
			Usage: "TCP listen address",
		},
		cli.DurationFlag{
			Name:  "idle",
			Value: 60 * time.Second,
			Usage: "per-connection idle timeout before the engine tears the connection down",
		},
		cli.BoolFlag{
			Name:  "quiet",
			Usage: "suppress the startup listening log line (connections are not logged)",
		},
		cli.StringFlag{
			Name:  "c",
			Usage: "optional JSON config file; overrides the flags above",
		},
	}
	myApp.Action = func(c *cli.Context) error {
		cfg := config{
			Listen: c.String("listen"),
			Idle:   c.Duration("idle"),
			Quiet:  c.Bool("quiet"),
		}
		if path := c.String("c"); path != "" {
			if err := parseJSONConfig(&cfg, path); err != nil {
				return err
			}
		}
		return run(cfg)
	}

	if err := myApp.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return errors.Wrap(err, "streamdemo: listen")
	}
	defer ln.Close()

	if !cfg.Quiet {
		log.Println("streamdemo: listening on", cfg.Listen)
	}

	loop := eventloop.NewLoop(&echoContext{idleTimeout: cfg.Idle})
	err = eventloop.Serve[*echoContext, echo](loop, ln, newEchoConnection)
	return errors.Wrap(err, "streamdemo: serve")
}
