// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// config holds streamdemo's settings. Fields mirror the CLI flags; a JSON
// config file (-c) is decoded directly on top of the flag-derived
// defaults.
type config struct {
	Listen string        `json:"listen"`
	Idle   time.Duration `json:"idle"`
	Quiet  bool          `json:"quiet"`
}

func parseJSONConfig(cfg *config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "streamdemo: open config")
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return errors.Wrap(err, "streamdemo: decode config")
	}
	return nil
}
