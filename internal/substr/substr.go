// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package substr finds a fixed byte needle inside a buffer slice, the way
// a Delimiter expectation needs to: relative to an absolute starting
// offset, returning the match's index relative to that offset.
package substr

import "bytes"

// Find returns the index of needle within haystack, or -1 if absent. It is
// a thin wrapper around bytes.Index kept as its own narrow-purpose
// function so callers don't need to remember that the returned index is
// relative to haystack, not to any outer buffer it was sliced from.
func Find(haystack, needle []byte) int {
	return bytes.Index(haystack, needle)
}
