// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package substr

import "testing"

func TestFind(t *testing.T) {
	cases := []struct {
		name     string
		haystack string
		needle   string
		want     int
	}{
		{"found at start", "hello world", "hello", 0},
		{"found mid", "hello world", "wor", 6},
		{"not found", "hello world", "xyz", -1},
		{"empty needle", "hello", "", 0},
		{"needle longer than haystack", "hi", "hello", -1},
		{"needle at end", "hello world", "rld", 8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Find([]byte(c.haystack), []byte(c.needle))
			if got != c.want {
				t.Fatalf("Find(%q, %q) = %d, want %d", c.haystack, c.needle, got, c.want)
			}
		})
	}
}
