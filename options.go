// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// Options configures a Stream's buffers: a value struct plus an
// Option func(*Options) slice applied over defaultOptions.
type Options struct {
	// MaxBufferSize caps both the input and output buffers. Zero means
	// MaxBufferSize (4 GiB - 1). Exceeding it is always fatal to the
	// Stream (ErrBufferOverflow).
	MaxBufferSize int

	// InitialBufferSize preallocates this many bytes of capacity for each
	// of the input and output buffers at construction, avoiding the first
	// few grow-and-copy cycles for connections expected to carry any
	// meaningful traffic. Zero means the Buffer starts empty and grows
	// lazily.
	InitialBufferSize int
}

var defaultOptions = Options{
	MaxBufferSize:     MaxBufferSize,
	InitialBufferSize: 0,
}

// Option mutates an Options value built from defaultOptions.
type Option func(*Options)

// WithMaxBufferSize caps a Stream's input and output buffers at n bytes.
func WithMaxBufferSize(n int) Option {
	return func(o *Options) { o.MaxBufferSize = n }
}

// WithInitialBufferSize preallocates n bytes of capacity for each buffer.
func WithInitialBufferSize(n int) Option {
	return func(o *Options) { o.InitialBufferSize = n }
}

func resolveOptions(opts []Option) Options {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func newBuffer(o Options) *Buffer {
	b := NewBuffer(o.MaxBufferSize)
	if o.InitialBufferSize > 0 {
		// Pre-grow via ensureSpace's path: append and discard a throwaway
		// run so callers see the configured capacity without a public
		// "reserve" method duplicating ensureSpace's bookkeeping.
		_ = b.Append(make([]byte, o.InitialBufferSize))
		b.Discard(o.InitialBufferSize)
	}
	return b
}
