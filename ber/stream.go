// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"errors"
	"io"
	"slices"
)

const (
	// minRead is the minimum number of bytes requested from the underlying
	// reader of a [Decoder].
	minRead = 512
	// maxRead limits the number of bytes the buffer of a [Decoder] grows by in
	// a single read. The declared length of an element does not allocate
	// memory before the contents arrive.
	maxRead = 64 << 10
)

// A Decoder reads and decodes a stream of elements according to the encoding
// rules M. Use [Decode] to read the next value.
//
// The Decoder buffers input from the underlying reader as needed. Decoded
// values may reference this buffer. They remain valid until the next call to
// [Decode] with the same Decoder. Use [ToOwned] to retain values for longer.
//
// A Decoder is not safe for concurrent use.
type Decoder[M Mode] struct {
	r   io.Reader
	buf []byte // unread data is buf[off:]
	off int
	err error // sticky error of r
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder[M Mode](r io.Reader) *Decoder[M] {
	return &Decoder[M]{r: r}
}

// Buffered returns the number of buffered bytes that have not been decoded
// yet.
func (d *Decoder[M]) Buffered() int {
	return len(d.buf) - d.off
}

// Decode decodes the next element from d into a value of type T. If the input
// ends cleanly between two elements, io.EOF is returned. If the input ends
// within an element, io.ErrUnexpectedEOF is returned. Other errors are final:
// the decoder does not skip invalid elements.
func Decode[T any, PT DerDecodable[T], M Mode](d *Decoder[M]) (T, error) {
	// discard data consumed by the previous call
	d.buf = d.buf[:copy(d.buf, d.buf[d.off:])]
	d.off = 0
	for {
		rest, v, err := Parse[M, T, PT](d.buf)
		if err == nil {
			d.off = len(d.buf) - len(rest)
			return v, nil
		}
		var iErr *IncompleteError
		if !errors.As(err, &iErr) {
			return v, err
		}
		if d.err != nil {
			if d.err == io.EOF && len(d.buf) > 0 {
				return v, io.ErrUnexpectedEOF
			}
			return v, d.err
		}
		d.fill(iErr.Needed)
	}
}

// fill reads once from the underlying reader, requesting needed bytes but at
// least minRead and at most maxRead bytes.
func (d *Decoder[M]) fill(needed int) {
	d.buf = slices.Grow(d.buf, min(max(needed, minRead), maxRead))
	n, err := d.r.Read(d.buf[len(d.buf):cap(d.buf)])
	d.buf = d.buf[:len(d.buf)+n]
	if err != nil {
		d.err = err
	}
}
