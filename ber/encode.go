// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"bytes"
	"io"

	"codello.dev/asn1/v2"
	"codello.dev/asn1/v2/tlv"
)

// DerEncoder is implemented by types that can be encoded using DER.
//
// DerLen returns the total number of bytes of the encoding including the
// header. WriteDerHeader writes the header and WriteDerContent writes the
// contents octets. Implementations must keep the three methods consistent with
// each other. Errors returned by w must be returned unchanged.
type DerEncoder interface {
	asn1.DynTagged
	DerLen() (int, error)
	WriteDerHeader(w io.Writer) (int, error)
	WriteDerContent(w io.Writer) (int, error)
}

// DerRawEncoder is implemented by types that can reproduce the encoding they
// were decoded from. The output of WriteDerRaw is not required to be valid
// DER.
type DerRawEncoder interface {
	WriteDerRaw(w io.Writer) (int, error)
}

// WriteDer writes the DER encoding of v to w and returns the number of bytes
// written. The header and the contents are written by separate calls.
func WriteDer(w io.Writer, v DerEncoder) (int, error) {
	n, err := v.WriteDerHeader(w)
	if err != nil {
		return n, err
	}
	m, err := v.WriteDerContent(w)
	return n + m, err
}

// WriteDerRaw writes v to w using the WriteDerRaw method of v, if available.
// Otherwise the DER encoding of v is written. The output is not guaranteed to
// be valid DER.
func WriteDerRaw(w io.Writer, v DerEncoder) (int, error) {
	if rv, ok := v.(DerRawEncoder); ok {
		return rv.WriteDerRaw(w)
	}
	return WriteDer(w, v)
}

// MarshalDer returns the DER encoding of v.
func MarshalDer(v DerEncoder) ([]byte, error) {
	l, err := v.DerLen()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, l))
	if _, err = WriteDer(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalDerRaw returns the bytes written by [WriteDerRaw].
func MarshalDerRaw(v DerEncoder) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := WriteDerRaw(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodedLen returns the length of an encoding with a minimal header for the
// given tag and contentLen bytes of contents.
func encodedLen(tag asn1.Tag, contentLen int) int {
	return tlv.Header{Tag: tag, Length: contentLen}.Size() + contentLen
}

// writeHeader writes a minimal header to w.
func writeHeader(w io.Writer, tag asn1.Tag, constructed bool, contentLen int) (int, error) {
	n, err := tlv.Header{Tag: tag, Constructed: constructed, Length: contentLen}.WriteTo(w)
	return int(n), err
}

// appendWriter is an io.Writer that appends to a byte slice.
type appendWriter struct {
	b *[]byte
}

func (w appendWriter) Write(p []byte) (int, error) {
	*w.b = append(*w.b, p...)
	return len(p), nil
}
