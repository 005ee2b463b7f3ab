// Package vlq implements [Variable-length quantity] encoding as used in BER tag
// numbers and object identifier arcs. A VLQ is essentially a base-128
// representation of an unsigned integer with the eighth bit of each byte
// marking continuation. VLQ is identical to [LEB128] except in endianness.
//
// [Variable-length quantity]: https://en.wikipedia.org/wiki/Variable-length_quantity
// [LEB128]: https://en.wikipedia.org/wiki/LEB128
package vlq

import (
	"errors"
	"io"
	"math/bits"
	"unsafe"
)

// Unsigned is the set of types that can be encoded as a VLQ.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var (
	errNotMinimal = errors.New("vlq is not minimally encoded")
	errOverflow   = errors.New("vlq too large for target type")
)

// Parse decodes a minimally encoded VLQ from the beginning of b and returns the
// value together with the number of bytes it occupies. If b ends before the
// VLQ is complete, io.ErrUnexpectedEOF is returned (io.EOF if b is empty).
func Parse[T Unsigned](b []byte) (T, int, error) {
	r := sliceReader(b)
	v, err := read[T](&r)
	return v, len(b) - len(r), err
}

// read decodes a minimally encoded VLQ from r. The maximum allowed value is
// limited by the size of T.
func read[T Unsigned](r io.ByteReader) (ret T, err error) {
	b, err := r.ReadByte()
	if err != nil {
		// io.EOF stays io.EOF
		return 0, err
	}
	if b == 0x80 {
		return 0, errNotMinimal
	}

	ret = T(b & 0x7f)
	numBits := bits.Len8(b & 0x7f)

	for b&0x80 != 0 {
		if b, err = r.ReadByte(); err != nil {
			break
		}
		ret <<= 7
		ret |= T(b & 0x7f)

		numBits += 7
		if numBits > int(unsafe.Sizeof(ret)*8) {
			return 0, errOverflow
		}
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return ret, err
}

// Size returns the number of bytes needed to encode n as a VLQ.
func Size[T Unsigned](n T) int {
	if n == 0 {
		return 1
	}
	return (bits.Len64(uint64(n)) + 6) / 7
}

// Append appends the VLQ encoding of i to b and returns the extended slice.
func Append[T Unsigned](b []byte, i T) []byte {
	for j := Size(i) - 1; j >= 0; j-- {
		b = append(b, digit(i, j))
	}
	return b
}

// digit returns the j-th base-128 digit of i (counted from the least
// significant digit) including the continuation bit.
func digit[T Unsigned](i T, j int) byte {
	b := byte(i>>(j*7)) & 0x7f
	if j > 0 {
		b |= 0x80
	}
	return b
}

// sliceReader implements io.ByteReader on a byte slice.
type sliceReader []byte

func (r *sliceReader) ReadByte() (byte, error) {
	if len(*r) == 0 {
		return 0, io.EOF
	}
	b := (*r)[0]
	*r = (*r)[1:]
	return b, nil
}
