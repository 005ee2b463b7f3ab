package tlv

import (
	"errors"
	"io"
	"math"
	"math/bits"

	"codello.dev/asn1/v2"
	"codello.dev/asn1/v2/internal/vlq"
)

// ParseHeader decodes a TLV header from the beginning of b and returns it
// together with the number of bytes it occupies.
//
// If b ends before the header is complete, an [*IncompleteError] is returned.
// ParseHeader accepts all header encodings permitted by BER, including
// long-form tags for small tag numbers and length octets with leading zeros.
// Callers enforcing DER can compare the number of bytes consumed against
// [Header.Size].
func ParseHeader(b []byte) (h Header, n int, err error) {
	if len(b) < 2 {
		return h, 0, &IncompleteError{Needed: 2 - len(b)}
	}
	c := b[0]
	h.Tag = asn1.Tag{Class: asn1.Class(c >> 6), Number: uint32(c & 0x1f)}
	h.Constructed = c&0x20 == 0x20
	n = 1

	// If the bottom five bits are set, then the tag number is actually VLQ-encoded
	if c&0x1f == 0x1f {
		num, k, err := vlq.Parse[uint32](b[1:])
		n += k
		switch {
		case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
			// at least one more tag byte and the length byte
			return h, 0, &IncompleteError{Needed: 2}
		case err != nil:
			return h, 0, &SyntaxError{Err: err}
		}
		h.Tag.Number = num
	}

	if len(b) <= n {
		return h, 0, &IncompleteError{Needed: 1}
	}
	c = b[n]
	n++
	switch {
	case c&0x80 == 0:
		// The length is encoded in the bottom 7 bits.
		h.Length = int(c)
	case c == 0x80:
		h.Length = LengthIndefinite
		if !h.Constructed {
			return h, 0, &SyntaxError{Err: errors.New("indefinite-length primitive data value")}
		}
	case c == 0xff:
		// reserved for future use, see Rec. ITU-T X.690, Section 8.1.3.5
		return h, 0, &SyntaxError{Err: errors.New("invalid length octet")}
	default:
		// Bottom 7 bits give the number of length bytes to follow.
		numBytes := int(c & 0x7f)
		if len(b) < n+numBytes {
			return h, 0, &IncompleteError{Needed: n + numBytes - len(b)}
		}
		for _, d := range b[n : n+numBytes] {
			if h.Length > math.MaxInt>>8 {
				// We can't shift h.Length up without overflowing.
				return h, 0, &SyntaxError{Err: errors.New("length too large")}
			}
			h.Length = h.Length<<8 | int(d)
		}
		n += numBytes
	}
	return h, n, nil
}

// Size returns the number of bytes needed for the DER encoding of h. This is
// the minimal encoding of h permitted by BER.
func (h Header) Size() int {
	n := 2
	if h.Tag.Number >= 31 {
		n += vlq.Size(h.Tag.Number)
	}
	if h.Length != LengthIndefinite && h.Length >= 128 {
		n += (bits.Len(uint(h.Length)) + 7) / 8
	}
	return n
}

// Append appends the minimal encoding of h to b and returns the extended
// slice. Append does not validate h.
func (h Header) Append(b []byte) []byte {
	c := uint8(h.Tag.Class&0b11) << 6
	if h.Constructed {
		c |= 0x20
	}
	if h.Tag.Number < 31 {
		b = append(b, c|uint8(h.Tag.Number))
	} else {
		b = vlq.Append(append(b, c|0x1f), h.Tag.Number)
	}

	switch {
	case h.Length == LengthIndefinite:
		return append(b, 0x80)
	case h.Length >= 128:
		numBytes := (bits.Len(uint(h.Length)) + 7) / 8
		b = append(b, 0x80|byte(numBytes))
		for ; numBytes > 0; numBytes-- {
			b = append(b, byte(h.Length>>uint((numBytes-1)*8)))
		}
		return b
	}
	return append(b, byte(h.Length))
}

// WriteTo writes the minimal encoding of h to w in a single call to w.Write.
// Any error returned by w is returned unchanged.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	var buf [16]byte
	n, err := w.Write(h.Append(buf[:0]))
	return int64(n), err
}
