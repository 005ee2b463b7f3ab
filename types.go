// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

//region [UNIVERSAL 3] BIT STRING

// BitString is the value of an ASN.1 BIT STRING. Bits are packed into Bytes
// starting at the most significant bit of the first byte. Only the first
// BitLength bits are significant, the remaining bits of the last byte are
// padding.
//
// See also section 22 of Rec. ITU-T X.680.
type BitString struct {
	Bytes     []byte // bits packed into bytes.
	BitLength int    // length in bits.
}

// FixedTag returns [UNIVERSAL 3].
func (BitString) FixedTag() Tag { return Universal(TagBitString) }

// Tag returns [UNIVERSAL 3].
func (s BitString) Tag() Tag { return s.FixedTag() }

// IsValid reports whether Bytes holds at least BitLength bits.
func (s BitString) IsValid() bool {
	return s.BitLength >= 0 && len(s.Bytes) >= (s.BitLength+8-1)/8
}

// Len returns the number of bits in s.
func (s BitString) Len() int {
	return s.BitLength
}

// At returns the bit at the given index. If the index is out of range At panics.
func (s BitString) At(i int) int {
	if i < 0 || i >= s.BitLength {
		panic("index out of range")
	}
	x := i / 8
	y := 7 - uint(i%8)
	return int(s.Bytes[x]>>y) & 1
}

// String returns the bits of s as binary digits in groups of eight.
func (s BitString) String() string {
	var sb strings.Builder
	sb.Grow(s.BitLength + s.BitLength/8)
	for i := range s.BitLength {
		if i > 0 && i%8 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('0' + byte(s.At(i)))
	}
	return sb.String()
}

//endregion

//region [UNIVERSAL 6] OBJECT IDENTIFIER

// An ObjectIdentifier represents an ASN.1 OBJECT IDENTIFIER. The semantics of
// an object identifier are specified in [Rec. ITU-T X.660].
//
// See also section 32 of Rec. ITU-T X.680.
//
// [Rec. ITU-T X.660]: https://www.itu.int/rec/T-REC-X.660
type ObjectIdentifier []uint

// FixedTag returns [UNIVERSAL 6].
func (ObjectIdentifier) FixedTag() Tag { return Universal(TagOID) }

// Tag returns [UNIVERSAL 6].
func (oid ObjectIdentifier) Tag() Tag { return oid.FixedTag() }

// IsValid reports whether oid has at least two arcs and the first two arcs are
// in the ranges permitted by Rec. ITU-T X.660. The first two arcs are encoded
// as a single uint, which limits the second arc below 2.
func (oid ObjectIdentifier) IsValid() bool {
	if len(oid) < 2 || oid[0] > 2 {
		return false
	}
	if oid[0] == 2 {
		return oid[1] <= math.MaxUint-80
	}
	return oid[1] < 40
}

// Equal reports whether oid and other represent the same identifier.
func (oid ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	return slices.Equal(oid, other)
}

// String returns the dot-separated notation of oid.
func (oid ObjectIdentifier) String() string {
	var s strings.Builder
	s.Grow(32)

	buf := make([]byte, 0, 19)
	for i, v := range oid {
		if i > 0 {
			s.WriteByte('.')
		}
		s.Write(strconv.AppendUint(buf, uint64(v), 10))
	}

	return s.String()
}

//endregion

//region Restricted Character Strings

// The restricted character string types below are plain Go strings that carry
// their universal tag in their type. Any Go string converts into each of them,
// so a value may hold characters outside the set permitted for its type. The
// IsValid methods report whether that is the case. Encoders reject invalid
// values.
//
// See also section 41 of Rec. ITU-T X.680.

// UTF8String is [UNIVERSAL 12]. Valid values are valid UTF-8.
type UTF8String string

// NumericString is [UNIVERSAL 18]. Valid values consist of the digits 0-9 and
// space.
type NumericString string

// PrintableString is [UNIVERSAL 19]. Valid values consist of the following
// ASCII characters:
//
//	A-Z a-z 0-9  letters and digits
//	' ( )        apostrophe and parentheses
//	+ , - . /    plus, comma, hyphen, full stop, solidus
//	: = ?        colon, equals sign, question mark
//	             space
type PrintableString string

// IA5String is [UNIVERSAL 22]. Valid values are ASCII.
type IA5String string

// VisibleString is [UNIVERSAL 26]. Valid values are ASCII without control
// characters.
type VisibleString string

func (UTF8String) FixedTag() Tag      { return Universal(TagUTF8String) }
func (NumericString) FixedTag() Tag   { return Universal(TagNumericString) }
func (PrintableString) FixedTag() Tag { return Universal(TagPrintableString) }
func (IA5String) FixedTag() Tag       { return Universal(TagIA5String) }
func (VisibleString) FixedTag() Tag   { return Universal(TagVisibleString) }

func (s UTF8String) Tag() Tag      { return s.FixedTag() }
func (s NumericString) Tag() Tag   { return s.FixedTag() }
func (s PrintableString) Tag() Tag { return s.FixedTag() }
func (s IA5String) Tag() Tag       { return s.FixedTag() }
func (s VisibleString) Tag() Tag   { return s.FixedTag() }

func (s UTF8String) IsValid() bool      { return utf8.ValidString(string(s)) }
func (s NumericString) IsValid() bool   { return allBytes(string(s), isNumeric) }
func (s PrintableString) IsValid() bool { return allBytes(string(s), isPrintable) }
func (s IA5String) IsValid() bool       { return allBytes(string(s), isASCII) }
func (s VisibleString) IsValid() bool   { return allBytes(string(s), isVisible) }

// allBytes reports whether ok holds for every byte of s.
func allBytes(s string, ok func(byte) bool) bool {
	for i := range len(s) {
		if !ok(s[i]) {
			return false
		}
	}
	return true
}

func isNumeric(b byte) bool { return '0' <= b && b <= '9' || b == ' ' }

func isPrintable(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	case '\'' <= b && b <= ')', '+' <= b && b <= '/':
		return true
	}
	return b == ' ' || b == ':' || b == '=' || b == '?'
}

func isASCII(b byte) bool { return b < utf8.RuneSelf }

func isVisible(b byte) bool { return ' ' <= b && b < 0x7f }

//endregion
