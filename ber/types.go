// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"encoding/binary"
	"errors"
	"io"
	"math/big"
	"slices"

	"codello.dev/asn1/v2"
	"codello.dev/asn1/v2/internal/vlq"
)

//region [UNIVERSAL 1] BOOLEAN

// Boolean implements the ASN.1 BOOLEAN type. BER accepts any non-zero content
// byte as true. DER requires 0xFF.
type Boolean bool

// FixedTag returns [UNIVERSAL 1].
func (Boolean) FixedTag() asn1.Tag { return asn1.Universal(asn1.TagBoolean) }

// Tag returns [UNIVERSAL 1].
func (b Boolean) Tag() asn1.Tag { return b.FixedTag() }

func (b *Boolean) DecodeAny(a Any) error {
	if err := a.expectPrimitive(b.FixedTag()); err != nil {
		return err
	}
	if len(a.Content) != 1 {
		return &SyntaxError{a.Tag(), errors.New("invalid boolean")}
	}
	*b = a.Content[0] != 0x00
	return nil
}

func (Boolean) CheckDerConstraints(a Any) error {
	if len(a.Content) == 1 && a.Content[0] != 0x00 && a.Content[0] != 0xff {
		return &DerConstraintError{a.Tag(), InvalidBoolean}
	}
	return nil
}

func (b Boolean) DerLen() (int, error) { return encodedLen(b.FixedTag(), 1), nil }

func (b Boolean) WriteDerHeader(w io.Writer) (int, error) {
	return writeHeader(w, b.FixedTag(), false, 1)
}

func (b Boolean) WriteDerContent(w io.Writer) (int, error) {
	if b {
		return w.Write([]byte{0xff})
	}
	return w.Write([]byte{0x00})
}

//endregion

//region [UNIVERSAL 2] INTEGER

var bigOne = big.NewInt(1)

// Integer implements the ASN.1 INTEGER type. The value is stored as a
// big-endian two's-complement number of arbitrary size.
//
// A decoded Integer references the input and keeps its encoding as received.
// The canonical encoding of an Integer is always minimal, while [WriteDerRaw]
// reproduces the original encoding including redundant leading bytes.
//
// The zero value represents the number 0.
type Integer struct {
	b []byte
}

// NewInteger returns the Integer representing i.
func NewInteger(i int64) Integer {
	var bs [8]byte
	binary.BigEndian.PutUint64(bs[:], uint64(i))
	return Integer{trimInteger(bs[:])}
}

// IntegerFromBig returns the Integer representing i.
func IntegerFromBig(i *big.Int) Integer {
	switch i.Sign() {
	case 0:
		return Integer{[]byte{0x00}}
	case -1:
		// A negative number has to be converted to two's-complement
		// form. So we'll invert and subtract 1. If the
		// most-significant-bit isn't set then we'll need to pad the
		// beginning with 0xff in order to keep the number negative.
		nMinus1 := new(big.Int).Neg(i)
		nMinus1.Sub(nMinus1, bigOne)
		bs := nMinus1.Bytes()
		for j := range bs {
			bs[j] ^= 0xff
		}
		if len(bs) == 0 || bs[0]&0x80 == 0 {
			bs = append([]byte{0xff}, bs...)
		}
		return Integer{bs}
	default:
		bs := i.Bytes()
		if bs[0]&0x80 != 0 {
			// We'll have to pad this with 0x00 in order to stop it
			// looking like a negative number.
			bs = append([]byte{0x00}, bs...)
		}
		return Integer{bs}
	}
}

// trimInteger removes redundant leading bytes of a two's-complement number.
func trimInteger(b []byte) []byte {
	for len(b) > 1 && (b[0] == 0x00 && b[1]&0x80 == 0 || b[0] == 0xff && b[1]&0x80 != 0) {
		b = b[1:]
	}
	return b
}

// canonical returns the minimal two's-complement representation of i.
func (i Integer) canonical() []byte {
	if len(i.b) == 0 {
		return []byte{0x00}
	}
	return trimInteger(i.b)
}

// Int64 returns i as an int64. An error is returned if i does not fit.
func (i Integer) Int64() (int64, error) {
	b := i.canonical()
	if len(b) > 8 {
		return 0, errors.New("integer too large")
	}
	var v int64
	if b[0]&0x80 != 0 {
		v = -1
	}
	for _, c := range b {
		v = v<<8 | int64(c)
	}
	return v, nil
}

// Big returns i as a [*big.Int].
func (i Integer) Big() *big.Int {
	bs := slices.Clone(i.canonical())
	ret := new(big.Int)
	if bs[0]&0x80 == 0x80 {
		// negative integer, calculate 2s complement
		for j := range bs {
			bs[j] = ^bs[j]
		}
		ret.SetBytes(bs)
		ret.Add(ret, bigOne)
		return ret.Neg(ret)
	}
	return ret.SetBytes(bs)
}

// Equal reports whether i and j represent the same number.
func (i Integer) Equal(j Integer) bool {
	return slices.Equal(i.canonical(), j.canonical())
}

// String returns the decimal representation of i.
func (i Integer) String() string {
	return i.Big().String()
}

// FixedTag returns [UNIVERSAL 2].
func (Integer) FixedTag() asn1.Tag { return asn1.Universal(asn1.TagInteger) }

// Tag returns [UNIVERSAL 2].
func (i Integer) Tag() asn1.Tag { return i.FixedTag() }

func (i *Integer) DecodeAny(a Any) error {
	if err := a.expectPrimitive(i.FixedTag()); err != nil {
		return err
	}
	if len(a.Content) == 0 {
		return &SyntaxError{a.Tag(), errors.New("empty integer")}
	}
	i.b = a.Content
	return nil
}

func (Integer) CheckDerConstraints(a Any) error {
	b := a.Content
	switch {
	case len(b) == 0:
		return &DerConstraintError{a.Tag(), IntegerEmpty}
	case len(b) > 1 && b[0] == 0x00 && b[1]&0x80 == 0:
		return &DerConstraintError{a.Tag(), IntegerLeadingZeroes}
	case len(b) > 1 && b[0] == 0xff && b[1]&0x80 != 0:
		return &DerConstraintError{a.Tag(), IntegerLeadingFF}
	}
	return nil
}

func (i Integer) DerLen() (int, error) {
	return encodedLen(i.FixedTag(), len(i.canonical())), nil
}

func (i Integer) WriteDerHeader(w io.Writer) (int, error) {
	return writeHeader(w, i.FixedTag(), false, len(i.canonical()))
}

func (i Integer) WriteDerContent(w io.Writer) (int, error) {
	return w.Write(i.canonical())
}

// WriteDerRaw writes i using the contents it was decoded from.
func (i Integer) WriteDerRaw(w io.Writer) (int, error) {
	if len(i.b) == 0 {
		return WriteDer(w, i)
	}
	n, err := writeHeader(w, i.FixedTag(), false, len(i.b))
	if err != nil {
		return n, err
	}
	m, err := w.Write(i.b)
	return n + m, err
}

// Owned returns a copy of i that does not reference the input.
func (i Integer) Owned() Integer {
	return Integer{slices.Clone(i.b)}
}

//endregion

//region [UNIVERSAL 3] BIT STRING

// BitString implements the ASN.1 BIT STRING type. A decoded BitString
// references the input if it was encoded using the primitive encoding. Unused
// bits are kept as received and written as zeros.
type BitString asn1.BitString

// FixedTag returns [UNIVERSAL 3].
func (BitString) FixedTag() asn1.Tag { return asn1.Universal(asn1.TagBitString) }

// Tag returns [UNIVERSAL 3].
func (s BitString) Tag() asn1.Tag { return s.FixedTag() }

// String formats s as a sequence of binary digits.
func (s BitString) String() string { return asn1.BitString(s).String() }

func (s *BitString) DecodeAny(a Any) error {
	if err := a.expect(s.FixedTag()); err != nil {
		return err
	}
	if !a.Header.Constructed {
		unused, err := bitStringSegment(a, a.Content)
		if err != nil {
			return err
		}
		*s = BitString{Bytes: a.Content[1:], BitLength: (len(a.Content)-1)*8 - unused}
		return nil
	}
	var buf []byte
	unused := 0
	err := segments(a, 0, func(seg []byte) (err error) {
		if unused != 0 {
			return &SyntaxError{a.Tag(), errors.New("non-zero padding in constructed BIT STRING")}
		}
		if unused, err = bitStringSegment(a, seg); err != nil {
			return err
		}
		buf = append(buf, seg[1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	*s = BitString{Bytes: buf, BitLength: len(buf)*8 - unused}
	return nil
}

// bitStringSegment validates a single BIT STRING segment and returns the
// number of unused bits.
func bitStringSegment(a Any, seg []byte) (int, error) {
	if len(seg) == 0 {
		return 0, &SyntaxError{a.Tag(), errors.New("zero length BIT STRING")}
	}
	unused := int(seg[0])
	if unused > 7 || len(seg) == 1 && unused > 0 {
		return 0, &SyntaxError{a.Tag(), errors.New("invalid padding bits in BIT STRING")}
	}
	return unused, nil
}

func (BitString) CheckDerConstraints(a Any) error {
	if a.Header.Constructed {
		return &DerConstraintError{a.Tag(), Constructed}
	}
	if b := a.Content; len(b) > 1 && b[0] <= 7 && b[len(b)-1]&(1<<b[0]-1) != 0 {
		return &DerConstraintError{a.Tag(), UnusedBitsNotZero}
	}
	return nil
}

// content returns the contents octets of s.
func (s BitString) content() ([]byte, error) {
	if !asn1.BitString(s).IsValid() {
		return nil, errors.New("BitString is not valid")
	}
	n := (s.BitLength + 7) / 8
	padding := byte((8 - s.BitLength%8) % 8)
	b := make([]byte, 0, n+1)
	b = append(append(b, padding), s.Bytes[:n]...)
	if n > 0 {
		// zero out any padding bits
		b[n] &= ^byte(1<<padding - 1)
	}
	return b, nil
}

func (s BitString) DerLen() (int, error) {
	if !asn1.BitString(s).IsValid() {
		return 0, errors.New("BitString is not valid")
	}
	return encodedLen(s.FixedTag(), (s.BitLength+7)/8+1), nil
}

func (s BitString) WriteDerHeader(w io.Writer) (int, error) {
	if !asn1.BitString(s).IsValid() {
		return 0, errors.New("BitString is not valid")
	}
	return writeHeader(w, s.FixedTag(), false, (s.BitLength+7)/8+1)
}

func (s BitString) WriteDerContent(w io.Writer) (int, error) {
	b, err := s.content()
	if err != nil {
		return 0, err
	}
	return w.Write(b)
}

// Owned returns a copy of s that does not reference the input.
func (s BitString) Owned() BitString {
	s.Bytes = slices.Clone(s.Bytes)
	return s
}

//endregion

//region [UNIVERSAL 4] OCTET STRING

// OctetString implements the ASN.1 OCTET STRING type. A decoded OctetString
// references the input if it was encoded using the primitive encoding.
type OctetString []byte

// FixedTag returns [UNIVERSAL 4].
func (OctetString) FixedTag() asn1.Tag { return asn1.Universal(asn1.TagOctetString) }

// Tag returns [UNIVERSAL 4].
func (s OctetString) Tag() asn1.Tag { return s.FixedTag() }

func (s *OctetString) DecodeAny(a Any) error {
	if err := a.expect(s.FixedTag()); err != nil {
		return err
	}
	if !a.Header.Constructed {
		*s = a.Content
		return nil
	}
	buf := OctetString{}
	err := segments(a, 0, func(seg []byte) error {
		buf = append(buf, seg...)
		return nil
	})
	*s = buf
	return err
}

func (OctetString) CheckDerConstraints(a Any) error {
	if a.Header.Constructed {
		return &DerConstraintError{a.Tag(), Constructed}
	}
	return nil
}

func (s OctetString) DerLen() (int, error) { return encodedLen(s.FixedTag(), len(s)), nil }

func (s OctetString) WriteDerHeader(w io.Writer) (int, error) {
	return writeHeader(w, s.FixedTag(), false, len(s))
}

func (s OctetString) WriteDerContent(w io.Writer) (int, error) {
	return w.Write(s)
}

// Owned returns a copy of s that does not reference the input.
func (s OctetString) Owned() OctetString {
	return slices.Clone(s)
}

//endregion

//region [UNIVERSAL 5] NULL

// Null implements the ASN.1 NULL type.
type Null struct{}

// FixedTag returns [UNIVERSAL 5].
func (Null) FixedTag() asn1.Tag { return asn1.Universal(asn1.TagNull) }

// Tag returns [UNIVERSAL 5].
func (n Null) Tag() asn1.Tag { return n.FixedTag() }

func (n *Null) DecodeAny(a Any) error {
	if err := a.expectPrimitive(n.FixedTag()); err != nil {
		return err
	}
	if len(a.Content) != 0 {
		return &SyntaxError{a.Tag(), errors.New("non-empty NULL")}
	}
	return nil
}

func (Null) CheckDerConstraints(Any) error { return nil }

func (n Null) DerLen() (int, error) { return encodedLen(n.FixedTag(), 0), nil }

func (n Null) WriteDerHeader(w io.Writer) (int, error) {
	return writeHeader(w, n.FixedTag(), false, 0)
}

func (Null) WriteDerContent(io.Writer) (int, error) { return 0, nil }

//endregion

//region [UNIVERSAL 6] OBJECT IDENTIFIER

// ObjectIdentifier implements the ASN.1 OBJECT IDENTIFIER type. The first two
// arcs are encoded into a single base-128 number. Subsequent arcs use a
// base-128 encoding each.
type ObjectIdentifier asn1.ObjectIdentifier

// FixedTag returns [UNIVERSAL 6].
func (ObjectIdentifier) FixedTag() asn1.Tag { return asn1.Universal(asn1.TagOID) }

// Tag returns [UNIVERSAL 6].
func (oid ObjectIdentifier) Tag() asn1.Tag { return oid.FixedTag() }

// String returns the dot-separated notation of oid.
func (oid ObjectIdentifier) String() string { return asn1.ObjectIdentifier(oid).String() }

func (oid *ObjectIdentifier) DecodeAny(a Any) error {
	if err := a.expectPrimitive(oid.FixedTag()); err != nil {
		return err
	}
	if len(a.Content) == 0 {
		return &SyntaxError{a.Tag(), errors.New("zero length OBJECT IDENTIFIER")}
	}

	// In the worst case, we get two elements from the first byte (which is
	// encoded differently) and then every varint is a single byte long.
	s := make(ObjectIdentifier, 0, len(a.Content)+1)
	for b := a.Content; len(b) > 0; {
		v, n, err := vlq.Parse[uint](b)
		if err != nil {
			return &SyntaxError{a.Tag(), err}
		}
		b = b[n:]
		if len(s) > 0 {
			s = append(s, v)
			continue
		}
		// The first varint is 40*value1 + value2:
		// According to this packing, value1 can take the values 0, 1 and 2 only.
		// When value1 = 0 or value1 = 1, then value2 is <= 39. When value1 = 2,
		// then there are no restrictions on value2.
		if v < 80 {
			s = append(s, v/40, v%40)
		} else {
			s = append(s, 2, v-80)
		}
	}
	*oid = s
	return nil
}

func (ObjectIdentifier) CheckDerConstraints(Any) error { return nil }

// content returns the contents octets of oid.
func (oid ObjectIdentifier) content() ([]byte, error) {
	if !asn1.ObjectIdentifier(oid).IsValid() {
		return nil, errors.New("invalid ObjectIdentifier")
	}
	b := vlq.Append(nil, oid[0]*40+oid[1])
	for _, v := range oid[2:] {
		b = vlq.Append(b, v)
	}
	return b, nil
}

func (oid ObjectIdentifier) DerLen() (int, error) {
	b, err := oid.content()
	if err != nil {
		return 0, err
	}
	return encodedLen(oid.FixedTag(), len(b)), nil
}

func (oid ObjectIdentifier) WriteDerHeader(w io.Writer) (int, error) {
	b, err := oid.content()
	if err != nil {
		return 0, err
	}
	return writeHeader(w, oid.FixedTag(), false, len(b))
}

func (oid ObjectIdentifier) WriteDerContent(w io.Writer) (int, error) {
	b, err := oid.content()
	if err != nil {
		return 0, err
	}
	return w.Write(b)
}

//endregion

//region Restricted Character Strings

// StringType is the set of Go types for the restricted character string types
// of ASN.1, such as [asn1.UTF8String] or [asn1.PrintableString].
type StringType interface {
	~string
	asn1.Tagged
	IsValid() bool
}

// String implements the restricted character string type S. Decoded values
// are validated using the IsValid method of S. Decoded strings are always
// copied from the input.
type String[S StringType] struct {
	Value S
}

// FixedTag returns the tag of S.
func (String[S]) FixedTag() asn1.Tag { return asn1.TagOf[S]() }

// Tag returns the tag of S.
func (s String[S]) Tag() asn1.Tag { return s.FixedTag() }

func (s *String[S]) DecodeAny(a Any) error {
	if err := a.expect(s.FixedTag()); err != nil {
		return err
	}
	var v S
	if !a.Header.Constructed {
		v = S(a.Content)
	} else {
		var buf []byte
		err := segments(a, 0, func(seg []byte) error {
			buf = append(buf, seg...)
			return nil
		})
		if err != nil {
			return err
		}
		v = S(buf)
	}
	if !v.IsValid() {
		return &SyntaxError{a.Tag(), errors.New("invalid characters in string")}
	}
	s.Value = v
	return nil
}

func (String[S]) CheckDerConstraints(a Any) error {
	if a.Header.Constructed {
		return &DerConstraintError{a.Tag(), Constructed}
	}
	return nil
}

func (s String[S]) DerLen() (int, error) { return encodedLen(s.FixedTag(), len(s.Value)), nil }

func (s String[S]) WriteDerHeader(w io.Writer) (int, error) {
	if !s.Value.IsValid() {
		return 0, errors.New("invalid characters in string")
	}
	return writeHeader(w, s.FixedTag(), false, len(s.Value))
}

func (s String[S]) WriteDerContent(w io.Writer) (int, error) {
	return io.WriteString(w, string(s.Value))
}

//endregion
