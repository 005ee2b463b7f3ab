// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"math"
	"math/big"
	"testing"

	"codello.dev/asn1/v2"
)

//region [UNIVERSAL 1] BOOLEAN

func TestBooleanCodec(t *testing.T) {
	testCodec(t, map[string]codecTest[Boolean]{
		"True":  {true, []byte{0x01, 0x01, 0xff}},
		"False": {false, []byte{0x01, 0x01, 0x00}},
	})
	testModes(t, map[string]modeTest[Boolean]{
		"NonCanonicalTrue": {[]byte{0x01, 0x01, 0x01}, ptr(Boolean(true)), ErrDerConstraintFailed},
		"TooLong":          {[]byte{0x01, 0x02, 0xff, 0xff}, nil, nil},
		"WrongTag":         {[]byte{0x02, 0x01, 0xff}, nil, ErrUnexpectedTag},
		"Constructed":      {[]byte{0x21, 0x03, 0x01, 0x01, 0xff}, nil, ErrConstructUnexpected},
	})
}

//endregion

//region [UNIVERSAL 2] INTEGER

func TestIntegerCodec(t *testing.T) {
	big64 := new(big.Int).Lsh(big.NewInt(1), 64)
	testCodec(t, map[string]codecTest[Integer]{
		"Zero":        {Integer{}, []byte{0x02, 0x01, 0x00}},
		"Small":       {NewInteger(4), []byte{0x02, 0x01, 0x04}},
		"127":         {NewInteger(127), []byte{0x02, 0x01, 0x7f}},
		"128":         {NewInteger(128), []byte{0x02, 0x02, 0x00, 0x80}},
		"256":         {NewInteger(256), []byte{0x02, 0x02, 0x01, 0x00}},
		"MinusOne":    {NewInteger(-1), []byte{0x02, 0x01, 0xff}},
		"Minus128":    {NewInteger(-128), []byte{0x02, 0x01, 0x80}},
		"Minus129":    {NewInteger(-129), []byte{0x02, 0x02, 0xff, 0x7f}},
		"MaxInt64":    {NewInteger(math.MaxInt64), []byte{0x02, 0x08, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		"Big":         {IntegerFromBig(big64), []byte{0x02, 0x09, 0x01, 0, 0, 0, 0, 0, 0, 0, 0}},
		"BigNegative": {IntegerFromBig(new(big.Int).Neg(big64)), []byte{0x02, 0x09, 0xff, 0, 0, 0, 0, 0, 0, 0, 0}},
	})
	testModes(t, map[string]modeTest[Integer]{
		"LeadingZero": {[]byte{0x02, 0x02, 0x00, 0x04}, ptr(NewInteger(4)), ErrDerConstraintFailed},
		"LeadingFF":   {[]byte{0x02, 0x02, 0xff, 0x80}, ptr(NewInteger(-128)), ErrDerConstraintFailed},
		"LongLength":  {[]byte{0x02, 0x81, 0x01, 0x04}, ptr(NewInteger(4)), ErrDerConstraintFailed},
		"LongTag":     {[]byte{0x1f, 0x02, 0x01, 0x04}, ptr(NewInteger(4)), ErrDerConstraintFailed},
		"Empty":       {[]byte{0x02, 0x00}, nil, ErrDerConstraintFailed},
	})
}

func TestInteger_Int64(t *testing.T) {
	tests := map[string]struct {
		i       Integer
		want    int64
		wantErr bool
	}{
		"Zero":     {Integer{}, 0, false},
		"Positive": {NewInteger(70000), 70000, false},
		"Negative": {NewInteger(-70000), -70000, false},
		"Min":      {NewInteger(math.MinInt64), math.MinInt64, false},
		"Padded":   {Integer{[]byte{0x00, 0x00, 0x05}}, 5, false},
		"TooLarge": {IntegerFromBig(new(big.Int).Lsh(big.NewInt(1), 63)), 0, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tt.i.Int64()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Int64() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Int64() = %d, want %d", got, tt.want)
			}
			if !tt.wantErr && tt.i.Big().Cmp(big.NewInt(tt.want)) != 0 {
				t.Errorf("Big() = %v, want %d", tt.i.Big(), tt.want)
			}
		})
	}
}

func TestIntegerFromBig(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 127, 128, -128, -129, 255, -256, math.MaxInt64, math.MinInt64} {
		if got, want := IntegerFromBig(big.NewInt(v)), NewInteger(v); !got.Equal(want) {
			t.Errorf("IntegerFromBig(%d) = % X, want % X", v, got.b, want.b)
		}
	}
}

//endregion

//region [UNIVERSAL 3] BIT STRING

func TestBitStringCodec(t *testing.T) {
	testCodec(t, map[string]codecTest[BitString]{
		"Empty":    {BitString{}, []byte{0x03, 0x01, 0x00}},
		"OneBit":   {BitString{Bytes: []byte{0x80}, BitLength: 1}, []byte{0x03, 0x02, 0x07, 0x80}},
		"TwoBytes": {BitString{Bytes: []byte{0xff, 0xc0}, BitLength: 10}, []byte{0x03, 0x03, 0x06, 0xff, 0xc0}},
	})
	testModes(t, map[string]modeTest[BitString]{
		"UnusedBitsSet": {[]byte{0x03, 0x02, 0x07, 0x81}, &BitString{Bytes: []byte{0x81}, BitLength: 1}, ErrDerConstraintFailed},
		"Constructed": {[]byte{0x23, 0x08, 0x03, 0x02, 0x00, 0xff, 0x03, 0x02, 0x06, 0xc0},
			&BitString{Bytes: []byte{0xff, 0xc0}, BitLength: 10}, ErrDerConstraintFailed},
		"InnerPadding": {[]byte{0x23, 0x08, 0x03, 0x02, 0x01, 0xfe, 0x03, 0x02, 0x06, 0xc0}, nil, ErrDerConstraintFailed},
		"Empty":        {[]byte{0x03, 0x00}, nil, nil},
		"PaddingRange": {[]byte{0x03, 0x02, 0x08, 0x00}, nil, nil},
	})
}

func TestBitString_invalid(t *testing.T) {
	if _, err := MarshalDer(BitString{Bytes: []byte{0x01}, BitLength: 9}); err == nil {
		t.Errorf("MarshalDer(invalid) error = nil, want error")
	}
}

//endregion

//region [UNIVERSAL 4] OCTET STRING

func TestOctetStringCodec(t *testing.T) {
	testCodec(t, map[string]codecTest[OctetString]{
		"Empty":  {OctetString{}, []byte{0x04, 0x00}},
		"Simple": {OctetString{0x01, 0x02}, []byte{0x04, 0x02, 0x01, 0x02}},
	})
	testModes(t, map[string]modeTest[OctetString]{
		"Constructed": {[]byte{0x24, 0x06, 0x04, 0x01, 0xaa, 0x04, 0x01, 0xbb},
			ptr(OctetString{0xaa, 0xbb}), ErrDerConstraintFailed},
		"Indefinite": {[]byte{0x24, 0x80, 0x04, 0x01, 0xaa, 0x24, 0x03, 0x04, 0x01, 0xbb, 0x00, 0x00},
			ptr(OctetString{0xaa, 0xbb}), ErrIndefiniteLengthUnexpected},
		"WrongSegment": {[]byte{0x24, 0x03, 0x02, 0x01, 0xaa}, nil, ErrDerConstraintFailed},
		"LongTag":      {[]byte{0x1f, 0x04, 0x01, 0xaa}, ptr(OctetString{0xaa}), ErrDerConstraintFailed},
	})
}

//endregion

//region [UNIVERSAL 5] NULL

func TestNullCodec(t *testing.T) {
	testCodec(t, map[string]codecTest[Null]{
		"Null": {Null{}, []byte{0x05, 0x00}},
	})
	testModes(t, map[string]modeTest[Null]{
		"NonEmpty": {[]byte{0x05, 0x01, 0x00}, nil, nil},
	})
}

//endregion

//region [UNIVERSAL 6] OBJECT IDENTIFIER

func TestObjectIdentifierCodec(t *testing.T) {
	testCodec(t, map[string]codecTest[ObjectIdentifier]{
		"RSA":     {ObjectIdentifier{1, 2, 840, 113549}, []byte{0x06, 0x06, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d}},
		"Joint":   {ObjectIdentifier{2, 999, 3}, []byte{0x06, 0x03, 0x88, 0x37, 0x03}},
		"TwoArcs": {ObjectIdentifier{0, 39}, []byte{0x06, 0x01, 0x27}},
	})
	testModes(t, map[string]modeTest[ObjectIdentifier]{
		"Empty":      {[]byte{0x06, 0x00}, nil, nil},
		"NonMinimal": {[]byte{0x06, 0x02, 0x80, 0x01}, nil, nil},
		"Truncated":  {[]byte{0x06, 0x02, 0x2a, 0x86}, nil, nil},
	})
	if _, err := MarshalDer(ObjectIdentifier{3, 1}); err == nil {
		t.Errorf("MarshalDer(3.1) error = nil, want error")
	}
	if _, err := MarshalDer(ObjectIdentifier{2, math.MaxUint - 79}); err == nil {
		t.Errorf("MarshalDer(2.%d) error = nil, want error", uint(math.MaxUint-79))
	}
}

//endregion

//region Restricted Character Strings

func TestStringCodec(t *testing.T) {
	testCodec(t, map[string]codecTest[String[asn1.UTF8String]]{
		"Empty": {String[asn1.UTF8String]{}, []byte{0x0c, 0x00}},
		"ASCII": {String[asn1.UTF8String]{"hi"}, []byte{0x0c, 0x02, 0x68, 0x69}},
		"UTF-8": {String[asn1.UTF8String]{"ä"}, []byte{0x0c, 0x02, 0xc3, 0xa4}},
	})
	testCodec(t, map[string]codecTest[String[asn1.PrintableString]]{
		"Printable": {String[asn1.PrintableString]{"A1"}, []byte{0x13, 0x02, 0x41, 0x31}},
	})
	testModes(t, map[string]modeTest[String[asn1.PrintableString]]{
		"Invalid":     {[]byte{0x13, 0x02, 0x61, 0x2a}, nil, nil},
		"WrongTag":    {[]byte{0x0c, 0x01, 0x61}, nil, ErrUnexpectedTag},
		"Constructed": {[]byte{0x33, 0x06, 0x13, 0x01, 0x41, 0x13, 0x01, 0x31}, &String[asn1.PrintableString]{"A1"}, ErrDerConstraintFailed},
	})
	testModes(t, map[string]modeTest[String[asn1.IA5String]]{
		"NonASCII": {[]byte{0x16, 0x01, 0xff}, nil, nil},
	})
	if _, err := MarshalDer(String[asn1.NumericString]{"12a"}); err == nil {
		t.Errorf("MarshalDer(NumericString(12a)) error = nil, want error")
	}
}

//endregion
