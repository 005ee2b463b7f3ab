// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"codello.dev/asn1/v2"
)

// mustSequence returns a Sequence holding the DER encodings of vs.
func mustSequence(t *testing.T, vs ...DerEncoder) Sequence {
	t.Helper()
	var s Sequence
	if err := s.Append(vs...); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	return s
}

func TestExplicitCodec(t *testing.T) {
	testCodec(t, map[string]codecTest[TaggedValue[Explicit, Integer]]{
		"ContextSpecific": {WrapExplicit(NewInteger(4), asn1.ClassContextSpecific, 0), []byte{0xa0, 0x03, 0x02, 0x01, 0x04}},
		"Application":     {WrapExplicit(NewInteger(4), asn1.ClassApplication, 1), []byte{0x61, 0x03, 0x02, 0x01, 0x04}},
		"LongTag":         {WrapExplicit(NewInteger(4), asn1.ClassContextSpecific, 31), []byte{0xbf, 0x1f, 0x03, 0x02, 0x01, 0x04}},
	})
	testModes(t, map[string]modeTest[TaggedValue[Explicit, Integer]]{
		"NestedLeadingZero": {[]byte{0xa0, 0x04, 0x02, 0x02, 0x00, 0x04},
			ptr(WrapExplicit(NewInteger(4), asn1.ClassContextSpecific, 0)), ErrDerConstraintFailed},
		"NestedLongLength": {[]byte{0xa0, 0x04, 0x02, 0x81, 0x01, 0x04},
			ptr(WrapExplicit(NewInteger(4), asn1.ClassContextSpecific, 0)), ErrDerConstraintFailed},
		"Indefinite": {[]byte{0xa0, 0x80, 0x02, 0x01, 0x04, 0x00, 0x00},
			ptr(WrapExplicit(NewInteger(4), asn1.ClassContextSpecific, 0)), ErrIndefiniteLengthUnexpected},
		"Primitive":     {[]byte{0x80, 0x03, 0x02, 0x01, 0x04}, nil, ErrConstructExpected},
		"TrailingData":  {[]byte{0xa0, 0x06, 0x02, 0x01, 0x04, 0x02, 0x01, 0x05}, nil, ErrTrailingData},
		"InnerTag":      {[]byte{0xa0, 0x03, 0x01, 0x01, 0xff}, nil, ErrUnexpectedTag},
		"TruncatedBody": {[]byte{0xa0, 0x03, 0x02, 0x02, 0x04}, nil, nil},
	})
}

func TestImplicitCodec(t *testing.T) {
	testCodec(t, map[string]codecTest[TaggedValue[Implicit, Integer]]{
		"ContextSpecific": {WrapImplicit(NewInteger(4), asn1.ClassContextSpecific, false, 0), []byte{0x80, 0x01, 0x04}},
		"Private":         {WrapImplicit(NewInteger(-1), asn1.ClassPrivate, false, 2), []byte{0xc2, 0x01, 0xff}},
	})
	testCodec(t, map[string]codecTest[TaggedValue[Implicit, Sequence]]{
		"Constructed": {WrapImplicit(mustSequence(t, NewInteger(1)), asn1.ClassApplication, true, 5), []byte{0x65, 0x03, 0x02, 0x01, 0x01}},
	})
	testCodec(t, map[string]codecTest[TaggedValue[Implicit, OctetString]]{
		"OctetString": {WrapImplicit(OctetString{0xaa}, asn1.ClassContextSpecific, false, 3), []byte{0x83, 0x01, 0xaa}},
	})
	testModes(t, map[string]modeTest[TaggedValue[Implicit, Integer]]{
		"LeadingZero": {[]byte{0x80, 0x02, 0x00, 0x04},
			ptr(WrapImplicit(NewInteger(4), asn1.ClassContextSpecific, false, 0)), ErrDerConstraintFailed},
		"Constructed": {[]byte{0xa0, 0x03, 0x02, 0x01, 0x04}, nil, ErrConstructUnexpected},
	})
	testModes(t, map[string]modeTest[TaggedValue[Implicit, OctetString]]{
		"Segments": {[]byte{0xa3, 0x06, 0x83, 0x01, 0xaa, 0x83, 0x01, 0xbb}, nil, ErrDerConstraintFailed},
	})
}

func TestTaggedValue_tagMismatch(t *testing.T) {
	data := []byte{0xa1, 0x03, 0x02, 0x01, 0x04}
	explicit := TaggedValue[Explicit, Integer]{Class: asn1.ClassContextSpecific, Number: 0}
	if _, err := DecodeDER(data, &explicit); !errors.Is(err, ErrUnexpectedTag) {
		t.Errorf("DecodeDER(Explicit) error = %v, want %v", err, ErrUnexpectedTag)
	}
	implicit := TaggedValue[Implicit, Integer]{Class: asn1.ClassApplication, Number: 1}
	if _, err := DecodeBER([]byte{0x81, 0x01, 0x04}, &implicit); !errors.Is(err, ErrUnexpectedTag) {
		t.Errorf("DecodeBER(Implicit) error = %v, want %v", err, ErrUnexpectedTag)
	}

	// a preset tag that matches
	explicit.Number = 1
	if _, err := DecodeDER(data, &explicit); err != nil {
		t.Errorf("DecodeDER(Explicit) error = %v, want nil", err)
	}
}

func TestTaggedValue_any(t *testing.T) {
	data := []byte{0xa0, 0x03, 0x02, 0x01, 0x04}
	_, explicit, err := FromDER[TaggedValue[Explicit, Any]](data)
	if err != nil {
		t.Fatalf("FromDER(Explicit) error = %v", err)
	}
	if explicit.Inner.Tag() != asn1.TagOf[Integer]() {
		t.Errorf("FromDER(Explicit).Inner.Tag() = %v, want %v", explicit.Inner.Tag(), asn1.TagOf[Integer]())
	}
	if got, _ := MarshalDer(explicit); !bytes.Equal(got, data) {
		t.Errorf("MarshalDer() = % X, want % X", got, data)
	}

	// an IMPLICIT tag replaces the tag of the inner type which Any does not have
	var sErr *StructuralError
	if _, _, err = FromBER[TaggedValue[Implicit, Any]](data); !errors.As(err, &sErr) {
		t.Errorf("FromBER(Implicit) error = %v, want structural error", err)
	}
}

func TestTaggedValue_notEncodable(t *testing.T) {
	v := TaggedValue[Explicit, int]{Class: asn1.ClassContextSpecific, Inner: 5}
	if _, err := MarshalDer(v); err == nil {
		t.Errorf("MarshalDer() error = nil, want error")
	}
	if _, err := DecodeBER([]byte{0xa0, 0x03, 0x02, 0x01, 0x04}, &v); err == nil {
		t.Errorf("DecodeBER() error = nil, want error")
	}
}

func TestTaggedValue_Owned(t *testing.T) {
	data := []byte{0xa0, 0x03, 0x04, 0x01, 0xaa}
	_, v, err := FromDER[TaggedValue[Explicit, OctetString]](data)
	if err != nil {
		t.Fatal(err)
	}
	owned := ToOwned(v)
	clear(data)
	if !bytes.Equal(owned.Inner, []byte{0xaa}) {
		t.Errorf("ToOwned() = % X, want AA", owned.Inner)
	}
	if owned.Tag() != asn1.ContextSpecific(0) {
		t.Errorf("ToOwned().Tag() = %v, want [0]", owned.Tag())
	}
}

// countingNull counts the calls to WriteDerContent.
type countingNull struct {
	Null
	writes *int
}

func (c countingNull) WriteDerContent(w io.Writer) (int, error) {
	*c.writes++
	return c.Null.WriteDerContent(w)
}

func TestImplicit_contentWrittenOnce(t *testing.T) {
	var writes int
	inner := WrapImplicit(countingNull{writes: &writes}, asn1.ClassContextSpecific, false, 1)
	v := WrapImplicit(inner, asn1.ClassContextSpecific, false, 2)
	got, err := MarshalDer(v)
	if err != nil {
		t.Fatalf("MarshalDer() error = %v", err)
	}
	if want := []byte{0x82, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("MarshalDer() = % X, want % X", got, want)
	}
	if writes != 1 {
		t.Errorf("WriteDerContent called %d times, want 1", writes)
	}
}

func TestImplicit_longContent(t *testing.T) {
	content := bytes.Repeat([]byte{0xaa}, 200)
	v := WrapImplicit(OctetString(content), asn1.ClassContextSpecific, false, 3)
	want := append([]byte{0x83, 0x81, 0xc8}, content...)
	got, err := MarshalDer(v)
	if err != nil || !bytes.Equal(got, want) {
		t.Errorf("MarshalDer() = % X, %v, want % X", got, err, want)
	}
	if l, _ := v.DerLen(); l != len(want) {
		t.Errorf("DerLen() = %d, want %d", l, len(want))
	}
}
