// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"errors"
	"fmt"
	"io"

	"codello.dev/asn1/v2"
	"codello.dev/asn1/v2/tlv"
)

// Explicit selects EXPLICIT tagging as type argument of [TaggedValue]. The
// complete encoding of the inner value becomes the contents of a constructed
// element with the outer tag.
type Explicit struct{}

// Implicit selects IMPLICIT tagging as type argument of [TaggedValue]. The tag
// of the inner value is replaced by the outer tag. The contents are not
// changed.
type Implicit struct{}

// TagKind is the set of tagging modes supported by [TaggedValue].
type TagKind interface {
	Explicit | Implicit

	// constructed returns whether the outer element is constructed.
	constructed(flag bool) bool
	// contentLen returns the length of the contents of the outer element.
	contentLen(inner DerEncoder) (int, error)
	// writeContent writes the contents of the outer element.
	writeContent(w io.Writer, inner DerEncoder) (int, error)
	// inner returns the element holding the inner value of a. For implicit
	// tagging the element is given the tag innerTag.
	inner(a Any, innerTag asn1.Tag, ok bool) (Any, error)
	// checkInner validates the DER header of the inner element.
	checkInner(inner Any) error
}

func (Explicit) constructed(bool) bool { return true }

func (Explicit) contentLen(inner DerEncoder) (int, error) { return inner.DerLen() }

func (Explicit) writeContent(w io.Writer, inner DerEncoder) (int, error) {
	return WriteDer(w, inner)
}

func (Explicit) inner(a Any, _ asn1.Tag, _ bool) (Any, error) {
	if !a.Header.Constructed {
		return Any{}, &SyntaxError{a.Tag(), fmt.Errorf("%w: explicit tag", ErrConstructExpected)}
	}
	inner, rest, err := parseAny(a.Content)
	if err != nil {
		return Any{}, fail(a.Tag(), err)
	}
	if len(rest) > 0 {
		return Any{}, &SyntaxError{a.Tag(), fmt.Errorf("%w: explicit type has multiple components", ErrTrailingData)}
	}
	return inner, nil
}

func (Explicit) checkInner(inner Any) error { return checkDerHeader(inner) }

func (Implicit) constructed(flag bool) bool { return flag }

func (Implicit) contentLen(inner DerEncoder) (int, error) {
	l, err := inner.DerLen()
	if err != nil {
		return 0, err
	}
	return contentLenOf(inner.Tag(), l), nil
}

// contentLenOf returns the length of the contents of an encoding of total
// bytes with a minimal header for tag.
func contentLenOf(tag asn1.Tag, total int) int {
	h := tlv.Header{Tag: tag}
	h.Length = total - h.Size()
	for h.Size()+h.Length > total {
		h.Length--
	}
	return h.Length
}

func (Implicit) writeContent(w io.Writer, inner DerEncoder) (int, error) {
	return inner.WriteDerContent(w)
}

func (Implicit) inner(a Any, innerTag asn1.Tag, ok bool) (Any, error) {
	if !ok {
		return Any{}, &StructuralError{a.Tag(), errors.New("implicit tag requires a type with a fixed tag")}
	}
	return Any{Header: a.Header, Content: a.Content}.withTag(innerTag), nil
}

func (Implicit) checkInner(Any) error { return nil }

// withTag returns a copy of a with the given tag.
func (a Any) withTag(tag asn1.Tag) Any {
	a.Header.Tag = tag
	return a
}

// TaggedValue wraps a value of type T in an EXPLICIT or IMPLICIT tag, as
// selected by K. The tag is given by Class and Number. Constructed determines
// the encoding of IMPLICIT tags and is ignored for EXPLICIT tags.
//
// Encoding a TaggedValue requires T to implement [DerEncoder]. Decoding
// requires *T to implement [AnyDecoder] and, for DER, [DerChecker]. If Class
// and Number are both zero, decoding accepts any tag and records it in the
// TaggedValue. Otherwise the tag must match.
type TaggedValue[K TagKind, T any] struct {
	Class       asn1.Class
	Number      uint32
	Constructed bool
	Inner       T
}

// WrapExplicit returns v wrapped in an EXPLICIT tag.
func WrapExplicit[T DerEncoder](v T, class asn1.Class, number uint32) TaggedValue[Explicit, T] {
	return TaggedValue[Explicit, T]{Class: class, Number: number, Constructed: true, Inner: v}
}

// WrapImplicit returns v wrapped in an IMPLICIT tag. The caller must specify
// whether the encoding of v is constructed since this cannot be derived from
// the new tag.
func WrapImplicit[T DerEncoder](v T, class asn1.Class, constructed bool, number uint32) TaggedValue[Implicit, T] {
	return TaggedValue[Implicit, T]{Class: class, Number: number, Constructed: constructed, Inner: v}
}

// Tag returns the outer tag of v.
func (v TaggedValue[K, T]) Tag() asn1.Tag {
	return asn1.Tag{Class: v.Class, Number: v.Number}
}

// encoder returns v.Inner as a DerEncoder.
func (v TaggedValue[K, T]) encoder() (DerEncoder, error) {
	enc, ok := any(v.Inner).(DerEncoder)
	if !ok {
		return nil, fmt.Errorf("ber: %T does not implement DerEncoder", v.Inner)
	}
	return enc, nil
}

// contentLen returns the length of the contents of v.
func (v TaggedValue[K, T]) contentLen() (int, error) {
	enc, err := v.encoder()
	if err != nil {
		return 0, err
	}
	var k K
	return k.contentLen(enc)
}

func (v TaggedValue[K, T]) DerLen() (int, error) {
	l, err := v.contentLen()
	if err != nil {
		return 0, err
	}
	return encodedLen(v.Tag(), l), nil
}

func (v TaggedValue[K, T]) WriteDerHeader(w io.Writer) (int, error) {
	l, err := v.contentLen()
	if err != nil {
		return 0, err
	}
	var k K
	return writeHeader(w, v.Tag(), k.constructed(v.Constructed), l)
}

func (v TaggedValue[K, T]) WriteDerContent(w io.Writer) (int, error) {
	enc, err := v.encoder()
	if err != nil {
		return 0, err
	}
	var k K
	return k.writeContent(w, enc)
}

// innerElement validates the outer tag of a and returns the element holding
// the inner value.
func (v *TaggedValue[K, T]) innerElement(a Any) (Any, error) {
	if tag := v.Tag(); tag != (asn1.Tag{}) && a.Tag() != tag {
		return Any{}, &StructuralError{a.Tag(), fmt.Errorf("%w: want %v", ErrUnexpectedTag, tag)}
	}
	var innerTag asn1.Tag
	tagged, ok := any(&v.Inner).(asn1.Tagged)
	if ok {
		innerTag = tagged.FixedTag()
	}
	var k K
	return k.inner(a, innerTag, ok)
}

func (v *TaggedValue[K, T]) DecodeAny(a Any) error {
	inner, err := v.innerElement(a)
	if err != nil {
		return err
	}
	dec, ok := any(&v.Inner).(AnyDecoder)
	if !ok {
		return fmt.Errorf("ber: %T does not implement AnyDecoder", &v.Inner)
	}
	if err = dec.DecodeAny(inner); err != nil {
		return err
	}
	v.Class = a.Header.Tag.Class
	v.Number = a.Header.Tag.Number
	v.Constructed = a.Header.Constructed
	return nil
}

// CheckDerConstraints validates the inner element using the DER constraints
// of T. For EXPLICIT tags the inner element must use the definite-length
// encoding and a minimal header.
func (v TaggedValue[K, T]) CheckDerConstraints(a Any) error {
	inner, err := v.innerElement(a)
	if err != nil {
		return err
	}
	var k K
	if err = k.checkInner(inner); err != nil {
		return err
	}
	checker, ok := any(&v.Inner).(DerChecker)
	if !ok {
		return fmt.Errorf("ber: %T does not implement DerChecker", &v.Inner)
	}
	return checker.CheckDerConstraints(inner)
}

// Owned returns a copy of v whose inner value does not reference the input,
// provided that T implements [Owner].
func (v TaggedValue[K, T]) Owned() TaggedValue[K, T] {
	if o, ok := any(v.Inner).(Owner[T]); ok {
		v.Inner = o.Owned()
	}
	return v
}
