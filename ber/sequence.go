// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"bytes"
	"errors"
	"io"
	"iter"
	"slices"

	"codello.dev/asn1/v2"
	"codello.dev/asn1/v2/internal"
	"codello.dev/asn1/v2/tlv"
)

//region [UNIVERSAL 16] SEQUENCE

// Sequence implements the ASN.1 SEQUENCE and SEQUENCE OF types. A Sequence
// holds the encoded elements. Elements are added using [Sequence.Append] and
// read using [Sequence.Elements] or [Unpack].
//
// A decoded Sequence references the input.
type Sequence struct {
	content []byte
}

// FixedTag returns [UNIVERSAL 16].
func (Sequence) FixedTag() asn1.Tag { return asn1.Universal(asn1.TagSequence) }

// Tag returns [UNIVERSAL 16].
func (s Sequence) Tag() asn1.Tag { return s.FixedTag() }

// Append appends the DER encodings of vs to s.
func (s *Sequence) Append(vs ...DerEncoder) error {
	for _, v := range vs {
		if _, err := WriteDer(appendWriter{&s.content}, v); err != nil {
			return err
		}
	}
	return nil
}

// AppendWithParams appends v to s using the tagging described by params. The
// params string is a comma separated list of the following options:
//
//	tag:N        use tag number N
//	explicit     use an EXPLICIT tag (the default is IMPLICIT)
//	application  use the APPLICATION class
//	private      use the PRIVATE class
//	universal    use the UNIVERSAL class
//	constructed  mark an IMPLICIT tag as constructed
//
// Without a class option the tag is context-specific. Without a tag number v
// is appended as is.
func (s *Sequence) AppendWithParams(v DerEncoder, params string) error {
	p := internal.ParseFieldParameters(params)
	switch {
	case !p.HasTag:
		return s.Append(v)
	case p.Explicit:
		return s.Append(WrapExplicit(v, p.Tag.Class, p.Tag.Number))
	default:
		return s.Append(WrapImplicit(v, p.Tag.Class, p.Constructed, p.Tag.Number))
	}
}

// Elements returns an iterator over the elements of s.
func (s Sequence) Elements() iter.Seq2[Any, error] {
	return s.element().Elements()
}

// Len returns the number of bytes of the contents of s.
func (s Sequence) Len() int { return len(s.content) }

func (s *Sequence) DecodeAny(a Any) error {
	if err := a.expectConstructed(s.FixedTag()); err != nil {
		return err
	}
	s.content = a.Content
	return nil
}

// CheckDerConstraints verifies that all nested elements use the
// definite-length encoding and minimal headers.
func (Sequence) CheckDerConstraints(a Any) error {
	return checkNested(a, 0)
}

// DerLen returns the length of the canonical encoding of s. Nested elements
// are re-encoded using minimal definite-length headers.
func (s Sequence) DerLen() (int, error) { return s.element().DerLen() }

func (s Sequence) WriteDerHeader(w io.Writer) (int, error) { return s.element().WriteDerHeader(w) }

func (s Sequence) WriteDerContent(w io.Writer) (int, error) { return s.element().WriteDerContent(w) }

// WriteDerRaw writes the contents of s as they were decoded, preceded by a
// minimal header.
func (s Sequence) WriteDerRaw(w io.Writer) (int, error) { return writeRaw(w, s.FixedTag(), s.content) }

// element returns s as a generic element.
func (s Sequence) element() Any { return NewAny(s.FixedTag(), true, s.content) }

// writeRaw writes a constructed element with the given tag and contents.
func writeRaw(w io.Writer, tag asn1.Tag, content []byte) (int, error) {
	n, err := writeHeader(w, tag, true, len(content))
	if err != nil {
		return n, err
	}
	m, err := w.Write(content)
	return n + m, err
}

// Owned returns a copy of s that does not reference the input.
func (s Sequence) Owned() Sequence {
	return Sequence{slices.Clone(s.content)}
}

// Unpack decodes the elements of s into dst according to the encoding rules
// M. The number of elements must match the number of values in dst.
func Unpack[M Mode](s Sequence, dst ...DerDecoder) error {
	var m M
	b := s.content
	var err error
	for _, v := range dst {
		if len(b) == 0 {
			return &StructuralError{s.FixedTag(), errors.New("not enough elements")}
		}
		if m.der() {
			b, err = DecodeDER(b, v)
		} else {
			b, err = DecodeBER(b, v)
		}
		if err != nil {
			return fail(s.FixedTag(), err)
		}
	}
	if len(b) > 0 {
		return &StructuralError{s.FixedTag(), ErrTrailingData}
	}
	return nil
}

//endregion

//region [UNIVERSAL 17] SET OF

// SetOf implements the ASN.1 SET OF type. The elements of a SetOf are kept in
// the order required by DER, that is ascending by their encodings.
//
// A decoded SetOf references the input.
type SetOf struct {
	content []byte
}

// FixedTag returns [UNIVERSAL 17].
func (SetOf) FixedTag() asn1.Tag { return asn1.Universal(asn1.TagSet) }

// Tag returns [UNIVERSAL 17].
func (s SetOf) Tag() asn1.Tag { return s.FixedTag() }

// Add adds the DER encodings of vs to s. The elements of s are sorted
// afterward.
func (s *SetOf) Add(vs ...DerEncoder) error {
	elems, err := s.encodings()
	if err != nil {
		return err
	}
	for _, v := range vs {
		b, err := MarshalDer(v)
		if err != nil {
			return err
		}
		elems = append(elems, b)
	}
	slices.SortFunc(elems, bytes.Compare)
	s.content = bytes.Join(elems, nil)
	return nil
}

// encodings returns the encodings of the elements of s.
func (s SetOf) encodings() ([][]byte, error) {
	elems, err := tlv.Elements(s.content)
	if err != nil {
		return nil, &SyntaxError{s.FixedTag(), err}
	}
	ret := make([][]byte, len(elems))
	for i, e := range elems {
		ret[i] = e.Raw
	}
	return ret, nil
}

// Elements returns an iterator over the elements of s.
func (s SetOf) Elements() iter.Seq2[Any, error] {
	return s.element().Elements()
}

func (s *SetOf) DecodeAny(a Any) error {
	if err := a.expectConstructed(s.FixedTag()); err != nil {
		return err
	}
	s.content = a.Content
	return nil
}

// CheckDerConstraints verifies that all nested elements use the
// definite-length encoding and minimal headers and that the elements are
// sorted by their encodings.
func (SetOf) CheckDerConstraints(a Any) error {
	if err := checkNested(a, 0); err != nil {
		return err
	}
	var prev []byte
	for child, err := range a.Elements() {
		if err != nil {
			return err
		}
		if prev != nil && bytes.Compare(prev, child.raw) > 0 {
			return &DerConstraintError{a.Tag(), SetUnordered}
		}
		prev = child.raw
	}
	return nil
}

// DerLen returns the length of the canonical encoding of s. Nested elements
// are re-encoded using minimal definite-length headers.
func (s SetOf) DerLen() (int, error) { return s.element().DerLen() }

func (s SetOf) WriteDerHeader(w io.Writer) (int, error) { return s.element().WriteDerHeader(w) }

func (s SetOf) WriteDerContent(w io.Writer) (int, error) { return s.element().WriteDerContent(w) }

// WriteDerRaw writes the contents of s as they were decoded, preceded by a
// minimal header.
func (s SetOf) WriteDerRaw(w io.Writer) (int, error) { return writeRaw(w, s.FixedTag(), s.content) }

// element returns s as a generic element.
func (s SetOf) element() Any { return NewAny(s.FixedTag(), true, s.content) }

// Owned returns a copy of s that does not reference the input.
func (s SetOf) Owned() SetOf {
	return SetOf{slices.Clone(s.content)}
}

//endregion
