// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"codello.dev/asn1/v2"
	"codello.dev/asn1/v2/tlv"
)

// Any represents a decoded element whose contents have not been interpreted.
// During decoding the header is validated but the contents are only inspected
// as far as necessary to find the end of indefinite-length encodings.
//
// A decoded Any references the input it was decoded from. Use [ToOwned] to
// obtain an independent copy.
type Any struct {
	Header  tlv.Header
	Content []byte // contents octets, excluding a trailing end-of-contents marker

	raw       []byte // complete input encoding, nil if not decoded
	headerLen int    // length of the header in raw
}

// NewAny returns an Any with the given tag and contents. The Length of the
// resulting header is the length of content.
func NewAny(tag asn1.Tag, constructed bool, content []byte) Any {
	return Any{
		Header:  tlv.Header{Tag: tag, Constructed: constructed, Length: len(content)},
		Content: content,
	}
}

// parseAny decodes a single element from the beginning of b.
func parseAny(b []byte) (Any, []byte, error) {
	e, rest, err := tlv.ParseElement(b)
	if err != nil {
		return Any{}, b, err
	}
	return Any{Header: e.Header, Content: e.Content, raw: e.Raw, headerLen: e.HeaderLen}, rest, nil
}

// Tag returns the tag of a.
func (a Any) Tag() asn1.Tag { return a.Header.Tag }

// DecodeAny stores a in v.
func (v *Any) DecodeAny(a Any) error {
	*v = a
	return nil
}

// CheckDerConstraints verifies that all nested elements of a use the
// definite-length encoding and minimal headers. The contents of primitive
// elements are not validated.
func (Any) CheckDerConstraints(a Any) error {
	return checkNested(a, 0)
}

// checkNested validates the headers of all elements nested in a.
func checkNested(a Any, depth int) error {
	if !a.Header.Constructed {
		return nil
	}
	if depth >= tlv.MaxDepth {
		return &SyntaxError{a.Tag(), errTooDeep}
	}
	for child, err := range a.Elements() {
		if err != nil {
			return err
		}
		if err = checkDerHeader(child); err != nil {
			return err
		}
		if err = checkNested(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Elements returns an iterator over the elements contained in a constructed
// element. If a is primitive or its contents are malformed the iterator yields
// an error and stops.
func (a Any) Elements() iter.Seq2[Any, error] {
	return func(yield func(Any, error) bool) {
		if !a.Header.Constructed {
			yield(Any{}, &SyntaxError{a.Tag(), ErrConstructExpected})
			return
		}
		for b := a.Content; len(b) > 0; {
			child, rest, err := parseAny(b)
			if err != nil {
				yield(Any{}, fail(a.Tag(), err))
				return
			}
			if !yield(child, nil) {
				return
			}
			b = rest
		}
	}
}

// derNode is an element prepared for canonical encoding. The content lengths
// of all nested elements are computed once when the node is built.
type derNode struct {
	tag         asn1.Tag
	constructed bool
	content     []byte // contents of primitive elements
	children    []derNode
	contentLen  int
}

// canonical walks the elements nested in a, descending at most [tlv.MaxDepth]
// constructed levels.
func (a Any) canonical(depth int) (derNode, error) {
	n := derNode{tag: a.Tag(), constructed: a.Header.Constructed}
	if !a.Header.Constructed {
		n.content = a.Content
		n.contentLen = len(a.Content)
		return n, nil
	}
	if depth >= tlv.MaxDepth {
		return n, &SyntaxError{a.Tag(), errTooDeep}
	}
	for child, err := range a.Elements() {
		if err != nil {
			return n, err
		}
		c, err := child.canonical(depth + 1)
		if err != nil {
			return n, err
		}
		n.contentLen = tlv.CombinedLength(n.contentLen, encodedLen(c.tag, c.contentLen))
		if n.contentLen == tlv.LengthIndefinite {
			return n, &SyntaxError{a.Tag(), errTooLong}
		}
		n.children = append(n.children, c)
	}
	return n, nil
}

// writeContent writes the contents of n with minimal definite-length headers
// for all nested elements.
func (n *derNode) writeContent(w io.Writer) (int, error) {
	if !n.constructed {
		return w.Write(n.content)
	}
	total := 0
	for i := range n.children {
		c := &n.children[i]
		m, err := writeHeader(w, c.tag, c.constructed, c.contentLen)
		total += m
		if err != nil {
			return total, err
		}
		m, err = c.writeContent(w)
		total += m
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// DerLen returns the length of the canonical encoding of a. Nested elements
// are re-encoded using minimal definite-length headers.
func (a Any) DerLen() (int, error) {
	n, err := a.canonical(0)
	if err != nil {
		return 0, err
	}
	return encodedLen(a.Tag(), n.contentLen), nil
}

// WriteDerHeader writes a minimal definite-length header for a.
func (a Any) WriteDerHeader(w io.Writer) (int, error) {
	n, err := a.canonical(0)
	if err != nil {
		return 0, err
	}
	return writeHeader(w, a.Tag(), a.Header.Constructed, n.contentLen)
}

// WriteDerContent writes the contents of a. The contents of primitive
// elements are written as-is. Nested elements of constructed encodings are
// written with minimal definite-length headers.
func (a Any) WriteDerContent(w io.Writer) (int, error) {
	n, err := a.canonical(0)
	if err != nil {
		return 0, err
	}
	return n.writeContent(w)
}

// WriteDerRaw writes the encoding a was decoded from. If a was not decoded
// the canonical encoding is written instead.
func (a Any) WriteDerRaw(w io.Writer) (int, error) {
	if a.raw == nil {
		return WriteDer(w, a)
	}
	return w.Write(a.raw)
}

// Owned returns a copy of a that does not reference the original input.
func (a Any) Owned() Any {
	if a.raw == nil {
		a.Content = slices.Clone(a.Content)
		return a
	}
	a.raw = slices.Clone(a.raw)
	a.Content = a.raw[a.headerLen : a.headerLen+len(a.Content)]
	return a
}

// String returns a string representation of a. The contents are only included
// if they are short enough.
func (a Any) String() string {
	constructed := "primitive"
	if a.Header.Constructed {
		constructed = "constructed"
	}
	if len(a.Content) > 24 {
		return fmt.Sprintf("Any{%s (%s) {%d bytes}}", a.Tag().String(), constructed, len(a.Content))
	}
	return fmt.Sprintf("Any{%s (%s) {% X}}", a.Tag().String(), constructed, a.Content)
}

// expect returns a [*StructuralError] if a does not have the given tag.
func (a Any) expect(tag asn1.Tag) error {
	if a.Header.Tag != tag {
		return &StructuralError{a.Header.Tag, fmt.Errorf("%w: want %v", ErrUnexpectedTag, tag)}
	}
	return nil
}

// expectPrimitive returns an error if a does not have the given tag or uses
// the constructed encoding.
func (a Any) expectPrimitive(tag asn1.Tag) error {
	if err := a.expect(tag); err != nil {
		return err
	}
	if a.Header.Constructed {
		return &SyntaxError{tag, ErrConstructUnexpected}
	}
	return nil
}

// expectConstructed returns an error if a does not have the given tag or uses
// the primitive encoding.
func (a Any) expectConstructed(tag asn1.Tag) error {
	if err := a.expect(tag); err != nil {
		return err
	}
	if !a.Header.Constructed {
		return &SyntaxError{tag, ErrConstructExpected}
	}
	return nil
}

// segments calls fn for every primitive segment of the string type encoded in
// a. Under BER strings may be split into segments using the constructed
// encoding. Each segment carries the tag of a.
func segments(a Any, depth int, fn func(seg []byte) error) error {
	if !a.Header.Constructed {
		return fn(a.Content)
	}
	if depth >= tlv.MaxDepth {
		return &SyntaxError{a.Tag(), errTooDeep}
	}
	for child, err := range a.Elements() {
		if err != nil {
			return err
		}
		if child.Tag() != a.Tag() {
			return &SyntaxError{a.Tag(), fmt.Errorf("%w: segment %v", ErrUnexpectedTag, child.Tag())}
		}
		if err = segments(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}
