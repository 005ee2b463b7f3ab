package tlv

import (
	"errors"
)

// Element is a complete TLV encoding. All slices alias the input passed to
// [ParseElement].
type Element struct {
	Header

	// HeaderLen is the number of bytes occupied by the encoded header. It may be
	// larger than [Header.Size] if the header was not minimally encoded.
	HeaderLen int

	// Content holds the contents octets. For indefinite-length elements the
	// trailing end-of-contents marker is not included.
	Content []byte

	// Raw holds the complete encoding of the element exactly as it appeared in
	// the input, including the end-of-contents marker if present.
	Raw []byte
}

// ParseElement decodes a single TLV element from the beginning of b and returns
// it together with the remaining input. Definite-length contents are not
// inspected. The contents of indefinite-length elements are scanned for the
// matching end-of-contents marker, descending at most [MaxDepth] levels.
//
// If b ends before the element is complete, an [*IncompleteError] is returned.
// A lone end-of-contents marker is a syntax error.
func ParseElement(b []byte) (e Element, rest []byte, err error) {
	h, n, err := ParseHeader(b)
	if err != nil {
		return e, b, err
	}
	if h.Tag == TagEndOfContents {
		if h == EndOfContents && n == 2 {
			return e, b, &SyntaxError{Err: errUnexpectedEOC}
		}
		// end-of-contents is a reserved tag
		return e, b, &SyntaxError{Err: errInvalidEOC}
	}

	e.Header = h
	e.HeaderLen = n
	if h.Length == LengthIndefinite {
		contentLen, total, err := contentsEnd(b[n:], h, 1)
		if err != nil {
			return Element{}, b, atOffset(err, n, h)
		}
		e.Content = b[n : n+contentLen]
		e.Raw = b[:n+total]
		return e, b[n+total:], nil
	}
	if remaining := len(b) - n; remaining < h.Length {
		return Element{}, b, &IncompleteError{Needed: h.Length - remaining}
	}
	e.Content = b[n : n+h.Length]
	e.Raw = b[:n+h.Length]
	return e, b[n+h.Length:], nil
}

// contentsEnd scans the contents of the indefinite-length element with header
// parent that start at b. It returns the length of the contents and the total
// number of bytes including the end-of-contents marker. Offsets in returned
// errors are relative to b.
func contentsEnd(b []byte, parent Header, depth int) (contentLen int, total int, err error) {
	if depth > MaxDepth {
		return 0, 0, &SyntaxError{Err: errTooDeep, Header: parent}
	}
	off := 0
	for {
		h, n, err := ParseHeader(b[off:])
		if err != nil {
			return 0, 0, atOffset(err, off, parent)
		}
		if h == EndOfContents && n == 2 {
			return off, off + 2, nil
		}
		if h.Tag == TagEndOfContents {
			return 0, 0, &SyntaxError{Err: errInvalidEOC, ByteOffset: int64(off), Header: parent}
		}
		if h.Length == LengthIndefinite {
			_, t, err := contentsEnd(b[off+n:], h, depth+1)
			if err != nil {
				return 0, 0, atOffset(err, off+n, parent)
			}
			off += n + t
			continue
		}
		if remaining := len(b) - off - n; remaining < h.Length {
			return 0, 0, &IncompleteError{Needed: h.Length - remaining}
		}
		off += n + h.Length
	}
}

// Elements returns the elements contained in b, which must be the contents of
// a constructed element. The returned error is nil if b consists of a sequence
// of complete elements. Incomplete elements are reported as syntax errors
// since the contents of an element cannot be extended.
func Elements(b []byte) ([]Element, error) {
	var ret []Element
	off := 0
	for len(b) > 0 {
		e, rest, err := ParseElement(b)
		if errors.Is(err, ErrIncomplete) {
			return ret, &SyntaxError{Err: errTruncated, ByteOffset: int64(off)}
		} else if err != nil {
			return ret, atOffset(err, off, EndOfContents)
		}
		ret = append(ret, e)
		off += len(e.Raw)
		b = rest
	}
	return ret, nil
}
