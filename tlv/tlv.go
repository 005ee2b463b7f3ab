// Package tlv implements decoding and encoding of the tag-length-value (TLV)
// format used by the Basic Encoding Rules (BER) and related encoding rules as
// specified in [Rec. ITU-T X.690].
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// This package deals with the syntactic layer of TLV-encoding while other
// packages such as [codello.dev/asn1/v2/ber] deal with the semantic layer of
// BER.
//
// # Headers and Elements
//
// In BER each value is encoded using a tag-length-value format. The tag and
// length (we call them a header) are represented by the [Header] type and are
// decoded by [ParseHeader]. A complete encoding (header and contents) is an
// [Element] and is decoded by [ParseElement]. Values can use the primitive or
// constructed encoding. Constructed values contain more BER-encoded values and
// can either end implicitly (when using definite-length encoding) or
// explicitly (indefinite length).
//
// The end of an indefinite-length element is signalled by a zero [Header] (or,
// equivalently, using [TagEndOfContents]).
//
// # Incomplete Input
//
// Parsing operates on byte slices. When the input ends before an element is
// complete the returned error is an [*IncompleteError] which matches
// [ErrIncomplete]. Callers reading from a stream can use the Needed field to
// refill their buffer and retry. Every other error is final.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package tlv

import (
	"math"
	"strconv"

	"codello.dev/asn1/v2"
)

// TagEndOfContents is the tag that signifies the end of a constructed element.
// You can use this variable for clarity, the following are the same:
//
//	tlv.Header{}
//	tlv.Header{Tag: tlv.TagEndOfContents}
//	tlv.EndOfContents
var TagEndOfContents = asn1.Universal(asn1.TagReserved)

// MaxDepth is the maximum nesting depth of indefinite-length elements accepted
// by [ParseElement].
const MaxDepth = 50

// EndOfContents is the end-of-contents marker signalling the end of a
// constructed element. The following are equivalent:
//
//	tlv.Header{}
//	tlv.Header{Tag: tlv.TagEndOfContents}
//	tlv.EndOfContents
var EndOfContents = Header{Tag: TagEndOfContents}

// LengthIndefinite when used as a magic number for the length of a [Header]
// indicates that the data value is encoded using the constructed
// indefinite-length format.
const LengthIndefinite = -1

// CombinedLength returns the length of a data value encoding (not including its
// header) consisting of data value encodings of the specified lengths. If any
// of the passed lengths are [LengthIndefinite] or the result does not fit into
// the int type, the result is [LengthIndefinite].
func CombinedLength(ls ...int) int {
	sum := 0
	for _, l := range ls {
		if l == LengthIndefinite {
			return LengthIndefinite
		}
		if l > math.MaxInt-sum { // overflow
			return LengthIndefinite
		}
		sum += l
	}
	return sum
}

// Header represents a TLV header. The [Header.Length] may be [LengthIndefinite]
// if an indefinite-length encoding is used. It is invalid to use the
// indefinite-length encoding when [Header.Constructed] = false.
type Header struct {
	Tag         asn1.Tag
	Constructed bool
	Length      int
}

// String returns a string representation of h.
func (h Header) String() string {
	if h == EndOfContents {
		return "EndOfContents"
	}
	s := h.Tag.String()
	if h.Constructed {
		s += "/c"
	} else {
		s += "/p"
	}
	s += ":" + strconv.Itoa(h.Length)
	return s
}

// requireKeyedLiterals can be embedded in a struct to require keyed literals.
type requireKeyedLiterals struct{}

// nonComparable can be embedded in a struct to prevent comparability.
type nonComparable [0]func()
