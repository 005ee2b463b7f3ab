// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ber implements the ASN.1 Basic Encoding Rules (BER) and the
// Distinguished Encoding Rules (DER). The encoding rules are defined in
// [Rec. ITU-T X.690].
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// # Decoding
//
// A Go type becomes decodable by implementing [AnyDecoder]. The DecodeAny
// method converts a generic decoded element ([Any]) into a value of the type.
// Given that method, [FromBER] and [DecodeBER] decode a value from the prefix of
// a byte slice:
//
//	rest, v, err := ber.FromBER[ber.Integer](data)
//
// DER decoding additionally requires the [DerChecker] interface. Before the
// conversion is attempted [FromDER] and [DecodeDER] reject indefinite lengths
// and non-minimal headers and call the CheckDerConstraints method, which
// validates the type-specific DER rules. Any input accepted by the DER
// functions is also accepted by the BER functions and decodes to the same
// value.
//
// The decoding functions distinguish two kinds of errors. If the input ends
// before an element is complete the error matches [ErrIncomplete]. The caller
// may provide more data and try again. Any other error is final. In
// particular an error returned by DecodeAny or CheckDerConstraints is never
// reported as incomplete since the element has already been consumed.
//
// Decoded values may reference the input. Use [ToOwned] to obtain a copy that
// does not.
//
// # Encoding
//
// A Go type is encodable if it implements [DerEncoder]. Values are encoded
// using the canonical DER form by [WriteDer] and [MarshalDer]. [WriteDerRaw] and
// [MarshalDerRaw] allow types to reproduce their input verbatim, even if it is
// not a valid DER encoding.
//
// # Tagging
//
// Values can be wrapped in an EXPLICIT or IMPLICIT tag using [WrapExplicit] and
// [WrapImplicit]. The kind of tagging is a type parameter of [TaggedValue].
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package ber

// BER selects the Basic Encoding Rules as type argument of [Parse], [Unpack],
// [FromAny] and [Decoder].
type BER struct{}

// DER selects the Distinguished Encoding Rules as type argument of [Parse],
// [Unpack], [FromAny] and [Decoder].
type DER struct{}

func (BER) der() bool { return false }
func (DER) der() bool { return true }

// Mode is the set of encoding rules supported by the decoding functions of
// this package.
type Mode interface {
	BER | DER
	der() bool
}
