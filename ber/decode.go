// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"codello.dev/asn1/v2/tlv"
)

// AnyDecoder is implemented by types that can be decoded from a generic
// element. DecodeAny may retain a and the slices it references. They remain
// valid as long as the input does.
//
// Implementations should return a [*SyntaxError] if a is not a valid encoding
// and a [*StructuralError] if a is valid but cannot be represented by the
// type, e.g. because the tag does not match.
type AnyDecoder interface {
	DecodeAny(a Any) error
}

// DerChecker is implemented by types that enforce the rules of DER on top of
// BER. CheckDerConstraints must not modify its receiver or a. It is called
// before DecodeAny and only if a uses the definite-length encoding and a
// minimal header.
type DerChecker interface {
	CheckDerConstraints(a Any) error
}

// DerDecoder combines [AnyDecoder] and [DerChecker].
type DerDecoder interface {
	AnyDecoder
	DerChecker
}

// BerDecodable is satisfied by a pointer to a type that can be decoded from
// BER.
type BerDecodable[T any] interface {
	*T
	AnyDecoder
}

// DerDecodable is satisfied by a pointer to a type that can be decoded from
// DER.
type DerDecodable[T any] interface {
	*T
	DerDecoder
}

// FromBER decodes a single BER element from the beginning of b into a value of
// type T and returns the remaining bytes.
func FromBER[T any, PT BerDecodable[T]](b []byte) (rest []byte, v T, err error) {
	rest, err = DecodeBER(b, PT(&v))
	return rest, v, err
}

// FromDER decodes a single DER element from the beginning of b into a value of
// type T and returns the remaining bytes.
func FromDER[T any, PT DerDecodable[T]](b []byte) (rest []byte, v T, err error) {
	rest, err = DecodeDER(b, PT(&v))
	return rest, v, err
}

// Parse decodes a single element from the beginning of b according to the
// encoding rules M.
func Parse[M Mode, T any, PT DerDecodable[T]](b []byte) (rest []byte, v T, err error) {
	var m M
	if m.der() {
		return FromDER[T, PT](b)
	}
	return FromBER[T, PT](b)
}

// FromAny converts an already decoded element into a value of type T
// according to the encoding rules M. For DER the same checks as in
// [DecodeDER] are performed.
func FromAny[M Mode, T any, PT DerDecodable[T]](a Any) (v T, err error) {
	var m M
	if m.der() {
		if err = checkDer(a, PT(&v)); err != nil {
			return v, err
		}
	}
	err = decodeAny(a, PT(&v))
	return v, err
}

// DecodeBER decodes a single BER element from the beginning of b into v and
// returns the remaining bytes. If the element is incomplete the returned error
// matches [ErrIncomplete]. Errors returned by v are final.
func DecodeBER(b []byte, v AnyDecoder) (rest []byte, err error) {
	a, rest, err := parseAny(b)
	if err != nil {
		return b, err
	}
	if err = decodeAny(a, v); err != nil {
		return b, err
	}
	return rest, nil
}

// DecodeDER decodes a single DER element from the beginning of b into v and
// returns the remaining bytes. The element must use the definite-length
// encoding and a minimal header. Then the DER constraints of v are checked
// before v decodes the element.
func DecodeDER(b []byte, v DerDecoder) (rest []byte, err error) {
	a, rest, err := parseAny(b)
	if err != nil {
		return b, err
	}
	if err = checkDer(a, v); err != nil {
		return b, err
	}
	if err = decodeAny(a, v); err != nil {
		return b, err
	}
	return rest, nil
}

// decodeAny converts a into v.
func decodeAny(a Any, v AnyDecoder) error {
	if err := v.DecodeAny(a); err != nil {
		return fail(a.Tag(), err)
	}
	return nil
}

// checkDer validates the header of a and the DER constraints of v.
func checkDer(a Any, v DerChecker) error {
	if err := checkDerHeader(a); err != nil {
		return err
	}
	if err := v.CheckDerConstraints(a); err != nil {
		return fail(a.Tag(), err)
	}
	return nil
}

// checkDerHeader reports an error if a uses the indefinite-length encoding or
// if the header of a was not minimally encoded.
func checkDerHeader(a Any) error {
	if a.Header.Length == tlv.LengthIndefinite {
		return &SyntaxError{a.Tag(), ErrIndefiniteLengthUnexpected}
	}
	if a.headerLen == 0 || a.headerLen == a.Header.Size() {
		return nil
	}
	if a.raw[0]&0x1f == 0x1f && a.Header.Tag.Number < 0x1f {
		return &DerConstraintError{a.Tag(), NonMinimalTag}
	}
	return &DerConstraintError{a.Tag(), LongLength}
}
