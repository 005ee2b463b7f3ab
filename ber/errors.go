// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"errors"
	"io"
	"strings"

	"codello.dev/asn1/v2"
	"codello.dev/asn1/v2/tlv"
)

// ErrIncomplete is matched by errors indicating that the input ended before an
// element was complete. Decoding may succeed if more data is provided. Every
// other error returned by the decoding functions of this package is final.
var ErrIncomplete = tlv.ErrIncomplete

// IncompleteError is the error type matching [ErrIncomplete]. The Needed field
// gives a lower bound for the number of missing bytes.
type IncompleteError = tlv.IncompleteError

var (
	// ErrIndefiniteLengthUnexpected indicates that an element used the
	// indefinite-length encoding where DER requires definite lengths.
	ErrIndefiniteLengthUnexpected = errors.New("indefinite length not allowed")

	// ErrDerConstraintFailed is matched by every [*DerConstraintError].
	ErrDerConstraintFailed = errors.New("DER constraint failed")

	// ErrUnexpectedTag indicates that an element did not carry the tag of the
	// type it was decoded into.
	ErrUnexpectedTag = errors.New("unexpected tag")

	// ErrConstructExpected indicates a primitive encoding where a constructed
	// encoding is required.
	ErrConstructExpected = errors.New("constructed encoding expected")

	// ErrConstructUnexpected indicates a constructed encoding where a primitive
	// encoding is required.
	ErrConstructUnexpected = errors.New("constructed encoding not allowed")

	// ErrTrailingData indicates that the contents of an element were not fully
	// consumed.
	ErrTrailingData = errors.New("trailing data")

	errTooDeep = errors.New("nesting too deep")
	errTooLong = errors.New("encoding too long")
)

// DerConstraint identifies a rule of the Distinguished Encoding Rules that is
// stricter than the corresponding rule of BER.
//
//go:generate stringer -type=DerConstraint
type DerConstraint uint8

// These are the DER constraints checked by the types of this package.
const (
	Constructed          DerConstraint = iota // a string type used the constructed encoding
	LongLength                                // the length was not encoded in its minimal form
	NonMinimalTag                             // the tag used the long form for a small tag number
	InvalidBoolean                            // a BOOLEAN was neither 0x00 nor 0xFF
	IntegerEmpty                              // an INTEGER had no contents
	IntegerLeadingZeroes                      // an INTEGER had a redundant leading 0x00
	IntegerLeadingFF                          // an INTEGER had a redundant leading 0xFF
	UnusedBitsNotZero                         // the unused bits of a BIT STRING were set
	SetUnordered                              // the elements of a SET OF were not sorted
)

// DerConstraintError reports a violation of a [DerConstraint]. It matches
// [ErrDerConstraintFailed].
type DerConstraintError struct {
	Tag        asn1.Tag
	Constraint DerConstraint
}

func (e *DerConstraintError) Error() string {
	return "DER constraint failed decoding " + e.Tag.String() + ": " + e.Constraint.String()
}

// Is reports whether target is [ErrDerConstraintFailed].
func (e *DerConstraintError) Is(target error) bool { return target == ErrDerConstraintFailed }

// A SyntaxError suggests that the ASN.1 data is invalid. This can either
// indicate that the nesting of structured encodings contains an error, or that
// a primitive encoding could not be converted into a valid value.
//
// For errors that are not directly related to the syntax of the BER byte
// stream, [StructuralError] is a better fit.
type SyntaxError struct {
	Tag asn1.Tag // where the syntax error occurred
	Err error
}

func (e *SyntaxError) Error() string {
	var s strings.Builder
	s.WriteString("syntax error")
	if e.Tag != (asn1.Tag{}) {
		s.WriteString(" decoding ")
		s.WriteString(e.Tag.String())
	}
	if e.Err != nil {
		s.WriteString(": ")
		s.WriteString(e.Err.Error())
	}
	return s.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// A StructuralError suggests that the ASN.1 data is valid, but the Go type
// which is receiving it doesn't match or can't fit the data.
//
// See also [SyntaxError].
type StructuralError struct {
	Tag asn1.Tag
	Err error
}

func (e *StructuralError) Error() string {
	var s strings.Builder
	s.WriteString("structural error")
	if e.Tag != (asn1.Tag{}) {
		s.WriteString(" decoding ")
		s.WriteString(e.Tag.String())
	}
	if e.Err != nil {
		s.WriteString(": ")
		s.WriteString(e.Err.Error())
	}
	return s.String()
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// IsIncomplete reports whether err indicates that more input is needed.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

// fail returns err as a final error. An incomplete error produced after the
// element with the given tag was consumed cannot be fixed by more input and is
// reported as a syntax error instead.
func fail(tag asn1.Tag, err error) error {
	if IsIncomplete(err) {
		return &SyntaxError{tag, io.ErrUnexpectedEOF}
	}
	return err
}
