// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asn1 defines the identity of ASN.1 types as defined in
// [Rec. ITU-T X.680]: tags, tag classes and the Go types for some of the
// universal ASN.1 types. Encoding and decoding using specific encoding rules is
// implemented in subpackages of this package.
//
// # Tag Identity
//
// Most ASN.1 types have exactly one tag. A Go type with such a fixed tag
// implements [Tagged]. The FixedTag method must not depend on its receiver so
// that the tag can be obtained without a value using [TagOf]:
//
//	func (MyType) FixedTag() asn1.Tag { return asn1.Tag{Class: asn1.ClassApplication, Number: 7} }
//
// When the concrete type of a value is not known statically (e.g. the
// elements of a constructed encoding) the tag is obtained at runtime via
// [DynTagged]. Types implementing [Tagged] should implement [DynTagged] by
// returning their fixed tag. The [DynTagOf] function handles both cases so that
// any [Tagged] type can report its tag at runtime without extra work.
//
// A pointer to a value reports the same tag as the value itself.
//
// [Rec. ITU-T X.680]: https://www.itu.int/rec/T-REC-X.680
package asn1

import (
	"strconv"
	"strings"
)

// Tag constitutes an ASN.1 tag, consisting of its class and number. For
// details, see Section 8 of Rec. ITU-T X.680.
type Tag struct {
	Class  Class
	Number uint32
}

// Universal returns the tag with the given number in the [ClassUniversal]
// namespace.
func Universal(number uint32) Tag {
	return Tag{Class: ClassUniversal, Number: number}
}

// ContextSpecific returns the tag with the given number in the
// [ClassContextSpecific] namespace.
func ContextSpecific(number uint32) Tag {
	return Tag{Class: ClassContextSpecific, Number: number}
}

// Class holds the class part of an ASN.1 tag. The class acts as a namespace for
// the tag number. A Class value is an unsigned 2-bit integer. Class values
// whose value exceeds 2 bits are invalid.
//
//go:generate stringer -type=Class -trimprefix=Class
type Class uint8

// IsValid reports whether c is a valid Class value.
func (c Class) IsValid() bool {
	return c <= 3
}

// Predefined [Class] constants. These are all the possible values that can be
// encoded in the [Class] type.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// String returns a string representation t in a format similar to the one used
// in ASN.1 notation. The tag number is enclosed by square brackets and prefixed
// with the class used. To avoid ambiguity the UNIVERSAL word is used for
// universal tags, although this is not valid ASN.1 syntax.
func (t Tag) String() string {
	if t.Class == ClassContextSpecific {
		return "[" + strconv.FormatUint(uint64(t.Number), 10) + "]"
	}
	return "[" + strings.ToUpper(t.Class.String()) + " " + strconv.FormatUint(uint64(t.Number), 10) + "]"
}

// TagReserved is a reserved tag number in the [ClassUniversal] namespace to be
// used by encoding rules. This assignment is defined in Rec. ITU-T X.680,
// Section 8, Table 1.
const TagReserved = 0

// These are some ASN.1 tag numbers are defined in the [ClassUniversal]
// namespace. These assignments are defined in Rec. ITU-T X.680, Section 8, Table
// 1.
const (
	TagBoolean          uint32 = 1
	TagInteger          uint32 = 2
	TagBitString        uint32 = 3
	TagOctetString      uint32 = 4
	TagNull             uint32 = 5
	TagOID              uint32 = 6
	TagObjectDescriptor uint32 = 7
	TagExternal         uint32 = 8
	TagReal             uint32 = 9
	TagEnumerated       uint32 = 10
	TagEmbeddedPDV      uint32 = 11
	TagUTF8String       uint32 = 12
	TagRelativeOID      uint32 = 13
	TagTime             uint32 = 14
	TagSequence         uint32 = 16
	TagSet              uint32 = 17
	TagNumericString    uint32 = 18
	TagPrintableString  uint32 = 19
	TagTeletexString    uint32 = 20
	TagT61String               = TagTeletexString
	TagVideotexString   uint32 = 21
	TagIA5String        uint32 = 22
	TagUTCTime          uint32 = 23
	TagGeneralizedTime  uint32 = 24
	TagGraphicString    uint32 = 25
	TagVisibleString    uint32 = 26
	TagISO646String            = TagVisibleString
	TagGeneralString    uint32 = 27
	TagUniversalString  uint32 = 28
	TagCharacterString  uint32 = 29
	TagBMPString        uint32 = 30
	TagDate             uint32 = 31
	TagTimeOfDay        uint32 = 32
	TagDateTime         uint32 = 33
	TagDuration         uint32 = 34
)

//region Tag Identity

// Tagged is implemented by types that have exactly one tag. FixedTag must
// return the same value for every value of the type, including the zero
// value. Use [TagOf] to obtain the tag of a type without a value.
type Tagged interface {
	FixedTag() Tag
}

// DynTagged is implemented by values that can report their tag at runtime. For
// types implementing [Tagged], Tag must return the fixed tag of the type.
type DynTagged interface {
	Tag() Tag
}

// TagOf returns the fixed tag of T.
func TagOf[T Tagged]() Tag {
	var zero T
	return zero.FixedTag()
}

// DynTagOf returns the tag of v. If v implements [DynTagged] its Tag method is
// used, otherwise the fixed tag of a [Tagged] value is returned. The boolean
// return value is false if v implements neither interface.
func DynTagOf(v any) (Tag, bool) {
	switch vv := v.(type) {
	case DynTagged:
		return vv.Tag(), true
	case Tagged:
		return vv.FixedTag(), true
	}
	return Tag{}, false
}

//endregion
