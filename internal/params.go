// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package internal contains helpers shared by the encoding packages.
package internal

import (
	"strconv"
	"strings"

	"codello.dev/asn1/v2"
)

// FieldParameters is the parsed representation of a parameter string such as
// "explicit,tag:3".
type FieldParameters struct {
	Tag         asn1.Tag // the EXPLICIT or IMPLICIT class and tag number.
	HasTag      bool     // true iff a tag number was given.
	Explicit    bool     // true iff an EXPLICIT tag is in use.
	Constructed bool     // true iff an IMPLICIT tag should use the constructed encoding.
}

// ParseFieldParameters will parse a given parameter string into a
// FieldParameters structure, ignoring unknown parts of the string. Parts are
// separated by commas. Recognized parts are "explicit", "constructed",
// "tag:N", "application", "private" and "universal". Without a class the tag
// is context-specific.
func ParseFieldParameters(str string) (ret FieldParameters) {
	ret.Tag.Class = asn1.ClassContextSpecific
	for part := range strings.SplitSeq(str, ",") {
		switch part = strings.TrimSpace(part); {
		case part == "explicit":
			ret.Explicit = true
		case part == "constructed":
			ret.Constructed = true
		case strings.HasPrefix(part, "tag:"):
			i, err := strconv.ParseUint(part[4:], 10, 32)
			if err == nil {
				ret.Tag.Number = uint32(i)
				ret.HasTag = true
			}
		case part == "application":
			ret.Tag.Class = asn1.ClassApplication
		case part == "private":
			ret.Tag.Class = asn1.ClassPrivate
		case part == "universal":
			ret.Tag.Class = asn1.ClassUniversal
		}
	}
	return ret
}
