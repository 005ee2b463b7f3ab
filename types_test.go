// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import (
	"math"
	"strconv"
	"testing"
)

func TestBitString_String(t *testing.T) {
	tests := map[string]struct {
		s    BitString
		want string
	}{
		"Empty":     {BitString{}, ""},
		"FullByte":  {BitString{[]byte{0xA5}, 8}, "10100101"},
		"Partial":   {BitString{[]byte{0xFF, 0x80}, 10}, "11111111 10"},
		"ShortByte": {BitString{[]byte{0x40}, 3}, "010"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("BitString.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBitString_IsValid(t *testing.T) {
	tests := map[string]struct {
		s    BitString
		want bool
	}{
		"Empty":         {BitString{}, true},
		"Exact":         {BitString{[]byte{0x00}, 8}, true},
		"Padded":        {BitString{[]byte{0x00, 0x00}, 9}, true},
		"NotEnough":     {BitString{[]byte{0x00}, 9}, false},
		"NegativeLenth": {BitString{nil, -1}, false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.s.IsValid(); got != tt.want {
				t.Errorf("BitString.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestObjectIdentifier(t *testing.T) {
	tests := map[string]struct {
		oid       ObjectIdentifier
		wantStr   string
		wantValid bool
	}{
		"RSA":       {ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}, "1.2.840.113549.1.1.1", true},
		"Joint":     {ObjectIdentifier{2, 999, 3}, "2.999.3", true},
		"TooShort":  {ObjectIdentifier{1}, "1", false},
		"BadFirst":  {ObjectIdentifier{3, 1}, "3.1", false},
		"BadSecond": {ObjectIdentifier{1, 40}, "1.40", false},
		"MaxSecond": {ObjectIdentifier{2, math.MaxUint - 80}, "2." + strconv.FormatUint(math.MaxUint-80, 10), true},
		"Overflow":  {ObjectIdentifier{2, math.MaxUint - 79}, "2." + strconv.FormatUint(math.MaxUint-79, 10), false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.oid.String(); got != tt.wantStr {
				t.Errorf("ObjectIdentifier.String() = %q, want %q", got, tt.wantStr)
			}
			if got := tt.oid.IsValid(); got != tt.wantValid {
				t.Errorf("ObjectIdentifier.IsValid() = %v, want %v", got, tt.wantValid)
			}
		})
	}
	if !(ObjectIdentifier{1, 2, 3}).Equal(ObjectIdentifier{1, 2, 3}) {
		t.Errorf("ObjectIdentifier.Equal() = false, want true")
	}
}

func TestStrings_IsValid(t *testing.T) {
	tests := map[string]struct {
		valid interface{ IsValid() bool }
		want  bool
	}{
		"UTF8":             {UTF8String("grüße"), true},
		"UTF8Invalid":      {UTF8String("\xff"), false},
		"Numeric":          {NumericString("0123 456"), true},
		"NumericLetter":    {NumericString("12a"), false},
		"Printable":        {PrintableString("Test User (1)"), true},
		"PrintableAt":      {PrintableString("a@b"), false},
		"PrintableStar":    {PrintableString("*.example.com"), false},
		"IA5":              {IA5String("a@b.c"), true},
		"IA5NonASCII":      {IA5String("é"), false},
		"Visible":          {VisibleString("visible ~"), true},
		"VisibleControl":   {VisibleString("tab\t"), false},
		"VisibleDelete":    {VisibleString("\x7f"), false},
		"EmptyIsPrintable": {PrintableString(""), true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.valid.IsValid(); got != tt.want {
				t.Errorf("%T.IsValid() = %v, want %v", tt.valid, got, tt.want)
			}
		})
	}
}
