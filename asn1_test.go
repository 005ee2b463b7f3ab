// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import (
	"fmt"
	"testing"
)

func ExampleTag_String() {
	t1 := Tag{ClassApplication, 17}
	t2 := ContextSpecific(8)
	t3 := Universal(TagInteger)
	fmt.Println(t1.String())
	fmt.Println(t2.String())
	fmt.Println(t3.String())
	// Output:
	// [APPLICATION 17]
	// [8]
	// [UNIVERSAL 2]
}

func ExampleTagOf() {
	fmt.Println(TagOf[PrintableString]())
	// Output: [UNIVERSAL 19]
}

func TestClass_String(t *testing.T) {
	tests := map[Class]string{
		ClassUniversal:       "Universal",
		ClassApplication:     "Application",
		ClassContextSpecific: "ContextSpecific",
		ClassPrivate:         "Private",
		Class(7):             "Class(7)",
	}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Errorf("Class(%d).String() = %q, want %q", uint8(c), got, want)
		}
	}
}

// appTagged has a fixed tag but does not implement DynTagged itself.
type appTagged struct{ N int }

func (appTagged) FixedTag() Tag { return Tag{ClassApplication, 3} }

// dynTagged chooses its tag per value.
type dynTagged struct{ t Tag }

func (d dynTagged) Tag() Tag { return d.t }

func TestDynTagOf(t *testing.T) {
	tests := map[string]struct {
		v      any
		want   Tag
		wantOK bool
	}{
		"Fixed":        {appTagged{1}, Tag{ClassApplication, 3}, true},
		"FixedPointer": {&appTagged{2}, Tag{ClassApplication, 3}, true},
		"Dynamic":      {dynTagged{ContextSpecific(4)}, ContextSpecific(4), true},
		"Both":         {UTF8String("x"), Universal(TagUTF8String), true},
		"BothPointer":  {new(IA5String), Universal(TagIA5String), true},
		"Untagged":     {42, Tag{}, false},
		"Nil":          {nil, Tag{}, false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := DynTagOf(tt.v)
			if ok != tt.wantOK {
				t.Fatalf("DynTagOf() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("DynTagOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagOf_MatchesRuntimeTag(t *testing.T) {
	checkTag(t, TagOf[UTF8String](), UTF8String("äöü"))
	checkTag(t, TagOf[NumericString](), NumericString("12 34"))
	checkTag(t, TagOf[PrintableString](), PrintableString("Hello"))
	checkTag(t, TagOf[IA5String](), IA5String("a@b"))
	checkTag(t, TagOf[VisibleString](), VisibleString(""))
	checkTag(t, TagOf[BitString](), BitString{[]byte{0x80}, 1})
	checkTag(t, TagOf[ObjectIdentifier](), ObjectIdentifier{1, 2, 840})
}

func checkTag(t *testing.T, want Tag, v DynTagged) {
	t.Helper()
	if got := v.Tag(); got != want {
		t.Errorf("%T.Tag() = %v, want %v", v, got, want)
	}
}
