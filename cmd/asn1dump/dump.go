// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"codello.dev/asn1/v2"
	"codello.dev/asn1/v2/ber"
	"codello.dev/asn1/v2/tlv"
)

// Node is a decoded element in the output tree.
type Node struct {
	Offset      int     `json:"offset" yaml:"offset"`
	HeaderLen   int     `json:"headerLen" yaml:"headerLen"`
	Tag         string  `json:"tag" yaml:"tag"`
	Constructed bool    `json:"constructed,omitempty" yaml:"constructed,omitempty"`
	Indefinite  bool    `json:"indefinite,omitempty" yaml:"indefinite,omitempty"`
	Length      int     `json:"length" yaml:"length"`
	Type        string  `json:"type,omitempty" yaml:"type,omitempty"`
	Value       string  `json:"value,omitempty" yaml:"value,omitempty"`
	Children    []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// typeNames maps universal tag numbers to the names of their types.
var typeNames = map[uint32]string{
	asn1.TagBoolean:         "BOOLEAN",
	asn1.TagInteger:         "INTEGER",
	asn1.TagBitString:       "BIT STRING",
	asn1.TagOctetString:     "OCTET STRING",
	asn1.TagNull:            "NULL",
	asn1.TagOID:             "OBJECT IDENTIFIER",
	asn1.TagEnumerated:      "ENUMERATED",
	asn1.TagUTF8String:      "UTF8String",
	asn1.TagSequence:        "SEQUENCE",
	asn1.TagSet:             "SET",
	asn1.TagNumericString:   "NumericString",
	asn1.TagPrintableString: "PrintableString",
	asn1.TagIA5String:       "IA5String",
	asn1.TagUTCTime:         "UTCTime",
	asn1.TagGeneralizedTime: "GeneralizedTime",
	asn1.TagVisibleString:   "VisibleString",
}

// dump decodes all elements in data using the encoding rules M.
func dump[M ber.Mode](data []byte, log logrus.FieldLogger) ([]*Node, error) {
	var nodes []*Node
	for off := 0; off < len(data); {
		n, size, err := decodeNode[M](data[off:], off, 0, log)
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, n)
		off += size
	}
	return nodes, nil
}

// decodeNode decodes the element at the beginning of b, which starts at off in
// the input. It returns the node and the number of bytes it occupies.
func decodeNode[M ber.Mode](b []byte, off, depth int, log logrus.FieldLogger) (*Node, int, error) {
	if depth > tlv.MaxDepth {
		return nil, 0, fmt.Errorf("offset %d: nesting too deep", off)
	}
	rest, a, err := ber.Parse[M, ber.Any](b)
	if ber.IsIncomplete(err) {
		return nil, 0, fmt.Errorf("offset %d: truncated element: %w", off, err)
	} else if err != nil {
		return nil, 0, fmt.Errorf("offset %d: %w", off, err)
	}
	size := len(b) - len(rest)
	n := &Node{
		Offset:      off,
		Tag:         a.Tag().String(),
		Constructed: a.Header.Constructed,
		Indefinite:  a.Header.Length == tlv.LengthIndefinite,
		Length:      len(a.Content),
	}
	n.HeaderLen = size - n.Length
	if n.Indefinite {
		n.HeaderLen -= tlv.EndOfContents.Size()
	}
	if a.Tag().Class == asn1.ClassUniversal {
		n.Type = typeNames[a.Tag().Number]
	}
	log.WithFields(logrus.Fields{"offset": off, "tag": n.Tag}).Debug("decoded element")

	if n.Value, err = value[M](a); err != nil {
		return nil, 0, fmt.Errorf("offset %d: %w", off, err)
	}
	if !a.Header.Constructed || isString(a.Tag()) {
		return n, size, nil
	}
	coff := off + n.HeaderLen
	for c := a.Content; len(c) > 0; {
		child, csize, err := decodeNode[M](c, coff, depth+1, log)
		if err != nil {
			return nil, 0, err
		}
		n.Children = append(n.Children, child)
		c = c[csize:]
		coff += csize
	}
	return n, size, nil
}

// isString reports whether tag identifies a string type whose constructed
// encoding is shown as a single value.
func isString(tag asn1.Tag) bool {
	if tag.Class != asn1.ClassUniversal {
		return false
	}
	switch tag.Number {
	case asn1.TagBitString, asn1.TagOctetString, asn1.TagUTF8String, asn1.TagNumericString,
		asn1.TagPrintableString, asn1.TagIA5String, asn1.TagVisibleString:
		return true
	}
	return false
}

// value returns the readable value of a. Universal types known to the ber
// package are converted according to the encoding rules M.
func value[M ber.Mode](a ber.Any) (string, error) {
	if a.Tag().Class == asn1.ClassUniversal {
		switch a.Tag().Number {
		case asn1.TagBoolean:
			return convert[M](a, func(v ber.Boolean) string { return strconv.FormatBool(bool(v)) })
		case asn1.TagInteger:
			return convert[M](a, ber.Integer.String)
		case asn1.TagBitString:
			return convert[M](a, ber.BitString.String)
		case asn1.TagOctetString:
			return convert[M](a, func(v ber.OctetString) string { return hex.EncodeToString(v) })
		case asn1.TagNull:
			return convert[M](a, func(ber.Null) string { return "" })
		case asn1.TagOID:
			return convert[M](a, ber.ObjectIdentifier.String)
		case asn1.TagUTF8String:
			return convert[M](a, stringValue[asn1.UTF8String])
		case asn1.TagNumericString:
			return convert[M](a, stringValue[asn1.NumericString])
		case asn1.TagPrintableString:
			return convert[M](a, stringValue[asn1.PrintableString])
		case asn1.TagIA5String:
			return convert[M](a, stringValue[asn1.IA5String])
		case asn1.TagVisibleString:
			return convert[M](a, stringValue[asn1.VisibleString])
		}
	}
	if a.Header.Constructed {
		return "", nil
	}
	return hex.EncodeToString(a.Content), nil
}

// convert decodes a into a value of type T and formats it.
func convert[M ber.Mode, T any, PT ber.DerDecodable[T]](a ber.Any, format func(T) string) (string, error) {
	v, err := ber.FromAny[M, T, PT](a)
	if err != nil {
		return "", err
	}
	return format(v), nil
}

func stringValue[S ber.StringType](s ber.String[S]) string {
	return string(s.Value)
}

// reencode writes all elements of data again. If raw is set the input
// encodings are reproduced, otherwise the canonical DER encodings are written.
func reencode[M ber.Mode](data []byte, raw bool) ([]byte, error) {
	var buf bytes.Buffer
	for b := data; len(b) > 0; {
		rest, a, err := ber.Parse[M, ber.Any](b)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", len(data)-len(b), err)
		}
		if raw {
			_, err = ber.WriteDerRaw(&buf, a)
		} else {
			_, err = ber.WriteDer(&buf, a)
		}
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", len(data)-len(b), err)
		}
		b = rest
	}
	return buf.Bytes(), nil
}
