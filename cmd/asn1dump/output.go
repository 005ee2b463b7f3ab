// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// cborMode encodes the tree using Core Deterministic Encoding so that the same
// input always produces identical bytes.
var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("asn1dump: CBOR encoder initialization failed: " + err.Error())
	}
}

// readInput reads all of r and decodes it according to format. Whitespace is
// ignored in the hex and base64 formats.
func readInput(r io.Reader, format string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch format {
	case "hex":
		return hex.DecodeString(stripSpace(data))
	case "base64":
		return base64.StdEncoding.DecodeString(stripSpace(data))
	}
	return data, nil
}

// stripSpace returns b without any whitespace.
func stripSpace(b []byte) string {
	return strings.Join(strings.Fields(string(b)), "")
}

// writeBytes writes b to w using the given input format.
func writeBytes(w io.Writer, b []byte, format string) error {
	var err error
	switch format {
	case "hex":
		_, err = fmt.Fprintln(w, hex.EncodeToString(b))
	case "base64":
		_, err = fmt.Fprintln(w, base64.StdEncoding.EncodeToString(b))
	default:
		_, err = w.Write(b)
	}
	return err
}

// writeNodes writes the tree to w in the given output format.
func writeNodes(w io.Writer, nodes []*Node, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nodes); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)
	case "cbor":
		b, err := cborMode.Marshal(nodes)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	var buf bytes.Buffer
	for _, n := range nodes {
		writeText(&buf, n, 0)
	}
	_, err := buf.WriteTo(w)
	return err
}

// writeText appends a line for n and its children to buf. Each line starts
// with the offset of the element followed by the header and the value.
func writeText(buf *bytes.Buffer, n *Node, depth int) {
	fmt.Fprintf(buf, "%5d:%s%s", n.Offset, strings.Repeat("  ", depth+1), n.Tag)
	if n.Type != "" {
		fmt.Fprintf(buf, " %s", n.Type)
	}
	if n.Indefinite {
		buf.WriteString(" (indefinite)")
	}
	switch {
	case n.Constructed && n.Value == "":
		fmt.Fprintf(buf, " {%d bytes}\n", n.Length)
	case n.Value != "":
		fmt.Fprintf(buf, " %s\n", n.Value)
	default:
		buf.WriteByte('\n')
	}
	for _, c := range n.Children {
		writeText(buf, c, depth+1)
	}
}
