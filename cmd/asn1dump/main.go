// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// asn1dump decodes BER or DER input and prints the element tree. Universal
// types known to the ber package are decoded into readable values, all other
// primitive elements are shown as hex.
//
// Usage:
//
//	asn1dump [flags] [file]
//
// Without a file the input is read from stdin. With --reencode the tree is not
// printed. Instead every top-level element is written again, either in
// canonical DER or as the exact input encoding, using the input format.
package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"codello.dev/asn1/v2/ber"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if err := run(log, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if err != pflag.ErrHelp {
			log.WithError(err).Error("asn1dump failed")
		}
		os.Exit(1)
	}
}

// options holds the command line configuration.
type options struct {
	mode     string
	input    string
	output   string
	reencode string
	verbose  bool
}

// addFlags registers the flags of o in fs.
func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.mode, "mode", "m", "ber", "encoding rules of the input: ber or der")
	fs.StringVarP(&o.input, "input", "i", "raw", "input format: raw, hex or base64")
	fs.StringVarP(&o.output, "output", "o", "text", "output format: text, yaml, json or cbor")
	fs.StringVar(&o.reencode, "reencode", "none", "write the input again instead of the tree: none, der or raw")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log every decoded element")
}

// validate reports the first invalid option value.
func (o *options) validate() error {
	checks := []struct {
		flag, value string
		allowed     []string
	}{
		{"mode", o.mode, []string{"ber", "der"}},
		{"input", o.input, []string{"raw", "hex", "base64"}},
		{"output", o.output, []string{"text", "yaml", "json", "cbor"}},
		{"reencode", o.reencode, []string{"none", "der", "raw"}},
	}
	for _, c := range checks {
		if !slices.Contains(c.allowed, c.value) {
			return fmt.Errorf("invalid --%s %q, want one of %v", c.flag, c.value, c.allowed)
		}
	}
	return nil
}

func run(log *logrus.Logger, args []string, stdin io.Reader, stdout io.Writer) error {
	var opts options
	fs := pflag.NewFlagSet("asn1dump", pflag.ContinueOnError)
	fs.SetOutput(log.Out)
	opts.addFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(1))
	}

	src := stdin
	if fs.NArg() == 1 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}
	data, err := readInput(src, opts.input)
	if err != nil {
		return err
	}
	logger := log.WithField("mode", opts.mode)
	logger.WithField("bytes", len(data)).Debug("read input")

	if opts.reencode != "none" {
		var b []byte
		if opts.mode == "der" {
			b, err = reencode[ber.DER](data, opts.reencode == "raw")
		} else {
			b, err = reencode[ber.BER](data, opts.reencode == "raw")
		}
		if err != nil {
			return err
		}
		return writeBytes(stdout, b, opts.input)
	}

	var nodes []*Node
	if opts.mode == "der" {
		nodes, err = dump[ber.DER](data, logger)
	} else {
		nodes, err = dump[ber.BER](data, logger)
	}
	if err != nil {
		return err
	}
	return writeNodes(stdout, nodes, opts.output)
}
