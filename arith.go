// Package arith provides a lossless compression/decompression utility built on integer
// arithmetic coding with a static, per-input symbol frequency table.
//
// Below is an example of using this package to compress Lincoln's Gettysburg address:
//
//	go run compress/main.go testdata/gettysburg.txt > gettys.ac
//	cat gettys.ac | go run decompress/main.go > gettys.dac
//	diff testdata/gettysburg.txt gettys.dac
//
// A compressed stream is the frequency table written by package freq, followed by the code
// stream of package ac/witten packed into 32-bit big-endian words by package bitpack.
package arith

import (
	"bufio"
	"io"
	"os"

	"github.com/fumin/arith/ac/witten"
	"github.com/fumin/arith/bitpack"
	"github.com/fumin/arith/freq"
	"github.com/pkg/errors"
)

// Encode compresses the contents of r to w.
// r is read twice: once to count symbols, and again from the start to code them.
func Encode(w io.Writer, r io.ReadSeeker) error {
	_, err := encode(w, r)
	return err
}

func encode(w io.Writer, r io.ReadSeeker) (*freq.Table, error) {
	table, err := freq.Build(r)
	if err != nil {
		return nil, errors.Wrap(err, "count symbols")
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "")
	}

	bw := bufio.NewWriter(w)
	if _, err := table.WriteTo(bw); err != nil {
		return nil, errors.Wrap(err, "")
	}

	enc := witten.NewEncoder(bitpack.NewWriter(bw), table)
	br := bufio.NewReader(r)
	for i := uint64(0); i < table.Total(); i++ {
		b, err := br.ReadByte()
		if err == io.EOF {
			return nil, errors.Wrapf(io.ErrUnexpectedEOF, "input shrank to %d bytes", i)
		}
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		if err := enc.Encode(b); err != nil {
			return nil, errors.Wrapf(err, "symbol %d", i)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "")
	}

	if err := bw.Flush(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return table, nil
}

// Decode decompresses a stream written by Encode from r to w.
// A stream that is inconsistent with its own header yields an *ac.FormatError, in which case
// w may already hold part of the output.
func Decode(w io.Writer, r io.Reader) error {
	br := bufio.NewReader(r)
	table, err := freq.ReadTable(br)
	if err != nil {
		return errors.Wrap(err, "read header")
	}

	bw := bufio.NewWriter(w)
	if table.Total() > 0 {
		dec, err := witten.NewDecoder(bitpack.NewReader(br), table)
		if err != nil {
			return errors.Wrap(err, "")
		}
		for i := uint64(0); i < table.Total(); i++ {
			b, err := dec.Decode()
			if err != nil {
				return errors.Wrapf(err, "symbol %d", i)
			}
			if err := bw.WriteByte(b); err != nil {
				return errors.Wrap(err, "")
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// Compress compresses the file name to w.
func Compress(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer f.Close()

	if err := Encode(w, f); err != nil {
		return errors.Wrap(err, name)
	}
	return nil
}

// Decompress decompresses the file name to w.
func Decompress(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer f.Close()

	if err := Decode(w, f); err != nil {
		return errors.Wrap(err, name)
	}
	return nil
}
