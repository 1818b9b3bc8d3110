// Package bitpack packs a sequence of bits into 32-bit words and back.
// Bits fill a word from its most significant bit down, and words are transferred big-endian,
// so the byte stream carries the bits in the order they were written.
package bitpack

import (
	"io"

	"github.com/fumin/arith/ac"
	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

const (
	wordBits = ac.WordBits
	msb      = wordBits - 1
)

// next returns the bit index following i, wrapping from 0 back to msb.
func next(i uint) uint {
	if i == 0 {
		return msb
	}
	return i - 1
}

// A Writer accumulates bits and writes them out a word at a time.
type Writer struct {
	out   *bitio.Writer
	word  uint32
	index uint
	words int64
}

// NewWriter returns a Writer that writes words to w.
// If w implements io.ByteWriter, words are written straight through, otherwise they are
// buffered until Flush.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bitio.NewWriter(w), index: msb}
}

// WriteBit sets the next bit of the current word if bit is non-zero.
// The word is written out once its least significant bit is reached.
func (w *Writer) WriteBit(bit uint) error {
	if bit != 0 {
		w.word |= 1 << w.index
	}
	if w.index == 0 {
		if err := w.emit(); err != nil {
			return err
		}
	}
	w.index = next(w.index)
	return nil
}

func (w *Writer) emit() error {
	if err := w.out.WriteBits(uint64(w.word), wordBits); err != nil {
		return errors.Wrap(err, "write word")
	}
	w.word = 0
	w.words++
	return nil
}

// Flush writes out a partially filled word, padded with zero bits, and any buffered data.
func (w *Writer) Flush() error {
	if w.index < msb {
		if err := w.emit(); err != nil {
			return err
		}
		w.index = msb
	}
	if err := w.out.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// Words returns the number of words written so far.
func (w *Writer) Words() int64 {
	return w.words
}

// A Reader extracts bits from a stream of words.
// Once the stream is exhausted every further bit reads as zero.
type Reader struct {
	in    *bitio.Reader
	word  uint32
	index uint
	eof   bool
}

// NewReader returns a Reader of the words in r.
// r should implement io.ByteReader when it is shared with other readers, since otherwise it is
// wrapped in a buffer that may read ahead.
func NewReader(r io.Reader) *Reader {
	return &Reader{in: bitio.NewReader(r), index: msb}
}

// ReadBit returns the next bit, reading a new word when the current one is used up.
// A stream that ends on a word boundary yields zero bits. A stream that ends inside a word
// returns io.ErrUnexpectedEOF.
func (r *Reader) ReadBit() (uint, error) {
	if r.index == msb {
		if r.eof {
			return 0, nil
		}
		word, err := r.readWord()
		if err == io.EOF {
			r.eof = true
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		r.word = word
	}

	bit := uint(r.word>>r.index) & 1
	r.index = next(r.index)
	return bit, nil
}

func (r *Reader) readWord() (uint32, error) {
	first, err := r.in.ReadByte()
	if err == io.EOF {
		return 0, io.EOF
	}
	if err != nil {
		return 0, errors.Wrap(err, "read word")
	}
	rest, err := r.in.ReadBits(wordBits - 8)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return 0, errors.Wrap(err, "read word")
	}
	return uint32(first)<<(wordBits-8) | uint32(rest), nil
}
