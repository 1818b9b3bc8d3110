package witten

import (
	"math/bits"

	"github.com/fumin/arith/ac"
	"github.com/pkg/errors"
)

// A Decoder recovers symbols from a bit stream written by an Encoder with the same model.
type Decoder struct {
	src   ac.BitSource
	model ac.Model
	iv    interval

	// value holds the next WordBits bits of the stream, aligned with iv.
	value uint64

	observe func(lower, width uint64)
}

// NewDecoder reads the first WordBits bits of src and returns a Decoder positioned at the
// first symbol.
func NewDecoder(src ac.BitSource, model ac.Model) (*Decoder, error) {
	d := &Decoder{src: src, model: model, iv: newInterval()}
	for i := 0; i < ac.WordBits; i++ {
		b, err := src.ReadBit()
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		d.value = 2*d.value + uint64(b)
	}
	return d, nil
}

// Decode returns the next symbol.
// A stream that cannot have been produced by the model yields an *ac.FormatError.
func (d *Decoder) Decode() (byte, error) {
	if d.value < d.iv.lower || d.value-d.iv.lower >= d.iv.width {
		return 0, ac.Formatf(ac.KindInterval, "value %#x outside [%#x, %#x)", d.value, d.iv.lower, d.iv.lower+d.iv.width)
	}

	target := d.target()
	symbol, ok := d.model.Find(target)
	if !ok {
		return 0, ac.Formatf(ac.KindInterval, "no symbol at %d of %d", target, d.model.Total())
	}

	low, high := d.model.Range(symbol)
	if err := d.iv.narrow(low, high, d.model.Total()); err != nil {
		return 0, err
	}
	if err := d.iv.renormalize(d.step); err != nil {
		return 0, err
	}
	if d.observe != nil {
		d.observe(d.iv.lower, d.iv.width)
	}
	return symbol, nil
}

// target returns floor(((value-lower+1)*total - 1) / width), the cumulative count that value
// falls on. It lies in [low, high) of exactly the symbol whose subinterval contains value.
func (d *Decoder) target() uint64 {
	hi, lo := bits.Mul64(d.value-d.iv.lower+1, d.model.Total())
	lo, borrow := bits.Sub64(lo, 1, 0)
	hi -= borrow
	q, _ := bits.Div64(hi, lo, d.iv.width)
	return q
}

func (d *Decoder) step(c rescale) error {
	b, err := d.src.ReadBit()
	if err != nil {
		return errors.Wrap(err, "")
	}
	d.value = 2*(d.value-c.offset()) + uint64(b)
	return nil
}
