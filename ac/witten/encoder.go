package witten

import (
	"github.com/fumin/arith/ac"
)

// An Encoder narrows the coding interval symbol by symbol and writes the resolved bits to an
// ac.BitSink.
type Encoder struct {
	dst   ac.BitSink
	model ac.Model
	iv    interval

	// fbits counts the bits whose value waits on the next resolved bit.
	fbits uint64

	// observe, when set, is called with the interval after each renormalization.
	observe func(lower, width uint64)
}

// NewEncoder returns an Encoder that codes symbols according to model.
func NewEncoder(dst ac.BitSink, model ac.Model) *Encoder {
	return &Encoder{dst: dst, model: model, iv: newInterval()}
}

// Encode codes symbol. symbol must be part of the model's alphabet.
func (e *Encoder) Encode(symbol byte) error {
	low, high := e.model.Range(symbol)
	if err := e.iv.narrow(low, high, e.model.Total()); err != nil {
		return err
	}
	if err := e.iv.renormalize(e.step); err != nil {
		return err
	}
	if e.observe != nil {
		e.observe(e.iv.lower, e.iv.width)
	}
	return nil
}

func (e *Encoder) step(c rescale) error {
	switch c {
	case lowerHalf:
		return e.bitPlusFollow(0)
	case upperHalf:
		return e.bitPlusFollow(1)
	default:
		e.fbits++
		return nil
	}
}

func (e *Encoder) bitPlusFollow(bit uint) error {
	if err := e.dst.WriteBit(bit); err != nil {
		return err
	}
	negbit := 1 - bit
	for ; e.fbits > 0; e.fbits-- {
		if err := e.dst.WriteBit(negbit); err != nil {
			return err
		}
	}
	return nil
}

// Close terminates the code stream and flushes the sink.
// It appends TrailerLen copies of the model's first symbol, then writes the fewest bits that
// place the zero-padded stream inside the final interval.
// Close on an empty model only flushes.
func (e *Encoder) Close() error {
	if e.model.Total() > 0 {
		pad, _ := e.model.Find(0)
		for i := 0; i < TrailerLen; i++ {
			if err := e.Encode(pad); err != nil {
				return err
			}
		}

		if err := e.iv.settle(e.step); err != nil {
			return err
		}
		e.fbits++
		if e.iv.lower < firstQtr {
			if err := e.bitPlusFollow(0); err != nil {
				return err
			}
		} else {
			if err := e.bitPlusFollow(1); err != nil {
				return err
			}
		}
	}
	return e.dst.Flush()
}
