// Package witten implements the integer arithmetic coding algorithm described in
// Witten, Ian H.; Neal, Radford M.; Cleary, John G. (June 1987). "Arithmetic Coding for Data Compression". Communications of the ACM 30 (6): 520–540.
//
// The coding interval is kept as a lower bound and a width inside a 32-bit code space, and is
// narrowed by a static ac.Model over byte symbols.
// Whenever the width drops to a quarter of the code space the interval is doubled, emitting
// (or, when decoding, consuming) one bit per doubling.
package witten

import (
	"math/bits"

	"github.com/fumin/arith/ac"
)

const (
	half     = ac.HalfMax
	firstQtr = ac.QuarterMax
	thirdQtr = 3 * firstQtr

	// TrailerLen is the number of symbols the encoder appends after the input.
	TrailerLen = 8
)

// A rescale is one of the three ways of doubling the interval.
type rescale int

const (
	lowerHalf rescale = iota + 1 // E1: interval within [0, half)
	upperHalf                    // E2: interval within [half, 2*half)
	middle                       // E3: interval straddles half
)

// offset returns the amount subtracted from the lower bound before doubling.
func (c rescale) offset() uint64 {
	switch c {
	case upperHalf:
		return half
	case middle:
		return firstQtr
	default:
		return 0
	}
}

// interval is the half-open coding interval [lower, lower+width).
type interval struct {
	lower uint64
	width uint64
}

func newInterval() interval {
	return interval{lower: 0, width: half}
}

// scale returns floor(width*c/total) without loss of precision.
func scale(width, c, total uint64) uint64 {
	hi, lo := bits.Mul64(width, c)
	q, _ := bits.Div64(hi, lo, total)
	return q
}

// narrow restricts the interval to the cumulative range [low, high) of total.
func (iv *interval) narrow(low, high, total uint64) error {
	l := scale(iv.width, low, total)
	h := scale(iv.width, high, total)
	if h <= l {
		return ac.Formatf(ac.KindInterval, "range [%d, %d) of %d vanishes in width %d", low, high, total, iv.width)
	}
	iv.lower += l
	iv.width = h - l
	return nil
}

// renormalize doubles the interval until it is wider than a quarter of the code space.
// After every doubling it calls step with the case that applied.
func (iv *interval) renormalize(step func(rescale) error) error {
	for iv.width <= firstQtr {
		var c rescale
		switch {
		case iv.lower+iv.width <= half:
			c = lowerHalf
		case iv.lower >= half:
			c = upperHalf
		default:
			// Since width <= firstQtr, straddling half implies firstQtr < lower < half.
			c = middle
		}
		iv.lower -= c.offset()
		iv.lower *= 2
		iv.width *= 2

		if err := step(c); err != nil {
			return err
		}
	}
	return nil
}

// settle doubles the interval for as long as it lies within one half or within the middle
// half, regardless of its width. Afterwards the interval contains either firstQtr or half
// together with everything up to the next quarter boundary.
func (iv *interval) settle(step func(rescale) error) error {
	for {
		var c rescale
		switch {
		case iv.lower+iv.width <= half:
			c = lowerHalf
		case iv.lower >= half:
			c = upperHalf
		case iv.lower >= firstQtr && iv.lower+iv.width <= thirdQtr:
			c = middle
		default:
			return nil
		}
		iv.lower -= c.offset()
		iv.lower *= 2
		iv.width *= 2

		if err := step(c); err != nil {
			return err
		}
	}
}
