// Package ac defines the interfaces the arithmetic coding algorithm requires.
// See its subpackages for particular finite precision realizations of the algorithm.
package ac

const (
	// WordBits is the width of the code space, and also the width of the words the
	// coded bit stream is packed into.
	WordBits = 32

	// HalfMax and QuarterMax split the code space [0, 2^WordBits) into halves and quarters.
	HalfMax    uint64 = 1 << (WordBits - 1)
	QuarterMax uint64 = 1 << (WordBits - 2)

	// MaxTotal is the largest number of symbols a Model may count.
	// After renormalization an interval is wider than QuarterMax, so a symbol of count one
	// keeps a non-empty subinterval only while the total does not exceed it.
	MaxTotal = QuarterMax
)

// A Model is a static cumulative distribution over byte symbols.
// Each symbol in the alphabet owns the half-open range [low, high) of [0, Total()),
// and the ranges of all symbols partition it.
type Model interface {
	// Total returns the sum of the counts of all symbols.
	Total() uint64

	// Range returns the cumulative range of symbol.
	// It panics if symbol is not part of the alphabet.
	Range(symbol byte) (low, high uint64)

	// Find returns the symbol whose range contains target.
	// ok is false when target is not below Total().
	Find(target uint64) (symbol byte, ok bool)
}

// A BitSink receives the bits produced by an encoder.
type BitSink interface {
	WriteBit(bit uint) error

	// Flush writes out any bits still buffered, padding with zeros.
	Flush() error
}

// A BitSource supplies the bits consumed by a decoder.
// Past the end of the stream a BitSource returns zero bits, not an error.
type BitSource interface {
	ReadBit() (uint, error)
}
