// Package freq builds, serializes and parses the static symbol frequency table that drives the
// arithmetic coder.
//
// The serialized table is laid out as
//
//	total     uint64
//	alphabet  uint16
//	alphabet × (symbol byte, count uint64)
//
// with all integers big-endian. Only counts are stored, and cumulative ranges are recomputed by
// accumulating the counts in the order they appear.
package freq

import (
	"bufio"
	"io"
	"sort"

	"github.com/fumin/arith/ac"
	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

const (
	alphabetMax = 256

	// headerFixed is the size of the total and alphabet fields, and pairSize of one symbol entry.
	headerFixed = 8 + 2
	pairSize    = 1 + 8
)

// A Count is the number of occurrences of a symbol.
type Count struct {
	Symbol byte
	N      uint64
}

// An Entry is a symbol together with its cumulative range [Low, High).
type Entry struct {
	Symbol byte
	Low    uint64
	High   uint64
}

// A Table is a cumulative distribution over the symbols of an input.
// Table implements ac.Model.
type Table struct {
	entries []Entry
	pos     [alphabetMax]int // index into entries plus one, zero for absent symbols
	total   uint64
}

// Build counts the bytes of r and returns their table.
// Symbols are ordered by descending count, with ties kept in order of first occurrence.
func Build(r io.Reader) (*Table, error) {
	var counts [alphabetMax]uint64
	seen := make([]byte, 0, alphabetMax)

	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		if counts[b] == 0 {
			seen = append(seen, b)
		}
		counts[b]++
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return counts[seen[i]] > counts[seen[j]]
	})
	pairs := make([]Count, 0, len(seen))
	for _, s := range seen {
		pairs = append(pairs, Count{Symbol: s, N: counts[s]})
	}
	return FromCounts(pairs)
}

// FromCounts returns the table that assigns cumulative ranges to pairs in the given order.
func FromCounts(pairs []Count) (*Table, error) {
	if len(pairs) > alphabetMax {
		return nil, ac.Formatf(ac.KindAlphabet, "%d symbols", len(pairs))
	}

	t := &Table{entries: make([]Entry, 0, len(pairs))}
	for _, p := range pairs {
		if t.pos[p.Symbol] != 0 {
			return nil, ac.Formatf(ac.KindAlphabet, "symbol %#02x repeated", p.Symbol)
		}
		if p.N == 0 {
			return nil, ac.Formatf(ac.KindCount, "symbol %#02x has zero count", p.Symbol)
		}
		if p.N > ac.MaxTotal-t.total {
			return nil, ac.Formatf(ac.KindSize, "more than %d symbols", ac.MaxTotal)
		}

		t.entries = append(t.entries, Entry{Symbol: p.Symbol, Low: t.total, High: t.total + p.N})
		t.pos[p.Symbol] = len(t.entries)
		t.total += p.N
	}
	return t, nil
}

// Total returns the number of symbols counted.
func (t *Table) Total() uint64 {
	return t.total
}

// Len returns the size of the alphabet.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the symbols and their ranges in table order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// Range returns the cumulative range of symbol.
func (t *Table) Range(symbol byte) (low, high uint64) {
	i := t.pos[symbol]
	if i == 0 {
		panic("symbol not in table")
	}
	e := t.entries[i-1]
	return e.Low, e.High
}

// Find returns the symbol whose range contains target.
func (t *Table) Find(target uint64) (byte, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].High > target
	})
	if i == len(t.entries) {
		return 0, false
	}
	return t.entries[i].Symbol, true
}

// Size returns the number of bytes WriteTo writes.
func (t *Table) Size() int64 {
	return headerFixed + pairSize*int64(len(t.entries))
}

// WriteTo writes the serialized table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bitio.NewWriter(w)
	if err := bw.WriteBits(t.total, 64); err != nil {
		return 0, errors.Wrap(err, "write table")
	}
	if err := bw.WriteBits(uint64(len(t.entries)), 16); err != nil {
		return 0, errors.Wrap(err, "write table")
	}
	for _, e := range t.entries {
		if err := bw.WriteByte(e.Symbol); err != nil {
			return 0, errors.Wrap(err, "write table")
		}
		if err := bw.WriteBits(e.High-e.Low, 64); err != nil {
			return 0, errors.Wrap(err, "write table")
		}
	}
	if err := bw.Close(); err != nil {
		return 0, errors.Wrap(err, "write table")
	}
	return t.Size(), nil
}

// ReadTable parses a table written by WriteTo.
// When the coded stream follows the table in r, r should implement io.ByteReader so that no
// bytes past the table are consumed.
func ReadTable(r io.Reader) (*Table, error) {
	br := bitio.NewReader(r)

	total, err := br.ReadBits(64)
	if err != nil {
		return nil, headerErr(err, "total")
	}
	n, err := br.ReadBits(16)
	if err != nil {
		return nil, headerErr(err, "alphabet")
	}
	if n > alphabetMax {
		return nil, ac.Formatf(ac.KindAlphabet, "alphabet of %d symbols", n)
	}
	if total > ac.MaxTotal {
		return nil, ac.Formatf(ac.KindSize, "total %d exceeds %d", total, ac.MaxTotal)
	}
	if total > 0 && n == 0 {
		return nil, ac.Formatf(ac.KindAlphabet, "empty alphabet for %d symbols", total)
	}

	pairs := make([]Count, 0, n)
	for i := uint64(0); i < n; i++ {
		symbol, err := br.ReadByte()
		if err != nil {
			return nil, headerErr(err, "symbol")
		}
		count, err := br.ReadBits(64)
		if err != nil {
			return nil, headerErr(err, "count")
		}
		pairs = append(pairs, Count{Symbol: symbol, N: count})
	}

	t, err := FromCounts(pairs)
	if err != nil {
		return nil, err
	}
	if t.total != total {
		return nil, ac.Formatf(ac.KindCount, "counts sum to %d, header declares %d", t.total, total)
	}
	return t, nil
}

func headerErr(err error, field string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ac.Formatf(ac.KindHeader, "truncated at %s", field)
	}
	return errors.Wrapf(err, "read %s", field)
}
