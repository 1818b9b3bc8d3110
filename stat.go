package arith

import (
	"io"

	"github.com/pkg/errors"
)

// Stats describes the compression of one input.
type Stats struct {
	Original   int64 // input bytes
	Compressed int64 // output bytes, header included
	Header     int64 // bytes taken by the frequency table
	Alphabet   int   // distinct input bytes
}

// BitsPerSymbol returns the compressed size, header excluded, in bits per input byte.
func (s Stats) BitsPerSymbol() float64 {
	if s.Original == 0 {
		return 0
	}
	return float64(8*(s.Compressed-s.Header)) / float64(s.Original)
}

// Stat compresses r, discarding the output, and reports the sizes involved.
func Stat(r io.ReadSeeker) (Stats, error) {
	cw := &countWriter{}
	table, err := encode(cw, r)
	if err != nil {
		return Stats{}, errors.Wrap(err, "")
	}
	return Stats{
		Original:   int64(table.Total()),
		Compressed: cw.n,
		Header:     table.Size(),
		Alphabet:   table.Len(),
	}, nil
}

type countWriter struct {
	n int64
}

func (w *countWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}
