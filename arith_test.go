package arith

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/rand"
	"testing"

	"github.com/fumin/arith/ac"
	"github.com/pkg/errors"
)

func compress(t *testing.T, data []byte) []byte {
	buf := bytes.NewBuffer(nil)
	if err := Encode(buf, bytes.NewReader(data)); err != nil {
		t.Fatalf("%+v", err)
	}
	return buf.Bytes()
}

func decompress(t *testing.T, data []byte) []byte {
	buf := bytes.NewBuffer(nil)
	if err := Decode(buf, bytes.NewReader(data)); err != nil {
		t.Fatalf("%+v", err)
	}
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	random := make([]byte, 100000)
	rng.Read(random)
	skewed := make([]byte, 100000)
	for i := range skewed {
		skewed[i] = byte(rng.ExpFloat64() * 4)
	}
	every := make([]byte, 256)
	for i := range every {
		every[i] = byte(i)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"one byte", []byte{0}},
		{"single symbol", bytes.Repeat([]byte{'a'}, 1000)},
		{"skewed pair", []byte("aaaaaaaab")},
		{"every byte", every},
		{"text", []byte("the quick brown fox jumps over the lazy dog")},
		{"random", random},
		{"skewed", skewed},
	}
	for _, tc := range tests {
		got := decompress(t, compress(t, tc.data))
		if !bytes.Equal(got, tc.data) {
			t.Errorf("%s: round trip differs", tc.name)
		}
	}
}

func TestEmpty(t *testing.T) {
	enc := compress(t, nil)
	want := make([]byte, 10)
	if !bytes.Equal(enc, want) {
		t.Fatalf("%x", enc)
	}
	if got := decompress(t, enc); len(got) != 0 {
		t.Errorf("%q", got)
	}
}

func TestSingleSymbol(t *testing.T) {
	data := bytes.Repeat([]byte{'a'}, 1000)
	enc := compress(t, data)

	// Header of one symbol, then a single word.
	want := binary.BigEndian.AppendUint64(nil, 1000)
	want = binary.BigEndian.AppendUint16(want, 1)
	want = append(want, 'a')
	want = binary.BigEndian.AppendUint64(want, 1000)
	want = append(want, 0x20, 0, 0, 0)
	if !bytes.Equal(enc, want) {
		t.Fatalf("%x != %x", enc, want)
	}
	if got := decompress(t, enc); !bytes.Equal(got, data) {
		t.Errorf("%q", got)
	}
}

func TestDeterministic(t *testing.T) {
	data := []byte("abracadabra, abracadabra")
	a, b := compress(t, data), compress(t, data)
	if !bytes.Equal(a, b) {
		t.Errorf("%x != %x", a, b)
	}
}

func TestPayloadWords(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for n := 0; n < 20; n++ {
		data := make([]byte, 1+rng.Intn(3000))
		for i := range data {
			data[i] = byte(rng.Intn(1 + n*10))
		}
		st, err := Stat(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if (st.Compressed-st.Header)%4 != 0 {
			t.Errorf("%d: payload of %d bytes", n, st.Compressed-st.Header)
		}
		if st.Compressed != int64(len(compress(t, data))) {
			t.Errorf("%d: %d", n, st.Compressed)
		}
	}
}

func TestStat(t *testing.T) {
	data := []byte("aaaaaaaab")
	st, err := Stat(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if st.Original != 9 || st.Alphabet != 2 || st.Header != 10+2*9 {
		t.Errorf("%+v", st)
	}
	if bps := st.BitsPerSymbol(); bps <= 0 || bps > 8 {
		t.Errorf("%f", bps)
	}

	st, err = Stat(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if st.Compressed != 10 || st.BitsPerSymbol() != 0 {
		t.Errorf("%+v", st)
	}
}

func TestDecodeTruncatedHeader(t *testing.T) {
	enc := compress(t, []byte("hello, world"))
	err := Decode(io.Discard, bytes.NewReader(enc[:15]))
	fe, ok := ac.IsFormatError(err)
	if !ok {
		t.Fatalf("%+v", err)
	}
	if fe.Kind != ac.KindHeader {
		t.Errorf("%v", fe.Kind)
	}
}

func TestDecodeTruncatedPayload(t *testing.T) {
	enc := compress(t, []byte("hello, world"))
	err := Decode(io.Discard, bytes.NewReader(enc[:len(enc)-1]))
	if errors.Cause(err) != io.ErrUnexpectedEOF {
		t.Fatalf("%+v", err)
	}
}

func TestDecodeCorruptPayload(t *testing.T) {
	data := []byte("aaaaaaaab")
	enc := compress(t, data)
	// The header of two symbols takes 28 bytes, and the first code word must lie in [0, half).
	corrupt := append([]byte(nil), enc...)
	corrupt[28] = 0xff
	err := Decode(io.Discard, bytes.NewReader(corrupt))
	if _, ok := ac.IsFormatError(err); !ok {
		t.Fatalf("%+v", err)
	}
}

type shrinkingReader struct {
	*bytes.Reader
	seeks int
}

func (r *shrinkingReader) Seek(offset int64, whence int) (int64, error) {
	r.seeks++
	n, err := r.Reader.Seek(offset, whence)
	if err == nil {
		data := make([]byte, r.Reader.Len()/2)
		r.Reader.Read(data)
		r.Reader = bytes.NewReader(data)
	}
	return n, err
}

func TestEncodeInputShrank(t *testing.T) {
	r := &shrinkingReader{Reader: bytes.NewReader([]byte("hello, world"))}
	err := Encode(io.Discard, r)
	if errors.Cause(err) != io.ErrUnexpectedEOF {
		t.Fatalf("%+v", err)
	}
	if r.seeks != 1 {
		t.Errorf("%d", r.seeks)
	}
}
