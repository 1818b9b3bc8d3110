package arith

import (
	"bytes"
	"testing"
)

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte("aaaaaaaab"))
	f.Add([]byte("Four score and seven years ago"))
	f.Add([]byte{0, 255, 0, 255, 1})

	f.Fuzz(func(t *testing.T, data []byte) {
		enc := bytes.NewBuffer(nil)
		if err := Encode(enc, bytes.NewReader(data)); err != nil {
			t.Fatalf("%+v", err)
		}
		dec := bytes.NewBuffer(nil)
		if err := Decode(dec, bytes.NewReader(enc.Bytes())); err != nil {
			t.Fatalf("%+v", err)
		}
		if !bytes.Equal(dec.Bytes(), data) {
			t.Fatalf("%q != %q", dec.Bytes(), data)
		}
	})
}

// FuzzDecode checks that arbitrary input never panics the decoder.
func FuzzDecode(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 0, 0, 0, 0, 0, 0, 9, 0, 2, 'a', 0, 0, 0, 0, 0, 0, 0, 8, 'b', 0, 0, 0, 0, 0, 0, 0, 1, 0x40, 0, 0, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		Decode(bytes.NewBuffer(nil), bytes.NewReader(data))
	})
}
