package ac

import (
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestIsFormatError(t *testing.T) {
	err := errors.Wrap(errors.Wrap(Formatf(KindCount, "sum %d != %d", 3, 4), "read table"), "")
	fe, ok := IsFormatError(err)
	if !ok {
		t.Fatalf("%+v", err)
	}
	if fe.Kind != KindCount {
		t.Errorf("%v", fe.Kind)
	}
	if fe.Message != "sum 3 != 4" {
		t.Errorf("%q", fe.Message)
	}
	if !strings.Contains(err.Error(), "format error: Count: sum 3 != 4") {
		t.Errorf("%q", err.Error())
	}

	if _, ok := IsFormatError(errors.Wrap(io.ErrUnexpectedEOF, "")); ok {
		t.Errorf("io error reported as format error")
	}
	if _, ok := IsFormatError(nil); ok {
		t.Errorf("nil reported as format error")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindHeader, "Header"},
		{KindAlphabet, "Alphabet"},
		{KindCount, "Count"},
		{KindSize, "Size"},
		{KindInterval, "Interval"},
		{Kind(42), "Kind(42)"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("%d: %q != %q", int(tc.kind), got, tc.want)
		}
	}
}
