package ac

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind categorizes a FormatError.
type Kind int

const (
	KindHeader   Kind = 1 // header truncated
	KindAlphabet Kind = 2 // alphabet count out of range, repeated or missing symbols
	KindCount    Kind = 3 // symbol counts inconsistent with the declared total
	KindSize     Kind = 4 // total exceeds MaxTotal
	KindInterval Kind = 5 // coded value left the coding interval
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "Header"
	case KindAlphabet:
		return "Alphabet"
	case KindCount:
		return "Count"
	case KindSize:
		return "Size"
	case KindInterval:
		return "Interval"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A FormatError reports a compressed stream that is inconsistent with itself.
// Decoding cannot continue after a FormatError.
type FormatError struct {
	Kind    Kind
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error: %s: %s", e.Kind, e.Message)
}

// Formatf returns a FormatError of the given kind, annotated with a stack trace.
func Formatf(kind Kind, format string, args ...interface{}) error {
	return errors.WithStack(&FormatError{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// IsFormatError reports whether err, or any error it wraps, is a FormatError, and returns it.
func IsFormatError(err error) (*FormatError, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
