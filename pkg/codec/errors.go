package codec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTruncated is matched (via errors.Is) by every error reporting that a
// source ran out of bytes before a value could be decoded.
var ErrTruncated = errors.New("truncated input")

// TruncatedError describes a decode that could not obtain enough bytes.
type TruncatedError struct {
	Field string // record field being decoded, empty for a bare primitive
	Need  int    // bytes required
	Have  int    // bytes actually available
	Err   error  // io.EOF or io.ErrUnexpectedEOF from the source, if any
}

func (e *TruncatedError) Error() string {
	var b strings.Builder
	b.WriteString("codec: ")
	b.WriteString(ErrTruncated.Error())
	if e.Field != "" {
		b.WriteString(" reading ")
		b.WriteString(e.Field)
	}
	fmt.Fprintf(&b, ": need %d bytes, have %d", e.Need, e.Have)
	return b.String()
}

// Is reports ErrTruncated as a match.
func (e *TruncatedError) Is(target error) bool {
	return target == ErrTruncated
}

func (e *TruncatedError) Unwrap() error {
	return e.Err
}

func truncated(need, have int, cause error) *TruncatedError {
	return &TruncatedError{Need: need, Have: have, Err: cause}
}
