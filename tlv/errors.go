package tlv

import (
	"errors"
	"io"
	"strconv"
)

var (
	errUnexpectedEOC = errors.New("unexpected end of contents")
	errInvalidEOC    = errors.New("invalid end of contents")
	errTruncated     = errors.New("truncated data value")
	errTooDeep       = errors.New("indefinite-length nesting too deep")
)

// ErrIncomplete is matched by errors that indicate that the input ended before
// an element was complete. More data may make the input parseable. Use
// [errors.Is] to test for this condition.
var ErrIncomplete = errors.New("incomplete data")

// IncompleteError is returned when the input ends before a complete header or
// element could be parsed. Needed is a lower bound of the number of additional
// bytes required to make progress. It is always positive.
type IncompleteError struct {
	Needed int
}

// Is reports whether target is [ErrIncomplete].
func (e *IncompleteError) Is(target error) bool { return target == ErrIncomplete }

func (e *IncompleteError) Error() string {
	return "tlv: incomplete data, need " + strconv.Itoa(e.Needed) + " more bytes"
}

// SyntaxError represents an error in the TLV encoding. The error value contains
// the location of the error within the input as well as the [Header] of the
// surrounding data value.
type SyntaxError struct {
	requireKeyedLiterals
	nonComparable

	Err error // underlying error

	// ByteOffset is the location of the error. The location is usually the start of
	// the TLV header containing the error.
	ByteOffset int64

	// Header is the TLV header of the constructed TLV whose value contained the
	// malformed data.
	Header Header
}

func (e *SyntaxError) Unwrap() error { return e.Err }
func (e *SyntaxError) Error() string {
	b := []byte("tlv: syntax error")
	if e.Header != EndOfContents {
		b = append(b, " within "...)
		b = append(b, e.Header.String()...)
	}
	if e.ByteOffset > 0 {
		//goland:noinspection GoDirectComparisonOfErrors
		if e.Err == io.ErrUnexpectedEOF {
			b = strconv.AppendInt(append(b, " at offset "...), e.ByteOffset, 10)
		} else {
			b = strconv.AppendInt(append(b, " for TLV beginning at offset "...), e.ByteOffset, 10)
		}
	}
	if e.Err != nil {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	return string(b)
}

// atOffset moves the location of a *SyntaxError by off bytes and records the
// header of the surrounding element if none is set. Other errors are returned
// unchanged.
func atOffset(err error, off int, parent Header) error {
	var sErr *SyntaxError
	if errors.As(err, &sErr) {
		sErr.ByteOffset += int64(off)
		if sErr.Header == EndOfContents {
			sErr.Header = parent
		}
	}
	return err
}
