package failure

import (
	"fmt"
	"strconv"
)

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors shared by the codec and the batch engine.
// These can be compared with errors.Is() through any amount of wrapping.
var (
	// ErrEmptyInput indicates decode was called on a zero-length string.
	// The empty string is never an encoding of zero.
	ErrEmptyInput = constError("empty string cannot be decoded")

	// ErrInvalidCharacter indicates a symbol outside the Base62 alphabet.
	// Returned wrapped in an *InvalidCharacterError carrying the symbol and position.
	ErrInvalidCharacter = constError("invalid character in base62 string")

	// ErrNumericOverflow indicates the decoded value does not fit in 64 bits.
	ErrNumericOverflow = constError("base62 value overflows uint64")

	// ErrBatchTooLarge indicates a batch exceeded the configured maximum size.
	// Returned wrapped in a *BatchTooLargeError carrying the size and limit.
	ErrBatchTooLarge = constError("batch size too large")
)

// InvalidCharacterError reports the first symbol of a decode input that is
// not part of the alphabet.
type InvalidCharacterError struct {
	// Char is the offending symbol, or utf8.RuneError when the input is not
	// valid UTF-8 at Position.
	Char rune

	// Byte is the raw input byte when the input is not valid UTF-8 at
	// Position, and zero otherwise.
	Byte byte

	// Position is the 0-based symbol index of Char within the input.
	Position int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%s: '%s' at position %d", ErrInvalidCharacter, e.symbol(true), e.Position)
}

// symbol renders the offending symbol. A raw byte is shown as \xNN.
func (e *InvalidCharacterError) symbol(quoted bool) string {
	if e.Byte != 0 {
		return fmt.Sprintf(`\x%02x`, e.Byte)
	}
	if quoted {
		q := strconv.QuoteRune(e.Char)
		return q[1 : len(q)-1]
	}
	return string(e.Char)
}

// Is makes errors.Is(err, ErrInvalidCharacter) succeed.
func (e *InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}

// BatchTooLargeError is returned before any conversion work when a batch
// holds more elements than the engine admits.
type BatchTooLargeError struct {
	Size  int
	Limit int
}

func (e *BatchTooLargeError) Error() string {
	return fmt.Sprintf("%s: %d (max: %d)", ErrBatchTooLarge, e.Size, e.Limit)
}

// Is makes errors.Is(err, ErrBatchTooLarge) succeed.
func (e *BatchTooLargeError) Is(target error) bool {
	return target == ErrBatchTooLarge
}

// ElementError attributes a per-element failure to its original index in a batch.
type ElementError struct {
	// Index is the 0-based position of the failing element in the input batch.
	Index int

	// Input is the element as it was supplied.
	Input string

	// Err is the underlying codec failure.
	Err error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("invalid base62 string at index %d (%q): %v", e.Index, e.Input, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }
