package codec

import (
	"math/bits"
	"unicode/utf8"

	"github.com/rshade/b62/internal/failure"
)

// Alphabet is the ordered Base62 symbol set: digits, then upper case, then lower case.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	// Base is the radix of the encoding.
	Base = uint64(len(Alphabet))

	// MaxEncodedLen is the length of the encoding of math.MaxUint64 ("LygHa16AHYF").
	MaxEncodedLen = 11
)

// invalidSymbol marks bytes outside the alphabet in the lookup table.
const invalidSymbol = 0xFF

//nolint:gochecknoglobals // Read-only lookup table built once at init.
var symbolValues = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = invalidSymbol
	}
	for i := range len(Alphabet) {
		t[Alphabet[i]] = byte(i)
	}
	return t
}()

// Encode returns the Base62 representation of n, most significant symbol first.
// Zero encodes to "0". Encode never fails.
func Encode(n uint64) string {
	var buf [MaxEncodedLen]byte
	return string(AppendEncode(buf[:0], n))
}

// AppendEncode appends the Base62 representation of n to dst and returns the extended slice.
func AppendEncode(dst []byte, n uint64) []byte {
	if n == 0 {
		return append(dst, Alphabet[0])
	}

	// Fill from the right so no reversal pass is needed.
	var buf [MaxEncodedLen]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%Base]
		n /= Base
	}
	return append(dst, buf[i:]...)
}

// Value returns the numeric value of a single Base62 symbol.
func Value(c byte) (uint64, bool) {
	v := symbolValues[c]
	if v == invalidSymbol {
		return 0, false
	}
	return uint64(v), true
}

// Decode parses a Base62 string into a uint64.
//
// It returns failure.ErrEmptyInput for "", a *failure.InvalidCharacterError for
// the first symbol outside the alphabet, and failure.ErrNumericOverflow as soon
// as the accumulated value would exceed 64 bits.
func Decode(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, failure.ErrEmptyInput
	}

	var acc uint64
	for pos := 0; len(s) > 0; pos++ {
		v, ok := Value(s[0])
		if !ok {
			r, size := utf8.DecodeRuneInString(s)
			charErr := &failure.InvalidCharacterError{Char: r, Position: pos}
			if r == utf8.RuneError && size == 1 {
				charErr.Byte = s[0]
			}
			return 0, charErr
		}
		s = s[1:]

		hi, lo := bits.Mul64(acc, Base)
		if hi != 0 {
			return 0, failure.ErrNumericOverflow
		}
		sum, carry := bits.Add64(lo, v, 0)
		if carry != 0 {
			return 0, failure.ErrNumericOverflow
		}
		acc = sum
	}
	return acc, nil
}
