package codec

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	bc "github.com/kenshaw/baseconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/b62/internal/failure"
)

//nolint:gochecknoglobals // Shared vectors for encode and decode tests.
var knownVectors = []struct {
	n uint64
	s string
}{
	{0, "0"},
	{1, "1"},
	{10, "A"},
	{35, "Z"},
	{36, "a"},
	{61, "z"},
	{62, "10"},
	{3843, "zz"},
	{12345, "3D7"},
	{238327, "zzz"},
	{123456789, "8M0kX"},
	{916132831, "zzzzz"},
	{1 << 32, "4gfFC4"},
	{1<<63 - 1, "AzL8n0Y58m7"},
	{math.MaxUint64, "LygHa16AHYF"},
}

func TestEncode(t *testing.T) {
	for _, tt := range knownVectors {
		t.Run(tt.s, func(t *testing.T) {
			assert.Equal(t, tt.s, Encode(tt.n))
		})
	}
}

func TestDecode(t *testing.T) {
	for _, tt := range knownVectors {
		t.Run(tt.s, func(t *testing.T) {
			got, err := Decode(tt.s)
			require.NoError(t, err)
			assert.Equal(t, tt.n, got)
		})
	}
}

func TestEncode_PowersOf62(t *testing.T) {
	n := uint64(1)
	for i := range MaxEncodedLen {
		assert.Equal(t, "1"+strings.Repeat("0", i), Encode(n))
		if i < MaxEncodedLen-1 {
			n *= Base
		}
	}
}

func TestEncode_Length(t *testing.T) {
	assert.Len(t, Encode(math.MaxUint64), MaxEncodedLen)
	for _, n := range []uint64{0, 1, 61, 62, 1 << 40, math.MaxUint64} {
		s := Encode(n)
		assert.GreaterOrEqual(t, len(s), 1)
		assert.LessOrEqual(t, len(s), 13)
		if n != 0 {
			assert.NotEqual(t, byte('0'), s[0], "no leading zero for %d", n)
		}
	}
}

func TestEncode_MatchesBaseconv(t *testing.T) {
	for _, n := range []uint64{1, 61, 62, 999999999999999999, 1234567890123456789, math.MaxUint64} {
		want, err := bc.Convert(strconv.FormatUint(n, 10), bc.DigitsDec, Alphabet)
		require.NoError(t, err)
		assert.Equal(t, want, Encode(n), "n=%d", n)
	}
}

func TestAppendEncode(t *testing.T) {
	dst := []byte("id-")
	dst = AppendEncode(dst, 62)
	dst = append(dst, ',')
	dst = AppendEncode(dst, 0)
	assert.Equal(t, "id-10,0", string(dst))
}

func TestDecode_CharacterSet(t *testing.T) {
	for i := range len(Alphabet) {
		got, err := Decode(Alphabet[i : i+1])
		require.NoError(t, err)
		assert.Equal(t, uint64(i), got)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	_, err := Decode("")
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrEmptyInput)
	assert.Equal(t, failure.KindEmptyInput, failure.KindOf(err))
}

func TestDecode_InvalidCharacter(t *testing.T) {
	tests := []struct {
		input    string
		char     rune
		position int
	}{
		{"1!2", '!', 1},
		{"abc!", '!', 3},
		{"!", '!', 0},
		{"hello world", ' ', 5},
		{"123@456", '@', 3},
		{"abc-def", '-', 3},
		{"invalid_string!", '_', 7},
		{"ab€", '€', 2},
		{"unicode_🚀", '_', 7},
		{"🚀", '🚀', 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Decode(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, failure.ErrInvalidCharacter)

			var charErr *failure.InvalidCharacterError
			require.ErrorAs(t, err, &charErr)
			assert.Equal(t, tt.char, charErr.Char)
			assert.Equal(t, tt.position, charErr.Position)
		})
	}
}

func TestDecode_InvalidUTF8(t *testing.T) {
	_, err := Decode("ab\xff")
	var charErr *failure.InvalidCharacterError
	require.ErrorAs(t, err, &charErr)
	assert.Equal(t, utf8.RuneError, charErr.Char)
	assert.Equal(t, byte(0xff), charErr.Byte)
	assert.Equal(t, 2, charErr.Position)
	assert.Equal(t, `invalid character in base62 string: '\xff' at position 2`, err.Error())

	// A well-formed U+FFFD is a symbol, not a raw byte.
	_, err = Decode("a\uFFFD")
	require.ErrorAs(t, err, &charErr)
	assert.Equal(t, utf8.RuneError, charErr.Char)
	assert.Zero(t, charErr.Byte)
}

func TestDecode_Overflow(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "add overflows on last symbol", input: "LygHa16AHYG"},
		{name: "multiply overflows on last symbol", input: "LygHa16AHZ0"},
		{name: "eleven z", input: "zzzzzzzzzzz"},
		{name: "thirteen symbols", input: "1000000000000"},
		{name: "thirteen z", input: "zzzzzzzzzzzzz"},
		{name: "overflow before invalid character", input: "zzzzzzzzzzzzzz!"},
	}

	maxU64 := new(big.Int).SetUint64(math.MaxUint64)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Positive(t, bigDecode(t, tt.input).Cmp(maxU64), "vector must exceed uint64")

			_, err := Decode(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, failure.ErrNumericOverflow)
		})
	}
}

func TestDecode_LeadingZeros(t *testing.T) {
	got, err := Decode("0000000000000000010")
	require.NoError(t, err)
	assert.Equal(t, uint64(62), got)
}

func TestDecode_InvalidBeforeOverflow(t *testing.T) {
	_, err := Decode("!zzzzzzzzzzzzzz")
	assert.ErrorIs(t, err, failure.ErrInvalidCharacter)
}

func TestRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 10, 61, 62, 123, 2023, 9999999, 1 << 32, 1 << 48, 1<<63 - 1, math.MaxUint64 - 1, math.MaxUint64}
	for i := uint64(0); i < 100000; i += 1234 {
		values = append(values, i)
	}

	for _, n := range values {
		got, err := Decode(Encode(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestValue(t *testing.T) {
	v, ok := Value('z')
	assert.True(t, ok)
	assert.Equal(t, uint64(61), v)

	_, ok = Value('+')
	assert.False(t, ok)
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(61))
	f.Add(uint64(math.MaxUint64))
	f.Fuzz(func(t *testing.T, n uint64) {
		got, err := Decode(Encode(n))
		if err != nil {
			t.Fatalf("Decode(Encode(%d)) failed: %v", n, err)
		}
		if got != n {
			t.Fatalf("Decode(Encode(%d)) = %d", n, got)
		}
	})
}

func FuzzDecode(f *testing.F) {
	for _, s := range []string{"", "0", "1!2", "LygHa16AHYF", "LygHa16AHYG", "00z"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		n, err := Decode(s)
		if err != nil {
			return
		}
		canonical := strings.TrimLeft(s, "0")
		if canonical == "" {
			canonical = "0"
		}
		if Encode(n) != canonical {
			t.Fatalf("Encode(Decode(%q)) = %q, want %q", s, Encode(n), canonical)
		}
	})
}

func BenchmarkEncode(b *testing.B) {
	for b.Loop() {
		_ = Encode(math.MaxUint64)
	}
}

func BenchmarkDecode(b *testing.B) {
	for b.Loop() {
		_, _ = Decode("LygHa16AHYF")
	}
}

// bigDecode evaluates s in the alphabet with arbitrary precision.
func bigDecode(t *testing.T, s string) *big.Int {
	t.Helper()
	acc := new(big.Int)
	base := big.NewInt(int64(Base))
	for i := range len(s) {
		v := strings.IndexByte(Alphabet, s[i])
		if v < 0 {
			break
		}
		acc.Mul(acc, base)
		acc.Add(acc, big.NewInt(int64(v)))
	}
	return acc
}
