// Package b62 converts unsigned 64-bit integers to and from Base62 strings
// over the alphabet 0-9A-Za-z, one value at a time or in parallel batches.
//
// The package-level functions use a shared engine with the default batch
// limit of 1,000,000 elements. Use New for a tuned instance.
//
//	s := b62.Encode(123456789)        // "8M0kX"
//	n, err := b62.Decode("8M0kX")     // 123456789, nil
//	out, err := b62.DecodeBatch(ids)  // all-or-nothing
package b62

import (
	"context"

	"github.com/rshade/b62/internal/codec"
	"github.com/rshade/b62/internal/engine/batch"
	"github.com/rshade/b62/internal/failure"
)

// Alphabet lists the 62 symbols in value order.
const Alphabet = codec.Alphabet

// MaxEncodedLen is the length of the longest encoding, that of 2^64-1.
const MaxEncodedLen = codec.MaxEncodedLen

// DefaultMaxBatchSize is the admission limit of the package-level batch functions.
const DefaultMaxBatchSize = batch.DefaultMaxBatchSize

// Errors returned by the codec and the batch functions. Compare with errors.Is
// and extract detail with errors.As.
var (
	ErrEmptyInput       = failure.ErrEmptyInput
	ErrInvalidCharacter = failure.ErrInvalidCharacter
	ErrNumericOverflow  = failure.ErrNumericOverflow
	ErrBatchTooLarge    = failure.ErrBatchTooLarge
	ErrInvalidOption    = batch.ErrInvalidOption
)

type (
	// InvalidCharacterError carries the first offending symbol and its position.
	InvalidCharacterError = failure.InvalidCharacterError

	// BatchTooLargeError carries the rejected batch size and the limit.
	BatchTooLargeError = failure.BatchTooLargeError

	// ElementError identifies the earliest failing element of a decode batch.
	ElementError = failure.ElementError

	// Option configures a Codec.
	Option = batch.Option
)

// Options accepted by New.
var (
	WithMaxBatchSize = batch.WithMaxBatchSize
	WithWorkers      = batch.WithWorkers
	WithChunkSize    = batch.WithChunkSize
	WithLogger       = batch.WithLogger
)

//nolint:gochecknoglobals // Shared stateless engine for the package-level functions.
var defaultCodec = &Codec{engine: batch.NewWithDefaults()}

// Encode returns the Base62 encoding of n. Zero encodes to "0".
func Encode(n uint64) string {
	return codec.Encode(n)
}

// Decode parses a Base62 string. It fails with ErrEmptyInput, an
// *InvalidCharacterError or ErrNumericOverflow.
func Decode(s string) (uint64, error) {
	return codec.Decode(s)
}

// EncodeBatch encodes every number in order. It fails only with a
// *BatchTooLargeError when len(nums) exceeds DefaultMaxBatchSize.
func EncodeBatch(nums []uint64) ([]string, error) {
	return defaultCodec.EncodeBatch(context.Background(), nums)
}

// DecodeBatch decodes every string in order. If any element is invalid it
// returns no values and an *ElementError for the lowest failing index.
func DecodeBatch(strs []string) ([]uint64, error) {
	return defaultCodec.DecodeBatch(context.Background(), strs)
}

// Codec is a configured Base62 converter. It is safe for concurrent use.
type Codec struct {
	engine *batch.Engine
}

// New returns a Codec configured by opts.
func New(opts ...Option) (*Codec, error) {
	eng, err := batch.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Codec{engine: eng}, nil
}

// Encode returns the Base62 encoding of n.
func (c *Codec) Encode(n uint64) string { return codec.Encode(n) }

// Decode parses a Base62 string.
func (c *Codec) Decode(s string) (uint64, error) { return codec.Decode(s) }

// EncodeBatch encodes nums in parallel. ctx is checked between chunks.
func (c *Codec) EncodeBatch(ctx context.Context, nums []uint64) ([]string, error) {
	return c.engine.EncodeBatch(ctx, nums)
}

// DecodeBatch decodes strs in parallel, all-or-nothing. ctx is checked between chunks.
func (c *Codec) DecodeBatch(ctx context.Context, strs []string) ([]uint64, error) {
	return c.engine.DecodeBatch(ctx, strs)
}

// MaxBatchSize returns the admission limit.
func (c *Codec) MaxBatchSize() int { return c.engine.MaxBatchSize() }
