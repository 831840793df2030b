package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/b62/internal/codec"
	"github.com/rshade/b62/internal/failure"
)

// Default batch engine configuration.
const (
	// DefaultMaxBatchSize is the default admission limit for a single batch call.
	DefaultMaxBatchSize = 1_000_000

	// DefaultChunkSize is the default number of elements handed to a worker at once.
	DefaultChunkSize = 4096

	// MinChunkSize is the minimum allowed chunk size.
	MinChunkSize = 1

	// MaxChunkSize is the maximum allowed chunk size.
	MaxChunkSize = 1 << 16
)

// ErrInvalidOption is returned by New when an option value is out of range.
var ErrInvalidOption = errors.New("invalid batch engine option")

// ProgressCallback is an optional callback invoked after each chunk completes.
// It may be called concurrently from several workers.
type ProgressCallback func(progress *Progress)

// Engine applies the Base62 codec across ordered batches using a bounded
// pool of parallel workers. An Engine holds only configuration and is safe
// for concurrent use.
type Engine struct {
	// maxBatchSize is the largest batch admitted by EncodeBatch and DecodeBatch.
	maxBatchSize int

	// workers bounds the number of chunks converted concurrently.
	workers int

	// chunkSize is the number of consecutive elements per unit of work.
	chunkSize int

	// onProgress is an optional callback for progress updates.
	onProgress ProgressCallback

	logger zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithMaxBatchSize sets the admission limit. n must be at least 1.
func WithMaxBatchSize(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return fmt.Errorf("%w: max batch size must be >= 1, got %d", ErrInvalidOption, n)
		}
		e.maxBatchSize = n
		return nil
	}
}

// WithWorkers sets the concurrency limit. n must be at least 1.
func WithWorkers(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidOption, n)
		}
		e.workers = n
		return nil
	}
}

// WithChunkSize sets how many consecutive elements a worker converts per unit of work.
func WithChunkSize(n int) Option {
	return func(e *Engine) error {
		if n < MinChunkSize || n > MaxChunkSize {
			return fmt.Errorf("%w: chunk size must be between %d and %d, got %d",
				ErrInvalidOption, MinChunkSize, MaxChunkSize, n)
		}
		e.chunkSize = n
		return nil
	}
}

// WithProgressCallback sets a callback invoked after every completed chunk.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(e *Engine) error {
		e.onProgress = callback
		return nil
	}
}

// WithLogger sets the logger used for debug-level batch events.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// New creates a batch engine. Options are applied in order over the defaults.
func New(opts ...Option) (*Engine, error) {
	e := NewWithDefaults()
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// NewWithDefaults creates an engine with the default limit, chunk size and
// one worker per available CPU.
func NewWithDefaults() *Engine {
	return &Engine{
		maxBatchSize: DefaultMaxBatchSize,
		workers:      runtime.GOMAXPROCS(0),
		chunkSize:    DefaultChunkSize,
		logger:       zerolog.Nop(),
	}
}

// MaxBatchSize returns the configured admission limit.
func (e *Engine) MaxBatchSize() int { return e.maxBatchSize }

// Workers returns the configured concurrency limit.
func (e *Engine) Workers() int { return e.workers }

// ChunkSize returns the configured chunk size.
func (e *Engine) ChunkSize() int { return e.chunkSize }

// EncodeBatch encodes every number in nums. out[i] is the encoding of nums[i].
//
// An empty batch returns an empty slice. A batch larger than the configured
// limit fails with a *failure.BatchTooLargeError before any work starts. The
// only other failure is cancellation of ctx, in which case no results are returned.
func (e *Engine) EncodeBatch(ctx context.Context, nums []uint64) ([]string, error) {
	if len(nums) == 0 {
		return []string{}, nil
	}
	if err := e.admit(len(nums)); err != nil {
		return nil, err
	}

	out := make([]string, len(nums))
	err := e.process(ctx, "encode", len(nums), func(start, end int) {
		var buf [codec.MaxEncodedLen]byte
		for i := start; i < end; i++ {
			out[i] = string(codec.AppendEncode(buf[:0], nums[i]))
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeBatch decodes every string in strs. out[i] is the value of strs[i].
//
// The call is all-or-nothing. Every element is decoded before any error is
// considered; if one or more elements failed, DecodeBatch returns nil values
// and a *failure.ElementError for the lowest failing index, independent of
// worker scheduling. Size and cancellation behave as in EncodeBatch.
func (e *Engine) DecodeBatch(ctx context.Context, strs []string) ([]uint64, error) {
	if len(strs) == 0 {
		return []uint64{}, nil
	}
	if err := e.admit(len(strs)); err != nil {
		return nil, err
	}

	out := make([]uint64, len(strs))
	errs := make([]error, len(strs))
	err := e.process(ctx, "decode", len(strs), func(start, end int) {
		for i := start; i < end; i++ {
			out[i], errs[i] = codec.Decode(strs[i])
		}
	})
	if err != nil {
		return nil, err
	}

	if idx := firstFailure(errs); idx >= 0 {
		e.logger.Debug().
			Int("index", idx).
			Str("kind", failure.KindOf(errs[idx]).String()).
			Msg("decode batch rejected")
		return nil, &failure.ElementError{Index: idx, Input: strs[idx], Err: errs[idx]}
	}
	return out, nil
}

// CalculateChunks returns the chunk boundaries for the given element count.
// Returns a slice of [start, end) index pairs covering [0, totalItems).
func (e *Engine) CalculateChunks(totalItems int) [][2]int {
	totalChunks := e.calculateTotalChunks(totalItems)
	chunks := make([][2]int, totalChunks)

	for i := range totalChunks {
		start := i * e.chunkSize
		end := min(start+e.chunkSize, totalItems)
		chunks[i] = [2]int{start, end}
	}

	return chunks
}

// admit enforces the batch size limit.
func (e *Engine) admit(size int) error {
	if size > e.maxBatchSize {
		e.logger.Debug().
			Int("size", size).
			Int("limit", e.maxBatchSize).
			Msg("batch rejected before dispatch")
		return &failure.BatchTooLargeError{Size: size, Limit: e.maxBatchSize}
	}
	return nil
}

// process runs convert over every chunk of [0, total) and returns once all
// dispatched chunks have finished. Each chunk owns a disjoint index range,
// so convert may write its slots without locking.
func (e *Engine) process(ctx context.Context, op string, total int, convert func(start, end int)) error {
	chunks := e.CalculateChunks(total)
	progress := NewProgress(total, len(chunks), e.chunkSize)
	started := time.Now()

	var g errgroup.Group
	g.SetLimit(e.workers)

	for _, bounds := range chunks {
		if err := ctx.Err(); err != nil {
			// Let in-flight chunks finish so no worker outlives the call.
			_ = g.Wait()
			return err
		}

		g.Go(func() error {
			convert(bounds[0], bounds[1])
			progress.AddProcessed(bounds[1] - bounds[0])
			if e.onProgress != nil {
				e.onProgress(progress)
			}
			// Element failures are recorded as data, never as group errors.
			return nil
		})
	}

	_ = g.Wait()

	e.logger.Debug().
		Str("op", op).
		Int("items", total).
		Int("chunks", len(chunks)).
		Int("workers", e.workers).
		Dur("elapsed", time.Since(started)).
		Msg("batch converted")

	return nil
}

// calculateTotalChunks calculates the number of chunks needed for the given item count.
func (e *Engine) calculateTotalChunks(totalItems int) int {
	chunks := totalItems / e.chunkSize
	if totalItems%e.chunkSize > 0 {
		chunks++
	}
	return chunks
}
