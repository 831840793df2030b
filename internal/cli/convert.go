package cli

import (
	"io"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/b62/internal/engine/batch"
	"github.com/rshade/b62/internal/failure"
	"github.com/rshade/b62/internal/logging"
	"github.com/rshade/b62/internal/tui"
)

// progressMinItems is the smallest batch that gets a live progress bar.
const progressMinItems = 100_000

// batchStats collects progress from the engine for --stats and --progress.
type batchStats struct {
	progress atomic.Pointer[batch.Progress]
	reporter atomic.Pointer[tui.ProgressReporter]
	started  time.Time
}

func newBatchStats() *batchStats {
	return &batchStats{started: time.Now()}
}

func (b *batchStats) option() batch.Option {
	return batch.WithProgressCallback(func(p *batch.Progress) {
		b.progress.Store(p)
		if r := b.reporter.Load(); r != nil {
			snap := p.Snapshot()
			r.Update(snap.ProcessedItems, snap.TotalItems)
		}
	})
}

// startProgress shows a live progress bar on stderr when --progress is set,
// stderr is a terminal and the batch is large enough to be worth watching.
// The returned function stops the bar; it is always safe to call.
func (s *session) startProgress(cmd *cobra.Command, flags batchFlags, b *batchStats, label string, total int) func() {
	f, ok := cmd.ErrOrStderr().(*os.File)
	if !flags.progress || total < progressMinItems || !ok || !isTerminal(f) {
		return func() {}
	}

	r := tui.StartProgress(f, label, total)
	b.reporter.Store(r)
	return func() {
		b.reporter.Store(nil)
		r.Stop()
	}
}

// print writes a one-line summary with thousands separators.
func (b *batchStats) print(w io.Writer, op string, items int) {
	elapsed := time.Since(b.started)
	chunks := 0
	if p := b.progress.Load(); p != nil {
		snap := p.Snapshot()
		items = snap.ProcessedItems
		chunks = snap.ProcessedChunks
	}

	rate := 0.0
	if elapsed > 0 {
		rate = float64(items) / elapsed.Seconds()
	}

	p := message.NewPrinter(language.English)
	_, _ = p.Fprintf(w, "%s: %d items in %d chunks, %s elapsed (%.0f items/s)\n",
		op, items, chunks, elapsed.Round(time.Microsecond), rate)
}

// runEncode encodes nums through the batch engine and renders the result.
func (s *session) runEncode(cmd *cobra.Command, nums []uint64, inputs []string, flags batchFlags) error {
	recorder := newBatchStats()
	eng, err := s.engine(recorder.option())
	if err != nil {
		return err
	}

	stopProgress := s.startProgress(cmd, flags, recorder, "encode", len(nums))
	outputs, err := eng.EncodeBatch(cmd.Context(), nums)
	stopProgress()
	if err != nil {
		return s.fail(cmd, err)
	}

	if err = renderConversion(cmd.OutOrStdout(), s.format(), conversion{inputs: inputs, outputs: outputs}); err != nil {
		return err
	}
	if flags.stats {
		recorder.print(cmd.ErrOrStderr(), "encode", len(nums))
	}
	return nil
}

// runDecode decodes strs through the batch engine and renders the result.
func (s *session) runDecode(cmd *cobra.Command, strs []string, flags batchFlags) error {
	recorder := newBatchStats()
	eng, err := s.engine(recorder.option())
	if err != nil {
		return err
	}

	stopProgress := s.startProgress(cmd, flags, recorder, "decode", len(strs))
	values, err := eng.DecodeBatch(cmd.Context(), strs)
	stopProgress()
	if err != nil {
		return s.fail(cmd, err)
	}

	outputs := make([]string, len(values))
	for i, v := range values {
		outputs[i] = strconv.FormatUint(v, 10)
	}

	if err = renderConversion(cmd.OutOrStdout(), s.format(),
		conversion{inputs: strs, outputs: outputs, numeric: true}); err != nil {
		return err
	}
	if flags.stats {
		recorder.print(cmd.ErrOrStderr(), "decode", len(strs))
	}
	return nil
}

// fail reports a conversion failure and returns the matching *ExitError.
func (s *session) fail(cmd *cobra.Command, err error) error {
	log := logging.FromContext(cmd.Context())
	log.Debug().
		Err(err).
		Str("command", cmd.CommandPath()).
		Str("kind", failure.KindOf(err).String()).
		Msg("conversion failed")

	reported, renderErr := renderFailure(cmd.OutOrStdout(), s.format(), err)
	if renderErr != nil {
		log.Debug().Err(renderErr).Msg("rendering failure report")
	}
	return conversionError(err, reported)
}
