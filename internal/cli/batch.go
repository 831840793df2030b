package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rshade/b62/internal/failure"
)

// batchFlags holds the flags shared by the batch subcommands.
type batchFlags struct {
	input    string
	stats    bool
	progress bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "newline-delimited input file ('-' for stdin, default stdin)")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "print item count and elapsed time to stderr")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "show a progress bar on an interactive stderr for large batches")
}

// newBatchCmd creates the batch command group.
func newBatchCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert newline-delimited input in parallel",
		Long: `Reads one value per line from a file or stdin and converts the whole
batch in parallel. Output order always matches input order. Batches larger
than batch.max_size are rejected before any conversion.`,
	}
	cmd.AddCommand(newBatchEncodeCmd(s), newBatchDecodeCmd(s))
	return cmd
}

func newBatchEncodeCmd(s *session) *cobra.Command {
	var (
		flags     batchFlags
		skipBlank bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode decimal numbers, one per line",
		Example: `  seq 0 1000 | b62 batch encode
  b62 batch encode --input ids.txt --skip-blank --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var counted func(string) bool
			if skipBlank {
				counted = nonBlank
			}
			lines, err := s.readInput(cmd, flags.input, counted)
			if err != nil {
				return err
			}
			nums, inputs, err := parseNumbers(lines, skipBlank, "line")
			if err != nil {
				return err
			}
			return s.runEncode(cmd, nums, inputs, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&skipBlank, "skip-blank", false, "ignore blank lines instead of failing")
	return cmd
}

func newBatchDecodeCmd(s *session) *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode Base62 strings, one per line",
		Long: `Decodes one Base62 string per line. A blank line is an empty element and
fails the batch with EmptyInput at its index.`,
		Example: `  b62 batch decode --input ids.txt --stats
  cat ids.txt | b62 batch decode --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lines, err := s.readInput(cmd, flags.input, nil)
			if err != nil {
				return err
			}
			return s.runDecode(cmd, lines, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// readInput opens --input and reads its lines, keeping no more than
// batch.max_size elements. An oversized input fails like the engine guard,
// before any line is parsed.
func (s *session) readInput(cmd *cobra.Command, path string, counted func(string) bool) ([]string, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, usageError(err)
	}

	r, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	lines, err := readLines(r, s.cfg.Batch.MaxSize, counted)
	var tooLarge *failure.BatchTooLargeError
	if errors.As(err, &tooLarge) {
		return nil, s.fail(cmd, err)
	}
	return lines, err
}
