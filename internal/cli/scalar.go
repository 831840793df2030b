package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/b62/internal/codec"
)

// newEncodeCmd creates the encode command for numbers given as arguments.
func newEncodeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "encode NUM...",
		Short: "Encode unsigned 64-bit integers as Base62",
		Long: `Encodes each decimal argument as a Base62 string, one result per argument.
With more than one argument the values are converted through the batch engine.`,
		Example: `  b62 encode 0 61 62
  b62 encode 18446744073709551615 --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, inputs, err := parseNumbers(args, false, "argument")
			if err != nil {
				return err
			}

			if len(nums) == 1 {
				c := conversion{inputs: inputs, outputs: []string{codec.Encode(nums[0])}}
				return renderConversion(cmd.OutOrStdout(), s.format(), c)
			}
			return s.runEncode(cmd, nums, inputs, batchFlags{})
		},
	}
}

// newDecodeCmd creates the decode command for Base62 strings given as arguments.
func newDecodeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "decode STR...",
		Short: "Decode Base62 strings to unsigned 64-bit integers",
		Long: `Decodes each Base62 argument to its decimal value, one result per argument.
With more than one argument the call is all-or-nothing: if any argument is
invalid, only the error for the earliest failing argument is reported.`,
		Example: `  b62 decode 8M0kX
  b62 decode 1 zz LygHa16AHYF --output table`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return s.runDecode(cmd, args, batchFlags{})
			}

			v, err := codec.Decode(args[0])
			if err != nil {
				return s.fail(cmd, err)
			}
			c := conversion{inputs: args, outputs: []string{strconv.FormatUint(v, 10)}, numeric: true}
			return renderConversion(cmd.OutOrStdout(), s.format(), c)
		},
	}
}
