package cli

import (
	"github.com/spf13/cobra"
)

// newVersionCmd creates the version command.
func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the b62 version",
		Annotations: map[string]string{annotationConfigOptional: "true"},
		Args:        cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("b62 version %s\n", ver)
		},
	}
}
