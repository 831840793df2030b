// Command b62 converts unsigned 64-bit integers to and from Base62.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rshade/b62/internal/cli"
	"github.com/rshade/b62/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
// Errors not already reported on stdout are printed to stderr.
func run(args []string, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil && !alreadyReported(err) {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return cli.ExitCode(err)
}

// alreadyReported reports whether err was rendered to stdout as JSON.
func alreadyReported(err error) bool {
	var exitErr *cli.ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}
