package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/b62/internal/failure"
)

// maxLineSize bounds a single input line. Valid inputs are at most 20 bytes;
// the headroom lets over-long lines reach the codec and fail there.
const maxLineSize = 1 << 20

// stdinName selects standard input for --input.
const stdinName = "-"

// openInput returns the reader for --input: the named file, or stdin when
// path is empty or "-". An interactive stdin with no --input is rejected so
// the command does not block waiting for a terminal.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path != "" && path != stdinName {
		f, err := os.Open(path)
		if err != nil {
			return nil, usageError(fmt.Errorf("opening input: %w", err))
		}
		return f, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && path == "" && isTerminal(f) {
		return nil, usageError(errors.New("no input: pass --input FILE or pipe values on stdin"))
	}
	return io.NopCloser(in), nil
}

// readLines reads newline-delimited input. A trailing "\r" is stripped from
// each line; a final newline does not produce an extra empty line.
//
// When limit is positive, at most limit batch elements are kept. counted
// reports whether a line is an element (nil counts every line). Once the
// limit is passed the rest of the input is only counted, and the result is a
// *failure.BatchTooLargeError carrying the full element count.
func readLines(r io.Reader, limit int, counted func(string) bool) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	elements := 0
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if counted == nil || counted(line) {
			elements++
		}
		if limit > 0 && elements > limit {
			lines = nil
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, usageError(fmt.Errorf("reading input: %w", err))
	}
	if limit > 0 && elements > limit {
		return nil, &failure.BatchTooLargeError{Size: elements, Limit: limit}
	}
	return lines, nil
}

// nonBlank reports whether line holds a value once whitespace is trimmed.
func nonBlank(line string) bool {
	return strings.TrimSpace(line) != ""
}

// parseNumbers parses decimal uint64 values. Surrounding whitespace is
// ignored. Blank lines are dropped when skipBlank is set and are an error
// otherwise. label names the unit reported in errors ("line" or "argument").
// The returned inputs are the trimmed source texts of the parsed values.
func parseNumbers(texts []string, skipBlank bool, label string) ([]uint64, []string, error) {
	nums := make([]uint64, 0, len(texts))
	inputs := make([]string, 0, len(texts))

	for i, raw := range texts {
		text := strings.TrimSpace(raw)
		if text == "" {
			if skipBlank {
				continue
			}
			return nil, nil, usageError(fmt.Errorf("%s %d: empty value", label, i+1))
		}

		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, nil, usageError(fmt.Errorf("%s %d: %q is not an unsigned 64-bit integer", label, i+1, text))
		}
		nums = append(nums, n)
		inputs = append(inputs, text)
	}

	return nums, inputs, nil
}
