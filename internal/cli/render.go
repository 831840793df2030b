package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/b62/internal/config"
	"github.com/rshade/b62/internal/failure"
)

// tableColumnGap is the number of spaces between table columns.
const tableColumnGap = 2

// tableHeaderColor returns the lipgloss.Color used for the table header row.
func tableHeaderColor() lipgloss.Color { return lipgloss.Color("39") }

// conversion pairs every input with its converted output, in input order.
type conversion struct {
	inputs  []string
	outputs []string

	// numeric is set when outputs are decimal integers (decode results)
	// and should be emitted as JSON numbers.
	numeric bool
}

// conversionRow is one NDJSON line.
type conversionRow struct {
	Index  int    `json:"index"`
	Input  string `json:"input"`
	Output any    `json:"output"`
}

func (c conversion) value(i int) any {
	if c.numeric {
		return json.Number(c.outputs[i])
	}
	return c.outputs[i]
}

// renderConversion writes a successful conversion in the given format.
func renderConversion(w io.Writer, format string, c conversion) error {
	switch format {
	case config.FormatJSON:
		return renderConversionJSON(w, c)
	case config.FormatNDJSON:
		return renderConversionNDJSON(w, c)
	case config.FormatTable:
		return renderConversionTable(w, c)
	default:
		return renderConversionText(w, c)
	}
}

func renderConversionText(w io.Writer, c conversion) error {
	for _, out := range c.outputs {
		if _, err := fmt.Fprintln(w, out); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}
	return nil
}

func renderConversionJSON(w io.Writer, c conversion) error {
	results := make([]any, len(c.outputs))
	for i := range c.outputs {
		results[i] = c.value(i)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(map[string]any{"results": results}); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func renderConversionNDJSON(w io.Writer, c conversion) error {
	for i := range c.outputs {
		data, err := json.Marshal(conversionRow{Index: i, Input: c.inputs[i], Output: c.value(i)})
		if err != nil {
			return fmt.Errorf("marshaling row: %w", err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}

// renderConversionTable writes INDEX, INPUT and OUTPUT columns with a styled
// header row.
func renderConversionTable(w io.Writer, c conversion) error {
	headers := [3]string{"INDEX", "INPUT", "OUTPUT"}
	widths := [3]int{len(headers[0]), len(headers[1]), len(headers[2])}
	indexes := make([]string, len(c.outputs))
	for i := range c.outputs {
		indexes[i] = strconv.Itoa(i)
		widths[0] = max(widths[0], lipgloss.Width(indexes[i]))
		widths[1] = max(widths[1], lipgloss.Width(c.inputs[i]))
		widths[2] = max(widths[2], lipgloss.Width(c.outputs[i]))
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(tableHeaderColor())
	gap := strings.Repeat(" ", tableColumnGap)

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = headerStyle.Width(widths[i]).Render(h)
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, gap), " ")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range c.outputs {
		if _, err := fmt.Fprintf(w, "%-*s%s%-*s%s%s\n",
			widths[0], indexes[i], gap,
			widths[1], c.inputs[i], gap,
			c.outputs[i],
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return nil
}

// renderFailure writes err to w for the machine-readable formats and reports
// whether anything was written. Text and table output leave errors to stderr.
func renderFailure(w io.Writer, format string, err error) (bool, error) {
	if format != config.FormatJSON && format != config.FormatNDJSON {
		return false, nil
	}

	payload := map[string]failure.Report{"error": failure.Describe(err)}

	var writeErr error
	if format == config.FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		writeErr = encoder.Encode(payload)
	} else {
		writeErr = json.NewEncoder(w).Encode(payload)
	}
	if writeErr != nil {
		return false, fmt.Errorf("encoding error report: %w", writeErr)
	}
	return true, nil
}
