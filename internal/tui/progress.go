package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Progress bar layout.
const (
	progressPadding  = 2
	progressMinWidth = 10
	progressMaxWidth = 60
)

// LabelStyle renders the operation name in front of the bar.
//
//nolint:gochecknoglobals // Shared style definition.
var LabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

// BatchProgressMsg reports converted items so far.
type BatchProgressMsg struct {
	Processed int
	Total     int
}

// BatchDoneMsg ends the progress view.
type BatchDoneMsg struct{}

// ProgressModel is the Bubble Tea model for a running batch.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type ProgressModel struct {
	label     string
	bar       progress.Model
	processed int
	total     int
	done      bool
	printer   *message.Printer
}

// NewProgressModel creates a progress view for a batch of total items.
func NewProgressModel(label string, total int) ProgressModel {
	return ProgressModel{
		label:   label,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		total:   total,
		printer: message.NewPrinter(language.English),
	}
}

// Init initializes the model (Bubble Tea interface).
func (m ProgressModel) Init() tea.Cmd { return nil }

// Update handles messages and updates the model state (Bubble Tea interface).
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - len(m.label) - progressPadding*4
		m.bar.Width = min(max(width, progressMinWidth), progressMaxWidth)
	case BatchProgressMsg:
		m.processed = msg.Processed
		m.total = msg.Total
	case BatchDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the bar (Bubble Tea interface). Nothing is rendered once
// done, leaving the terminal clean for the command's own output.
func (m ProgressModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", progressPadding))
	b.WriteString(LabelStyle.Render(m.label))
	b.WriteString(" ")
	b.WriteString(m.bar.ViewAs(m.Percent()))
	b.WriteString(" ")
	b.WriteString(m.printer.Sprintf("%d/%d", m.processed, m.total))
	b.WriteString("\n")
	return b.String()
}

// Percent returns the completed fraction in [0, 1].
func (m ProgressModel) Percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(float64(m.processed)/float64(m.total), 1)
}

// ProgressReporter drives a ProgressModel in its own Bubble Tea program.
type ProgressReporter struct {
	program *tea.Program
	done    chan struct{}
}

// StartProgress starts a progress view writing to w. The program reads no
// input and installs no signal handler; the caller owns interruption.
func StartProgress(w io.Writer, label string, total int) *ProgressReporter {
	r := &ProgressReporter{
		program: tea.NewProgram(
			NewProgressModel(label, total),
			tea.WithOutput(w),
			tea.WithInput(nil),
			tea.WithoutSignalHandler(),
		),
		done: make(chan struct{}),
	}
	go func() {
		defer close(r.done)
		_, _ = r.program.Run()
	}()
	return r
}

// Update reports progress. It is safe to call from several goroutines.
func (r *ProgressReporter) Update(processed, total int) {
	r.program.Send(BatchProgressMsg{Processed: processed, Total: total})
}

// Stop ends the view and waits for the program to exit.
func (r *ProgressReporter) Stop() {
	r.program.Send(BatchDoneMsg{})
	<-r.done
}
