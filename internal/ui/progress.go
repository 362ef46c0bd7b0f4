// Package ui renders batch progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cxxpy/internal/pipeline"
)

const statusWidth = 10

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyles = map[string]lipgloss.Style{
		"done":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cached": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"error":  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"queued": lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
	busyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// fileItem is one input file as the view knows it.
type fileItem struct {
	path     string
	status   pipeline.Status
	stage    pipeline.Stage
	units    int
	warnings int
	cached   bool
	err      string
}

// label is the status column text.
func (it fileItem) label() string {
	switch it.status {
	case pipeline.StatusDone:
		if it.cached {
			return "cached"
		}
		return "done"
	case pipeline.StatusError:
		return "error"
	case pipeline.StatusWorking:
		return stageVerb(it.stage)
	}
	return "queued"
}

// detail is the text after the file name: unit and warning counts for
// finished files, the error for failed ones.
func (it fileItem) detail() string {
	switch it.status {
	case pipeline.StatusDone:
		d := plural(it.units, "unit")
		if it.warnings > 0 {
			d += ", " + plural(it.warnings, "warning")
		}
		return d
	case pipeline.StatusError:
		return it.err
	}
	return ""
}

func (it fileItem) finished() bool {
	return it.status == pipeline.StatusDone || it.status == pipeline.StatusError
}

// share is how far the file is through decode, lower and write.
func (it fileItem) share() float64 {
	if it.finished() {
		return 1
	}
	if it.status != pipeline.StatusWorking {
		return 0
	}
	switch it.stage {
	case pipeline.StageDecode:
		return 0.2
	case pipeline.StageLower:
		return 0.5
	case pipeline.StageWrite:
		return 0.9
	}
	return 0
}

type progressModel struct {
	title   string
	events  <-chan pipeline.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
}

type eventMsg pipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that shows per-file lowering
// state and a running summary of lowered units, cache hits and warnings.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = busyStyle

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   make([]fileItem, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.items[i] = fileItem{path: file, status: pipeline.StatusQueued}
		m.index[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(pipeline.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for one pipeline event; a closed channel ends the program.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	it := &m.items[idx]
	it.status, it.stage = ev.Status, ev.Stage
	switch ev.Status {
	case pipeline.StatusDone:
		it.units, it.warnings, it.cached = ev.Units, ev.Warnings, ev.Cached
	case pipeline.StatusError:
		if ev.Err != nil {
			it.err = ev.Err.Error()
		}
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, it := range m.items {
		total += it.share()
	}
	return total / float64(len(m.items))
}

// batchSummary totals the finished files.
type batchSummary struct {
	finished, units, cached, warnings, failed int
}

func (m *progressModel) summary() batchSummary {
	var s batchSummary
	for _, it := range m.items {
		if !it.finished() {
			continue
		}
		s.finished++
		if it.status == pipeline.StatusError {
			s.failed++
			continue
		}
		s.units += it.units
		s.warnings += it.warnings
		if it.cached {
			s.cached++
		}
	}
	return s
}

func (m *progressModel) header() string {
	s := m.summary()
	parts := []string{fmt.Sprintf("%s %d/%d files", m.title, s.finished, len(m.items)), plural(s.units, "unit")}
	if s.cached > 0 {
		parts = append(parts, fmt.Sprintf("%d cached", s.cached))
	}
	if s.warnings > 0 {
		parts = append(parts, plural(s.warnings, "warning"))
	}
	if s.failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.failed))
	}
	text := strings.Join(parts, ", ")
	if m.done {
		return "done: " + text
	}
	return m.spinner.View() + " " + text
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n\n")

	nameWidth := max(m.width/2, 20)
	detailWidth := max(m.width-statusWidth-nameWidth-6, 10)
	for _, it := range m.items {
		label := it.label()
		style, ok := statusStyles[label]
		if !ok {
			style = busyStyle
		}
		name := truncate(it.path, nameWidth)
		line := fmt.Sprintf("  %s %s", style.Render(fmt.Sprintf("%*s", statusWidth, label)), name)
		if d := it.detail(); d != "" {
			pad := strings.Repeat(" ", nameWidth-runewidth.StringWidth(name)+2)
			line += pad + detailStyle.Render(truncate(d, detailWidth))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func stageVerb(stage pipeline.Stage) string {
	switch stage {
	case pipeline.StageDecode:
		return "decoding"
	case pipeline.StageLower:
		return "lowering"
	case pipeline.StageWrite:
		return "writing"
	}
	return "working"
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
