// Package ui renders the interactive progress view of `stylename transform <dir>`.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"stylename/internal/buildpipeline"
)

// stageInfo: подпись и доля готовности файла, который сейчас в этой стадии.
var stageInfo = map[buildpipeline.Stage]struct {
	label  string
	weight float64
}{
	buildpipeline.StageLoad:      {"loading", 0.1},
	buildpipeline.StageParse:     {"parsing", 0.3},
	buildpipeline.StageTransform: {"rewriting", 0.6},
	buildpipeline.StageEmit:      {"emitting", 0.9},
}

const statusColumn = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	errTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	busyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

type fileItem struct {
	path   string
	status string // queued, a stage label, done, cached, error
	stage  buildpipeline.Stage
	err    string
}

func (it fileItem) finished() bool {
	return it.status == "done" || it.status == "cached" || it.status == "error"
}

type progressModel struct {
	title      string
	events     <-chan buildpipeline.Event
	spinner    spinner.Model
	bar        progress.Model
	items      []fileItem
	byPath     map[string]int
	stageLabel string
	width      int
	done       bool
}

type eventMsg buildpipeline.Event
type doneMsg struct{}

// NewProgressModel lists files in the given order and updates them from
// events until the channel is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(busyStyle)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		items:   make([]fileItem, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.items[i] = fileItem{path: f, status: "queued"}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(buildpipeline.Event(msg)), m.waitEvent())
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
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := m.title
	if m.stageLabel != "" {
		header += " (" + m.stageLabel + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusColumn-4, 20)
	for _, it := range m.items {
		name := truncate(it.path, nameWidth)
		fmt.Fprintf(&b, "  %s %s", statusStyle(it.status).Render(fmt.Sprintf("%*s", statusColumn, it.status)), name)
		if it.err != "" {
			room := max(m.width-statusColumn-runewidth.StringWidth(name)-6, 10)
			b.WriteString("  " + errTextStyle.Render(truncate(it.err, room)))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	b.WriteString(m.counts())
	b.WriteByte('\n')
	return b.String()
}

// counts is the footer line: готовые, из кэша, с ошибкой.
func (m *progressModel) counts() string {
	var done, cached, failed int
	for _, it := range m.items {
		switch it.status {
		case "done":
			done++
		case "cached":
			cached++
		case "error":
			failed++
		}
	}
	return fmt.Sprintf("%d/%d rewritten, %d cached, %d failed", done+cached+failed, len(m.items), cached, failed)
}

func (m *progressModel) waitEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	if ev.File == "" {
		if label != "" {
			m.stageLabel = label
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	it := &m.items[i]
	if label != "" {
		it.status, it.stage = label, ev.Stage
	}
	if ev.Err != nil {
		it.err = ev.Err.Error()
	}
	return m.bar.SetPercent(m.percent())
}

// percent is the mean per-file progress; finished files count as 1.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	var total float64
	for _, it := range m.items {
		if it.finished() {
			total++
			continue
		}
		total += stageInfo[it.stage].weight
	}
	return total / float64(len(m.items))
}

func statusLabel(stage buildpipeline.Stage, status buildpipeline.Status) string {
	if status == buildpipeline.StatusWorking {
		return stageInfo[stage].label
	}
	switch status {
	case buildpipeline.StatusQueued, buildpipeline.StatusDone, buildpipeline.StatusCached, buildpipeline.StatusError:
		return string(status)
	}
	return ""
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "done", "cached":
		return okStyle
	case "error":
		return failStyle
	case "queued", "":
		return idleStyle
	}
	return busyStyle
}

// truncate cuts by display width; "..." is added when there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
