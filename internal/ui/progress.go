package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tongue/internal/driver"
)

const statusWidth = 8

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	summaryStyle = lipgloss.NewStyle().Faint(true)
)

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
}

type fileItem struct {
	path    string
	stage   driver.Stage
	status  driver.Status
	elapsed time.Duration
}

func (it fileItem) finished() bool {
	switch it.status {
	case driver.StatusDone, driver.StatusError, driver.StatusCached:
		return true
	}
	return false
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file progress
// of a directory run. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items[i] = fileItem{path: file, stage: driver.StageLoad, status: driver.StatusQueued}
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
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
			m.prog.Width = max(10, msg.Width-4)
		}
		return m, nil
	case tea.KeyMsg:
		// прерывание оставляем пользователю, работа в фоне продолжится до конца
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case progress.FrameMsg:
		model, cmd := m.prog.Update(msg)
		m.prog = model.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(20, m.width-statusWidth-14)
	for _, item := range m.items {
		label := statusLabel(item.stage, item.status)
		fmt.Fprintf(&b, "  %s %s", styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, label)), truncate(item.path, nameWidth))
		if item.finished() && item.elapsed > 0 {
			b.WriteString(summaryStyle.Render(fmt.Sprintf("  %.1fms", float64(item.elapsed)/float64(time.Millisecond))))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(m.summary()))
	b.WriteString("\n")
	return b.String()
}

// summary counts files per outcome.
func (m *progressModel) summary() string {
	var ok, failed, cached, pending int
	for _, item := range m.items {
		switch item.status {
		case driver.StatusDone:
			ok++
		case driver.StatusError:
			failed++
		case driver.StatusCached:
			cached++
		default:
			pending++
		}
	}
	return fmt.Sprintf("%d ok, %d with errors, %d cached, %d pending", ok, failed, cached, pending)
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent updates the file the event is about and returns the progress
// bar animation. Events for unknown files are ignored.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.stage = ev.Stage
	item.status = ev.Status
	if ev.Elapsed > 0 {
		item.elapsed = ev.Elapsed
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		if item.finished() {
			total += 1.0
		} else {
			total += progressFromStage(item.stage, item.status)
		}
	}
	return total / float64(len(m.items))
}

func progressFromStage(stage driver.Stage, status driver.Status) float64 {
	if status == driver.StatusQueued {
		return 0
	}
	switch stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageTokenize, driver.StageParse:
		return 0.5
	default:
		return 0
	}
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	if status != driver.StatusWorking {
		return string(status)
	}
	switch stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageTokenize:
		return "lexing"
	case driver.StageParse:
		return "parsing"
	default:
		return string(stage)
	}
}

func styleStatus(status driver.Status) lipgloss.Style {
	switch status {
	case driver.StatusDone, driver.StatusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case driver.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case driver.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

// truncate cuts value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
