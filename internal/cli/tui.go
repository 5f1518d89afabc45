package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/autotype/pkg/animation"
	"github.com/matzehuels/autotype/pkg/render"
)

// Status bar styles
var (
	statusBarStyle = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
	statusKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	statusDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PreviewModel - Live animation preview
// =============================================================================

type (
	tickMsg  time.Time
	resetMsg time.Time
	fillMsg  time.Time
)

// PreviewModel is the bubbletea model that plays an animation in the
// terminal. Each cadence of the animator is driven by its own tea.Tick.
type PreviewModel struct {
	ctx  context.Context
	anim *animation.Animator
	term *render.Terminal

	view   string
	err    error
	width  int
	height int
	paused bool
	fill   bool
}

// NewPreviewModel creates a preview of anim rendered with term. When fill
// is false the autofill cadence is not scheduled, though "f" still applies
// one step.
func NewPreviewModel(ctx context.Context, anim *animation.Animator, term *render.Terminal, fill bool) PreviewModel {
	m := PreviewModel{ctx: ctx, anim: anim, term: term, fill: fill}
	m.rerender()
	return m
}

func (m PreviewModel) Init() tea.Cmd {
	cfg := m.anim.Config()
	cmds := []tea.Cmd{
		scheduleTick(cfg.TickInterval),
		scheduleReset(cfg.ResetInterval),
	}
	if m.fill && cfg.FillInterval > 0 {
		cmds = append(cmds, scheduleFill(cfg.FillInterval))
	}
	return tea.Batch(cmds...)
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cfg := m.anim.Config()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.anim.Reset(m.ctx)
		case "f":
			if m.anim.Fill(m.ctx) {
				m.rerender()
			}
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		if !m.paused && m.anim.Tick(m.ctx) {
			m.rerender()
		}
		return m, scheduleTick(cfg.TickInterval)
	case resetMsg:
		if !m.paused {
			m.anim.Reset(m.ctx)
		}
		return m, scheduleReset(cfg.ResetInterval)
	case fillMsg:
		if !m.paused && m.anim.Fill(m.ctx) {
			m.rerender()
		}
		return m, scheduleFill(cfg.FillInterval)
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	body := m.view
	if m.err != nil {
		body = styleIconError.Render("render failed: " + m.err.Error())
	}
	if m.height > 2 {
		body = lastLines(body, m.height-2)
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.statusBar())

	return b.String()
}

func (m PreviewModel) statusBar() string {
	state := m.anim.State().String()
	switch {
	case m.paused:
		state = StyleWarning.Render("paused")
	case m.anim.State() == animation.StateCompleted:
		state = StyleSuccess.Render(state)
	}
	left := fmt.Sprintf("cycle %d  %s  %3.0f%%", m.anim.Cycle(), state, m.anim.Progress()*100)
	help := fmt.Sprintf("%s pause  %s reset  %s fill  %s quit",
		statusKeyStyle.Render("space"),
		statusKeyStyle.Render("r"),
		statusKeyStyle.Render("f"),
		statusKeyStyle.Render("q"))
	return statusBarStyle.Render(left + statusDimStyle.Render("  │  ") + help)
}

// rerender renders the published record. Errors are kept for View so the
// preview keeps running.
func (m *PreviewModel) rerender() {
	md, err := render.RecordMarkdown(m.anim.Current())
	if err == nil {
		md, err = m.term.Render(md)
	}
	if err != nil {
		m.err = err
		return
	}
	m.view, m.err = md, nil
}

func scheduleTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func scheduleReset(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return resetMsg(t) })
}

func scheduleFill(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return fillMsg(t) })
}

// lastLines keeps the last n lines of s, so the part being typed stays
// on screen.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
