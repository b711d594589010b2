package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/advdiff/internal/field"
	"github.com/san-kum/advdiff/internal/integrate"
	"github.com/san-kum/advdiff/internal/stencil"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model runs the solver incrementally and redraws the field each
// frame.
type Model struct {
	op    *stencil.Operator
	integ integrate.Integrator

	u       *field.Grid
	initial *field.Grid

	t, dt         float64
	step, steps   int
	stepsPerFrame int
	fps           int

	running bool
	err     error
}

// NewModel prepares a live view advancing u by stepsPerFrame solver
// steps per animation frame.
func NewModel(op *stencil.Operator, integ integrate.Integrator, u *field.Grid, dt float64, steps, stepsPerFrame, fps int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if fps < 1 {
		fps = 30
	}
	return Model{
		op:            op,
		integ:         integ,
		u:             u,
		initial:       u.Clone(),
		dt:            dt,
		steps:         steps,
		stepsPerFrame: stepsPerFrame,
		fps:           fps,
		running:       true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input and advances the simulation on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.u.Assign(m.initial); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.t = 0
			m.step = 0
			m.err = nil
		}
	case TickMsg:
		if m.running && m.err == nil && m.step < m.steps {
			for i := 0; i < m.stepsPerFrame && m.step < m.steps; i++ {
				if err := m.integ.Step(m.op, m.u, m.t, m.dt); err != nil {
					m.err = err
					return m, tea.Quit
				}
				m.step++
				m.t = float64(m.step) * m.dt
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf("advdiff live — %dx%d", m.u.NX(), m.u.NY()))

	stats := labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.4f", m.t)) + "\n" +
		labelStyle.Render("step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.step, m.steps)) + "\n" +
		labelStyle.Render("integrator") + valueStyle.Render(m.integ.Name())
	if !m.running {
		stats += "\n" + labelStyle.Render("state") + valueStyle.Render("paused")
	}
	if m.step >= m.steps {
		stats += "\n" + labelStyle.Render("state") + valueStyle.Render("done")
	}

	help := helpStyle.Render("space pause · r reset · q quit")

	return header + "\n" + Heatmap(m.u, 40, 20) + "\n" + stats + "\n" + help + "\n"
}
