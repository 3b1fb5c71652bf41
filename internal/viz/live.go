package viz

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/brownian/internal/dynamo"
	"github.com/san-kum/brownian/internal/physics"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 600
	stepsPerFrame   = 5
	frictionFactor  = 1.25
)

type TickMsg time.Time

// Model holds the running particle and its display buffers.
type Model struct {
	particle   *physics.Particle
	integrator dynamo.Integrator
	noise      dynamo.NoiseSource
	stiffness  float64
	state      dynamo.State
	t, dt      float64
	steps      int
	canvas     *Canvas
	trail      []dynamo.State
	xHistory   []float64
	running    bool
}

func NewModel(p *physics.Particle, integ dynamo.Integrator, noise dynamo.NoiseSource, dt float64) Model {
	k := p.Stiffness
	if k == 0 {
		k = physics.DefaultStiffness
	}
	return Model{
		particle:   p,
		integrator: integ,
		noise:      noise,
		stiffness:  k,
		dt:         dt,
		canvas:     NewCanvas(width, height),
		trail:      make([]dynamo.State, 0, historyCapacity),
		xHistory:   make([]float64, 0, historyCapacity),
		running:    true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "f":
			m.toggleForce()
		case "r":
			m.reset()
		case "+", "=":
			m.scaleFriction(frictionFactor)
		case "-":
			m.scaleFriction(1 / frictionFactor)
		}
	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerFrame; i++ {
				m.step()
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) toggleForce() {
	if m.particle.Force == nil {
		m.particle.Force = physics.HarmonicForce(m.stiffness)
		m.particle.Stiffness = m.stiffness
		return
	}
	m.particle.Force = nil
	m.particle.Stiffness = 0
}

// scaleFriction multiplies gamma by f and rescales sigma so the bath
// temperature is unchanged.
func (m *Model) scaleFriction(f float64) {
	params := m.particle.GetParams()
	_ = m.particle.SetParam("gamma", params["gamma"]*f)
	_ = m.particle.SetParam("sigma", params["sigma"]*math.Sqrt(f))
}

func (m *Model) step() {
	m.state = m.integrator.Step(m.particle, m.state, m.dt, m.noise)
	m.steps++
	m.t = float64(m.steps) * m.dt

	m.trail = appendCapped(m.trail, m.state)
	m.xHistory = appendCapped(m.xHistory, m.state.X)
}

func appendCapped[T any](s []T, v T) []T {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m *Model) reset() {
	m.state = dynamo.State{}
	m.t = 0
	m.steps = 0
	m.trail = m.trail[:0]
	m.xHistory = m.xHistory[:0]
}

func (m *Model) draw() {
	DrawPhase(m.canvas, m.trail)
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render("phase space (x, v)\n" + m.canvas.String())

	var s strings.Builder
	title := "FREE PARTICLE"
	if m.particle.Force != nil {
		title = fmt.Sprintf("HARMONIC WELL (k=%.2f)", m.stiffness)
	}
	s.WriteString(headerStyle.Render(title) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.xHistory) > 1 {
		chart := asciigraph.Plot(m.xHistory, asciigraph.Height(6), asciigraph.Width(30), asciigraph.Caption("position"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.t))
	row("Steps", fmt.Sprintf("%d", m.steps))
	row("x", fmt.Sprintf("%+.4f", m.state.X))
	row("v", fmt.Sprintf("%+.4f", m.state.V))
	row("Energy", fmt.Sprintf("%.3f", m.particle.Energy(m.state)))
	params := m.particle.GetParams()
	for _, name := range slices.Sorted(maps.Keys(params)) {
		row(name, fmt.Sprintf("%.3f", params[name]))
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause F:Force R:Reset +/-:Friction Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
