// Package tui renders a live descent view on top of bubbletea.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/landersim/internal/dynamics"
	"github.com/san-kum/landersim/internal/lander"
	"github.com/san-kum/landersim/internal/scenario"
	"github.com/san-kum/landersim/internal/sim"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Touchdowns slower than this count as a landing rather than a crash.
const safeTouchdown = 1.0

type phase int

const (
	phaseFlying phase = iota
	phaseLanded
	phaseCrashed
	phaseEscaped
)

type model struct {
	scn   scenario.Scenario
	simul *sim.Simulator
	dyn   *dynamics.Model
	st    lander.State

	phase     phase
	paused    bool
	speed     float64
	impact    float64
	simTime   float64
	altitudes []float64
	lastFrame time.Time
	fps       float64
	err       error

	width  int
	height int
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func newModel(scn scenario.Scenario, dyn *dynamics.Model, integ lander.Integrator, st lander.State) *model {
	return &model{
		scn:       scn,
		simul:     sim.New(dyn, integ),
		dyn:       dyn,
		st:        st,
		speed:     1.0,
		altitudes: make([]float64, 0, 120),
		width:     80,
		height:    24,
	}
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.paused || m.phase != phaseFlying {
			return m, tick()
		}

		now := time.Now()
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 1.0 / dt
			}
		}
		m.lastFrame = now

		// Wall-clock pacing: one frame covers speed*16ms of sim time.
		steps := int(m.speed * 0.016 / m.st.Dt)
		if steps < 1 {
			steps = 1
		}
		for i := 0; i < steps && m.phase == phaseFlying; i++ {
			if err := m.simul.Tick(&m.st); err != nil {
				m.err = err
				m.phase = phaseCrashed
				break
			}
			m.simTime = m.st.Time
			m.checkPhase()
		}

		m.altitudes = append(m.altitudes, m.st.Altitude(m.dyn.Planet.Radius))
		if len(m.altitudes) > 120 {
			m.altitudes = m.altitudes[1:]
		}
		return m, tick()
	}
	return m, nil
}

func (m *model) checkPhase() {
	alt := m.st.Altitude(m.dyn.Planet.Radius)
	if alt <= 0 {
		m.impact = m.st.Velocity.Norm()
		if m.impact <= safeTouchdown {
			m.phase = phaseLanded
		} else {
			m.phase = phaseCrashed
		}
		return
	}
	if alt > 10*m.dyn.Planet.Radius && m.st.DescentRate() < 0 {
		m.phase = phaseEscaped
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "escape":
		return m, tea.Quit
	case " ":
		if m.st.Chute == lander.ChuteNotDeployed {
			m.st.Chute = lander.ChuteDeployed
		}
	case "a":
		m.st.AutopilotEnabled = !m.st.AutopilotEnabled
	case "s":
		m.st.StabilizedAttitude = !m.st.StabilizedAttitude
	case "p":
		m.paused = !m.paused
	case "+", "=":
		m.speed = math.Min(m.speed*2, 64)
	case "-", "_":
		m.speed = math.Max(m.speed/2, 0.25)
	case "0":
		m.speed = 1.0
	case "up", "k":
		if !m.st.AutopilotEnabled {
			m.st.Throttle = math.Min(m.st.Throttle+0.1, 1)
		}
	case "down", "j":
		if !m.st.AutopilotEnabled {
			m.st.Throttle = math.Max(m.st.Throttle-0.1, 0)
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("   ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("        " + cyan.Render("l a n d e r s i m") + "\n")
	b.WriteString(dimmer.Render("   ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	b.WriteString(fmt.Sprintf("   %s %s\n\n",
		m.phaseBadge(), dim.Render(m.scn.Description)))

	alt := m.st.Altitude(m.dyn.Planet.Radius)
	speed := m.st.Velocity.Norm()
	rate := m.st.DescentRate()

	b.WriteString(row("time", fmt.Sprintf("%.1f s", m.simTime)))
	b.WriteString(row("altitude", fmt.Sprintf("%.1f m", alt)))
	b.WriteString(row("speed", fmt.Sprintf("%.1f m/s", speed)))
	b.WriteString(row("descent rate", fmt.Sprintf("%+.1f m/s", rate)))
	b.WriteString(row("fuel", m.fuelBar()))
	b.WriteString(row("throttle", m.throttleBar()))
	b.WriteString(row("parachute", m.chuteLabel()))
	b.WriteString(row("autopilot", onOff(m.st.AutopilotEnabled)))
	b.WriteString(row("stabilizer", onOff(m.st.StabilizedAttitude)))

	if len(m.altitudes) > 1 {
		b.WriteString("\n   " + dim.Render("alt ") + cyan.Render(sparkline(m.altitudes, 40)) + "\n")
	}

	switch m.phase {
	case phaseLanded:
		b.WriteString("\n   " + green.Render(fmt.Sprintf("touchdown at %.2f m/s", m.impact)) + "\n")
	case phaseCrashed:
		if m.err != nil {
			b.WriteString("\n   " + red.Render("simulation failed: "+m.err.Error()) + "\n")
		} else {
			b.WriteString("\n   " + red.Render(fmt.Sprintf("crashed at %.1f m/s", m.impact)) + "\n")
		}
	case phaseEscaped:
		b.WriteString("\n   " + yellow.Render("left the sphere of influence") + "\n")
	}

	b.WriteString("\n" + dim.Render("   space chute  a autopilot  s stabilize  ↑↓ throttle  ± speed  p pause  q quit") + "\n")

	return b.String()
}

func (m model) phaseBadge() string {
	switch m.phase {
	case phaseLanded:
		return green.Render("● landed")
	case phaseCrashed:
		return red.Render("● crashed")
	case phaseEscaped:
		return yellow.Render("● escaped")
	}
	if m.paused {
		return yellow.Render("○ paused")
	}
	return green.Render("● flying") + dim.Render(fmt.Sprintf("  %.2gx %.0ffps", m.speed, m.fps))
}

func (m model) fuelBar() string {
	return gauge(m.st.Fuel, green) + white.Render(fmt.Sprintf(" %3.0f%%", m.st.Fuel*100))
}

func (m model) throttleBar() string {
	return gauge(m.st.Throttle, yellow) + white.Render(fmt.Sprintf(" %3.0f%%", m.st.Throttle*100))
}

func (m model) chuteLabel() string {
	switch m.st.Chute {
	case lander.ChuteDeployed:
		return green.Render("deployed")
	case lander.ChuteLost:
		return red.Render("lost")
	}
	return dim.Render("stowed")
}

func row(label, value string) string {
	return fmt.Sprintf("   %s %s\n", dim.Render(fmt.Sprintf("%-13s", label)), value)
}

func onOff(enabled bool) string {
	if enabled {
		return green.Render("on")
	}
	return dim.Render("off")
}

func gauge(frac float64, style lipgloss.Style) string {
	const width = 20
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * width)
	return style.Render(strings.Repeat("█", filled)) + dimmer.Render(strings.Repeat("─", width-filled))
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// Run starts the live view on an initialized state.
func Run(scn scenario.Scenario, dyn *dynamics.Model, integ lander.Integrator, st lander.State) error {
	p := tea.NewProgram(newModel(scn, dyn, integ, st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
