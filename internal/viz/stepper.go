package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/shorsim/internal/measure"
	"github.com/san-kum/shorsim/internal/quantum"
	"github.com/san-kum/shorsim/internal/shor"
)

const (
	plotWidth  = 64
	plotHeight = 10
	topK       = 6
	autoDelay  = 400 * time.Millisecond
)

type TickMsg time.Time

// Stepper is a Bubble Tea model that walks one attempt stage by stage.
type Stepper struct {
	sizing shor.Sizing
	base   int
	seed   uint64
	engine *quantum.Engine

	run      *shor.Run
	history  []string
	auto     bool
	showHelp bool
	err      error
}

// NewStepper prepares an attempt for base a with the given seed.
func NewStepper(sz shor.Sizing, a int, seed uint64, e *quantum.Engine) (Stepper, error) {
	m := Stepper{sizing: sz, base: a, seed: seed, engine: e}
	if err := m.restart(); err != nil {
		return Stepper{}, err
	}
	return m, nil
}

func (m *Stepper) restart() error {
	run, err := shor.NewRun(shor.RunConfig{
		Modulus:   m.sizing.N,
		Base:      m.base,
		RegisterA: m.sizing.RegisterA,
		RegisterB: m.sizing.RegisterB,
		Source:    shor.NewSource(m.seed),
		Engine:    m.engine,
	})
	if err != nil {
		return err
	}
	m.run = run
	m.history = m.history[:0]
	m.err = nil
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(autoDelay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Stepper) Init() tea.Cmd { return nil }

func (m Stepper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "n":
			m.step()
		case "a":
			m.auto = !m.auto
			if m.auto {
				return m, tick()
			}
		case "r":
			m.seed++
			if err := m.restart(); err != nil {
				m.err = err
			}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.auto {
			return m, nil
		}
		m.step()
		if m.run.Done() || m.err != nil {
			m.auto = false
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m *Stepper) step() {
	if m.err != nil || m.run.Done() {
		return
	}
	stage, err := m.run.Next()
	if err != nil {
		m.err = err
		return
	}
	m.history = append(m.history, m.describe(stage))
}

func (m *Stepper) describe(stage shor.Stage) string {
	switch stage {
	case shor.StageMeasureB:
		return fmt.Sprintf("%s: y = %d", stage, m.run.Y())
	case shor.StageMeasureA:
		return fmt.Sprintf("%s: c = %d", stage, m.run.C())
	case shor.StageExtract:
		ex, _ := m.run.Extraction()
		if ex.Found() {
			return fmt.Sprintf("%s: r = %d (%s)", stage, ex.Period, ex.Outcome)
		}
		return fmt.Sprintf("%s: %s", stage, ex.Outcome)
	default:
		return fmt.Sprintf("%s: %d nonzero", stage, m.run.State().Support())
	}
}

// Run returns the attempt being stepped.
func (m Stepper) Run() *shor.Run { return m.run }

func (m Stepper) Seed() uint64 { return m.seed }

func (m Stepper) Err() error { return m.err }

// focus picks the register whose distribution is most informative at the
// current stage.
func (m Stepper) focus() quantum.Register {
	stage, ok := m.run.Completed()
	if ok && (stage == shor.StageOracle || stage == shor.StageMeasureB) {
		return quantum.RegisterB
	}
	return quantum.RegisterA
}

func (m Stepper) View() string {
	st := themeStyles(CurrentTheme)
	var s strings.Builder

	title := fmt.Sprintf("SHOR  N=%d  a=%d  seed=%d", m.sizing.N, m.base, m.seed)
	s.WriteString(st.header.Render(title) + "\n")

	done := len(m.history)
	progress := float64(done) / float64(len(shor.Stages))
	next := "done"
	if !m.run.Done() {
		next = m.run.Pending().String()
	}
	s.WriteString(st.label.Render("Progress") + st.value.Render(ProgressBar(progress, 28)) +
		fmt.Sprintf(" %d/%d", done, len(shor.Stages)) + "\n")
	s.WriteString(st.label.Render("Next") + st.value.Render(next) + "\n")
	s.WriteString(st.label.Render("Qubits") + st.value.Render(
		fmt.Sprintf("m=%d n=%d (%d total)", m.sizing.RegisterA, m.sizing.RegisterB, m.sizing.Total())) + "\n")

	if state := m.run.State(); state != nil {
		reg := m.focus()
		if dist, err := measure.Probabilities(state, reg); err == nil {
			caption := fmt.Sprintf("register %v distribution", reg)
			s.WriteString(st.graph.Render(PlotDistribution(dist, plotWidth, plotHeight, caption)) + "\n")
			for _, line := range FormatTop(dist, topK) {
				s.WriteString("  " + st.peak.Render(line) + "\n")
			}
		}
	}

	if len(m.history) > 0 {
		s.WriteString("\n" + st.label.Render("History") + "\n")
		for _, h := range m.history {
			s.WriteString("  " + st.value.Render(h) + "\n")
		}
	}

	if ex, ok := m.run.Extraction(); ok {
		s.WriteString("\n" + st.label.Render("Result"))
		if ex.Found() {
			s.WriteString(st.value.Render(fmt.Sprintf("period %d", ex.Period)))
		}
		if ex.Factors[0] > 0 {
			s.WriteString(st.peak.Render(fmt.Sprintf("  %d = %d × %d", m.sizing.N, ex.Factors[0], ex.Factors[1])))
		} else {
			s.WriteString(st.value.Render("  " + ex.Outcome.String()))
		}
		s.WriteString("\n")
	}

	if m.err != nil {
		s.WriteString("\n" + st.err.Render("error: "+m.err.Error()) + "\n")
	}

	s.WriteString(st.help.Render(Separator(40) + "\nSP/N:Step  A:Auto  R:Reseed  T:Theme  ?:Help  Q:Quit"))

	view := st.panel.Render(s.String())
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, helpText, view)
	}
	return view
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space/N  - Execute next stage       ║
║  A        - Toggle auto-advance      ║
║  R        - Restart with next seed   ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`
