package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/michelson/errors"
	"github.com/wippyai/michelson/michelson"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	primStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const browseWindow = 15

type modelState int

const (
	stateInput modelState = iota
	stateBrowse
	stateShowResult
)

type interactiveModel struct {
	err      error
	tr       *michelson.Transcoder
	report   *report
	prims    []*michelson.Prim
	input    textinput.Model
	selected int
	state    modelState
}

type inspectedMsg struct {
	err    error
	report *report
}

func newInteractiveModel(tr *michelson.Transcoder) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = `{"prim":"PUSH","args":[{"prim":"nat"},{"int":"1"}]}`
	ti.Prompt = "json: "
	ti.Width = 80
	ti.Focus()

	return &interactiveModel{
		tr:    tr,
		prims: tr.Registry().Prims(),
		input: ti,
		state: stateInput,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) inspect() tea.Msg {
	rep, err := inspect(m.tr, []byte(m.input.Value()))
	return inspectedMsg{report: rep, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInput {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.prims)-1 {
				m.selected++
			}

		case "tab":
			switch m.state {
			case stateInput:
				m.state = stateBrowse
				m.input.Blur()
			case stateBrowse:
				m.state = stateInput
				m.input.Focus()
			}
			return m, nil

		case "enter":
			switch m.state {
			case stateInput:
				return m, m.inspect
			case stateBrowse:
				m.input.SetValue(template(m.prims[m.selected]))
				m.input.CursorEnd()
				m.input.Focus()
				m.state = stateInput
				return m, nil
			case stateShowResult:
				m.state = stateInput
				m.report = nil
				m.err = nil
				m.input.Focus()
				return m, nil
			}

		case "esc":
			if m.state != stateInput {
				m.state = stateInput
				m.report = nil
				m.err = nil
				m.input.Focus()
				return m, nil
			}
		}

	case inspectedMsg:
		m.report = msg.report
		m.err = msg.err
		m.state = stateShowResult
		m.input.Blur()
		return m, nil
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// template returns a JSON skeleton for p with placeholder arguments.
func template(p *michelson.Prim) string {
	lo, _ := p.Arity()
	if lo == 0 {
		return fmt.Sprintf(`{"prim":%q}`, p.Name)
	}
	args := make([]string, lo)
	for i := range args {
		args[i] = `{"prim":"Unit"}`
	}
	return fmt.Sprintf(`{"prim":%q,"args":[%s]}`, p.Name, strings.Join(args, ","))
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Michelson Inspector"))
	b.WriteString(fmt.Sprintf(" %d primitives, max depth %d", len(m.prims), m.tr.MaxDepth()))
	b.WriteString("\n\n")

	switch m.state {
	case stateInput:
		b.WriteString("Enter a Micheline JSON expression:\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter inspect • tab browse primitives • ctrl+c quit"))

	case stateBrowse:
		b.WriteString("Select a primitive:\n\n")
		start := max(0, m.selected-browseWindow/2)
		end := min(len(m.prims), start+browseWindow)
		for i := start; i < end; i++ {
			line := m.formatPrim(m.prims[i])
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter use as template • tab back • q quit"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(fmt.Sprintf("unions: %s\n\n", typeStyle.Render(strings.Join(m.report.unions, ", "))))
			for _, l := range m.report.tree {
				b.WriteString(strings.Repeat("  ", l.depth))
				b.WriteString(primStyle.Render(l.label))
				b.WriteString("  ")
				b.WriteString(typeStyle.Render(l.detail))
				b.WriteString("\n")
			}
			b.WriteString("\n")
			b.WriteString(resultStyle.Render(fmt.Sprintf("packed: %x\nhash:   %s", m.report.packed, m.report.hash)))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatPrim(p *michelson.Prim) string {
	return fmt.Sprintf("0x%02x %s %s", p.Tag, primStyle.Render(p.Shape()), typeStyle.Render(p.Family.String()))
}

func runInteractive(a *app) error {
	out, ok := a.stdout.(*os.File)
	if !ok || !term.IsTerminal(int(out.Fd())) {
		return errors.InvalidInput(errors.PhaseConfig, "interactive mode needs a terminal on stdout")
	}

	p := tea.NewProgram(newInteractiveModel(a.tr),
		tea.WithAltScreen(),
		tea.WithInput(a.stdin),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}
