package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/miner"
)

// Application states.
const (
	StateForm = iota
	StateRunning
	StateDone
)

const maxLogLines = 500

// Model is the Bubble Tea model for the interactive miner.
type Model struct {
	state    int
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	base     miner.Config
	starter  SessionStarter
	mailbox  *mailbox
	worker   *miner.Worker
	lines    []string
	progress miner.Progress
	contract contract.Contract
	summary  *miner.Summary
	stopping bool
	err      error
	width    int
	height   int
}

// NewModel creates a Model whose form is prefilled from base.
func NewModel(base miner.Config, starter SessionStarter) Model {
	return Model{
		state:   StateForm,
		inputs:  NewFormInputs(base),
		spinner: NewSpinner(),
		base:    base,
		starter: starter,
		mailbox: newMailbox(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopWorker()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SessionStartedMsg:
		m.worker = msg.Worker
		if m.stopping {
			m.worker.Stop()
		}

		return m, nil

	case SessionErrorMsg:
		m.mailbox.close()
		m.err = msg.Err
		m.stopping = false
		m.state = StateForm
		return m, textinput.Blink

	case EventBatchMsg:
		if msg.box != m.mailbox {
			return m, nil
		}

		for _, event := range msg.Msgs {
			m = m.apply(event)
		}

		if m.state == StateRunning {
			return m, m.mailbox.wait()
		}

		return m, nil

	case spinner.TickMsg:
		if m.state != StateRunning {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateRunning:
		return m.updateRunning(msg)
	case StateDone:
		return m.updateDone(msg)
	}

	return m, nil
}

// apply folds one engine event into the model.
func (m Model) apply(event tea.Msg) Model {
	switch event := event.(type) {
	case LogLineMsg:
		m.lines = append(m.lines, event.Line)
		if len(m.lines) > maxLogLines {
			m.lines = m.lines[len(m.lines)-maxLogLines:]
		}
	case ProgressMsg:
		m.progress = event.Progress
	case ContractStartedMsg:
		m.contract = event.Contract
	case SessionEndedMsg:
		summary := event.Summary
		m.summary = &summary
		m.err = event.Err
		m.stopping = false
		m.state = StateDone
	}

	return m
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return m.focusField((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m.focusField((m.focus + fieldCount - 1) % fieldCount)
		case "enter":
			return m.startSession()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) focusField(index int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = index
	return m, m.inputs[m.focus].Focus()
}

func (m Model) startSession() (tea.Model, tea.Cmd) {
	config, err := BuildSessionConfig(m.base, m.inputs)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	m.lines = nil
	m.progress = miner.Progress{}
	m.contract = contract.Contract{}
	m.summary = nil
	m.state = StateRunning
	m.mailbox = newMailbox()

	starter := m.starter
	callbacks := m.mailbox.callbacks()
	start := func() tea.Msg {
		worker, err := starter(context.Background(), config, callbacks)
		if err != nil {
			return SessionErrorMsg{Err: err}
		}

		return SessionStartedMsg{Worker: worker}
	}

	return m, tea.Batch(start, m.mailbox.wait(), m.spinner.Tick)
}

func (m Model) updateRunning(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "s", "esc":
			m.stopWorker()
			m.stopping = true
			return m, nil
		case "q":
			m.stopWorker()
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) updateDone(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc":
			m.state = StateForm
			m.err = nil
			return m, textinput.Blink
		case "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) stopWorker() {
	if m.worker != nil {
		m.worker.Stop()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateForm:
		s.WriteString(TitleStyle.Render("Replay Miner - New Session"))
		s.WriteString("\n\n")

		for i, input := range m.inputs {
			label := LabelStyle.Render(fieldLabels[i])
			if i == m.focus {
				label = FocusedLabelStyle.Render(fieldLabels[i])
			}

			s.WriteString(label)
			s.WriteString(input.View())
			s.WriteString("\n")
		}

		if m.err != nil {
			s.WriteString("\n")
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n")
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("tab: next field | enter: start | ctrl+c: quit"))

	case StateRunning:
		title := "Mining"
		if !m.contract.IsZero() {
			title = fmt.Sprintf("Mining %s", m.contract)
		}

		s.WriteString(m.spinner.View())
		s.WriteString(" ")
		s.WriteString(TitleStyle.Render(title))
		s.WriteString("\n")
		s.WriteString(ProgressStyle.Render(m.progress.Label()))
		s.WriteString("\n\n")

		for _, line := range tail(m.lines, m.logHeight()) {
			s.WriteString(FormatLogLine(line))
			s.WriteString("\n")
		}

		s.WriteString("\n")

		help := "s: stop | q: stop and quit"
		if m.stopping {
			help = "stopping after the current check..."
		}

		s.WriteString(HelpStyle.Render(help))

	case StateDone:
		s.WriteString(TitleStyle.Render("Replay Miner - Session Ended"))
		s.WriteString("\n\n")

		if m.summary != nil {
			s.WriteString(FormatSummaryView(*m.summary))
		}

		if m.err != nil {
			s.WriteString("\n")
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n")
		}

		for _, line := range tail(m.lines, 5) {
			s.WriteString("\n")
			s.WriteString(FormatLogLine(line))
		}

		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("enter: new session | q: quit"))
	}

	return s.String()
}

func (m Model) logHeight() int {
	if m.height <= 0 {
		return 15
	}

	return max(m.height-7, 3)
}
