package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Waits shorter than this are not worth an elapsed counter.
const elapsedAfter = 2 * time.Second

type waitDoneMsg struct {
	err error
}

// waitSpinnerModel animates a label until the wait command reports back.
// It is shared by `predict` and the shell's `wait`.
type waitSpinnerModel struct {
	spinner spinner.Model
	label   string
	wait    tea.Cmd
	now     func() time.Time
	started time.Time
	err     error
	done    bool
}

func newWaitSpinnerModel(label string, wait tea.Cmd, now func() time.Time) waitSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return waitSpinnerModel{
		spinner: s,
		label:   label,
		wait:    wait,
		now:     now,
		started: now(),
	}
}

func (m waitSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m waitSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case waitDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m waitSpinnerModel) View() string {
	if m.done {
		return ""
	}

	view := fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	if elapsed := m.now().Sub(m.started); elapsed >= elapsedAfter {
		view += fmt.Sprintf(" (%ds)", int(elapsed.Seconds()))
	}
	return view
}

// runWaitSpinner shows label on output until wait returns and passes its
// error through.
func runWaitSpinner(ctx context.Context, output io.Writer, label string, now func() time.Time, wait func(context.Context) error) error {
	waitCmd := func() tea.Msg {
		return waitDoneMsg{err: wait(ctx)}
	}

	p := tea.NewProgram(
		newWaitSpinnerModel(label, waitCmd, now),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(waitSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
