// Package editor is the terminal editor for one day's log.
//
// The text is saved with ctrl+s, autosaved on a timer, and saved once more
// when the editor closes. A failed save is shown in the status line and
// the editor stays open so the next save can retry.
package editor

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gorewood/easywork/internal/autosave"
	"github.com/gorewood/easywork/internal/worklog"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

const helpText = "ctrl+s save • ctrl+y copy • esc quit"

// autosaveMsg fires every autosave interval.
type autosaveMsg struct{}

// noticeMsg clears a transient notice after it has been shown.
type noticeMsg struct{ id int }

// Model is the bubbletea model for editing one date.
type Model struct {
	session  *autosave.Session
	textarea textarea.Model
	interval time.Duration
	copy     func(string) error

	notice   string
	noticeID int
	failed   bool
	unsaved  bool
	quitting bool

	// quitFailed is set once a save made while quitting has failed.
	quitFailed bool
}

// Option configures a Model.
type Option func(*Model)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.copy = write
	}
}

// New returns an editor for session. interval <= 0 uses autosave.DefaultInterval.
func New(session *autosave.Session, interval time.Duration, opts ...Option) Model {
	if interval <= 0 {
		interval = autosave.DefaultInterval
	}

	ta := textarea.New()
	ta.Placeholder = "What did you work on today?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(worklog.EditorText(session.Content()))
	ta.Focus()

	m := Model{
		session:  session,
		textarea: ta,
		interval: interval,
		copy:     clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Value returns the text currently in the editor.
func (m Model) Value() string {
	return m.textarea.Value()
}

// Init starts the cursor blink and the autosave timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.scheduleAutosave())
}

func (m Model) scheduleAutosave() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return autosaveMsg{} })
}

// Update handles keys, resizes and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.textarea.SetWidth(msg.Width)
		// Title, blank line, status and help take four rows.
		m.textarea.SetHeight(max(msg.Height-4, 3))
		return m, nil

	case autosaveMsg:
		_, err := m.session.Autosave(m.Value())
		m.failed = err != nil
		return m, m.scheduleAutosave()

	case noticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			m.failed = m.session.Save(m.Value()) != nil
			return m, nil
		case "ctrl+y":
			return m.copyToClipboard()
		case "esc", "ctrl+c":
			return m.quit()
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) copyToClipboard() (tea.Model, tea.Cmd) {
	rec := &worklog.Record{Date: m.session.Date(), Content: m.Value()}
	text := rec.CopyText(false)
	if text == "" {
		return m.showNotice("Nothing to copy")
	}
	if err := m.copy(text); err != nil {
		return m.showNotice("Copy failed: " + err.Error())
	}
	return m.showNotice("Copied to clipboard")
}

func (m Model) showNotice(text string) (tea.Model, tea.Cmd) {
	m.noticeID++
	m.notice = text
	id := m.noticeID
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return noticeMsg{id: id} })
}

// quit saves pending changes and exits. Unchanged text is not rewritten.
// If the final save fails the editor stays open; quitting again while the
// last save failed closes it and leaves the changes unsaved.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.session.Dirty(m.Value()) {
		if err := m.session.Save(m.Value()); err != nil {
			m.failed = true
			if !m.quitFailed {
				m.quitFailed = true
				return m.showNotice("Save failed, press esc again to quit without saving")
			}
			m.unsaved = true
		}
	}
	m.quitting = true
	return m, tea.Quit
}

// Unsaved reports whether the editor closed with changes that could not be saved.
func (m Model) Unsaved() bool {
	return m.unsaved
}

// View renders the title, the text area and the status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	date := m.session.Date()
	title := titleStyle.Render("Work Log - " + date.String() + " " + date.Weekday().String())

	status := statusStyle.Render(m.session.Status())
	if m.failed {
		status = errorStyle.Render(m.session.Status())
	}
	if m.notice != "" {
		status += "  " + m.notice
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.textarea.View(),
		status,
		helpStyle.Render(helpText),
	)
}

// Run opens the editor on the terminal and blocks until it closes.
func Run(session *autosave.Session, interval time.Duration, opts ...Option) error {
	final, err := tea.NewProgram(New(session, interval, opts...), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Unsaved() {
		return fmt.Errorf("log for %s was not saved", session.Date())
	}
	return nil
}
