// Package tui implements the interactive offboarding wizard.
//
// The wizard shows one screen per stage of an open [offboarding.Session].
// Navigation goes through the session, so forward moves are gated exactly
// like the CLI. Uploads and finalization run as tea.Cmds; while one is in
// flight, further attempts of the same kind are dropped.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"offboard/internal/artifact"
	"offboard/internal/offboarding"
	"offboard/internal/record"
	"offboard/internal/stage"
)

// inputMode says what the text input is collecting.
type inputMode int

const (
	modeNavigate inputMode = iota
	modeUpload
	modeDate
	modeAddItem
)

// uploadDoneMsg carries the result of an upload command.
type uploadDoneMsg struct {
	slot record.SlotID
	url  string
	err  error
}

// finalizeDoneMsg carries the result of a finalize command.
type finalizeDoneMsg struct {
	err error
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB020"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// Model is the bubbletea model of the wizard.
type Model struct {
	ctx      context.Context
	sess     *offboarding.Session
	readFile func(path string) (artifact.File, error)

	input textinput.Model
	mode  inputMode
	row   int

	uploading  bool
	finalizing bool
	finished   bool

	status string
	err    string
}

// New creates a wizard for sess. Files are read with [artifact.ReadFile].
func New(ctx context.Context, sess *offboarding.Session) *Model {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 60
	return &Model{
		ctx:      ctx,
		sess:     sess,
		readFile: artifact.ReadFile,
		input:    ti,
	}
}

// Run starts the wizard on the alternate screen and blocks until the user
// quits. Quitting never deletes anything; progress is already persisted.
func Run(ctx context.Context, sess *offboarding.Session) error {
	p := tea.NewProgram(New(ctx, sess), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("wizard: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadDoneMsg:
		m.uploading = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Saved %s", msg.slot.Label()))
		return m, nil

	case finalizeDoneMsg:
		m.finalizing = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.finished = true
		m.setStatus(fmt.Sprintf("Employee %s has been terminated. Press q to exit.", m.sess.EmployeeID()))
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNavigate {
			return m.updateInput(msg)
		}
		return m.updateNavigate(msg)
	}
	return m, nil
}

func (m *Model) updateNavigate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	}
	if m.finished {
		return m, nil
	}

	current := m.sess.Stage()
	switch key {
	case "left", "h":
		if m.sess.Retreat() {
			m.clearMessages()
		}

	case "right", "l":
		if m.sess.Advance() {
			m.clearMessages()
			m.row = 0
		} else if current < stage.Last {
			m.setStatus(fmt.Sprintf("Complete %s before continuing", current))
		}

	case "u":
		d, _ := stage.Describe(current)
		if !d.Required.IsArtifact() {
			return m, nil
		}
		if m.uploading {
			m.setStatus("An upload is already in progress")
			return m, nil
		}
		return m, m.openInput(modeUpload, "path to document")

	case "d":
		if current != stage.LastWorkingDay {
			return m, nil
		}
		return m, m.openInput(modeDate, record.DateLayout)

	case "a":
		if current != stage.PropertyReturn {
			return m, nil
		}
		return m, m.openInput(modeAddItem, "item name")

	case "up", "k":
		if current == stage.PropertyReturn && m.row > 0 {
			m.row--
		}

	case "down", "j":
		if current == stage.PropertyReturn && m.row < len(m.sess.Record().PropertyChecklist)-1 {
			m.row++
		}

	case " ":
		if current != stage.PropertyReturn {
			return m, nil
		}
		if err := m.sess.ToggleChecklistItem(m.ctx, m.row); err != nil {
			m.setError(err)
		} else {
			m.clearMessages()
		}

	case "f":
		if current != stage.CompleteTermination {
			return m, nil
		}
		if m.finalizing {
			m.setStatus("Finalization is already in progress")
			return m, nil
		}
		m.finalizing = true
		m.setStatus("Removing employee...")
		return m, m.finalizeCmd()
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		return m, m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit applies the text input for the current mode.
func (m *Model) submit() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	mode := m.mode
	m.closeInput()

	switch mode {
	case modeUpload:
		if value == "" {
			return nil
		}
		d, _ := stage.Describe(m.sess.Stage())
		if m.uploading {
			m.setStatus("An upload is already in progress")
			return nil
		}
		m.uploading = true
		m.setStatus(fmt.Sprintf("Uploading %s...", d.Required.Label()))
		return m.uploadCmd(d.Required, value)

	case modeDate:
		day, err := record.ParseDate(value)
		if err != nil {
			m.setError(err)
			return nil
		}
		if err := m.sess.SetLastWorkingDay(m.ctx, day); err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus("Last working day set to " + day.String())

	case modeAddItem:
		if err := m.sess.AddChecklistItem(m.ctx, value); err != nil {
			m.setError(err)
			return nil
		}
		m.row = len(m.sess.Record().PropertyChecklist) - 1
		m.setStatus("Added " + value)
	}
	return nil
}

func (m *Model) uploadCmd(slot record.SlotID, path string) tea.Cmd {
	ctx, sess, readFile := m.ctx, m.sess, m.readFile
	return func() tea.Msg {
		file, err := readFile(path)
		if err != nil {
			return uploadDoneMsg{slot: slot, err: err}
		}
		url, err := sess.SaveArtifact(ctx, slot, file)
		return uploadDoneMsg{slot: slot, url: url, err: err}
	}
}

func (m *Model) finalizeCmd() tea.Cmd {
	ctx, sess := m.ctx, m.sess
	return func() tea.Msg {
		return finalizeDoneMsg{err: sess.Finalize(ctx)}
	}
}

func (m *Model) openInput(mode inputMode, placeholder string) tea.Cmd {
	m.mode = mode
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.clearMessages()
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeNavigate
	m.input.Blur()
}

func (m *Model) setStatus(s string) {
	m.status, m.err = s, ""
}

func (m *Model) setError(err error) {
	m.status, m.err = "", err.Error()
}

func (m *Model) clearMessages() {
	m.status, m.err = "", ""
}

// View implements tea.Model.
func (m *Model) View() string {
	rec := m.sess.Record()
	current := m.sess.Stage()

	var b strings.Builder
	b.WriteString(headerStyle.Render("OFFBOARDING · " + m.sess.EmployeeID()))
	b.WriteString("\n\n")
	b.WriteString(m.renderStages(current, rec))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.renderStage(current, rec)))
	b.WriteString("\n")

	if m.mode != modeNavigate {
		b.WriteString(m.input.View())
		b.WriteString("\n" + mutedStyle.Render("enter confirm · esc cancel"))
	} else {
		b.WriteString(m.renderHelp(current))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n" + warnStyle.Render(m.status))
	}
	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err))
	}
	return b.String()
}

func (m *Model) renderStages(current stage.Stage, rec record.Record) string {
	var b strings.Builder
	for _, d := range stage.Catalog() {
		marker := mutedStyle.Render("○")
		if d.ID != stage.CompleteTermination && d.ID != stage.PropertyReturn && stage.RequirementSatisfied(d.ID, rec) {
			marker = doneStyle.Render("●")
		}
		label := mutedStyle.Render(d.Label)
		if d.ID == current {
			label = currentStyle.Render(d.Label)
			marker = titleStyle.Render("▸")
		}
		fmt.Fprintf(&b, "%s %s\n", marker, label)
	}
	return b.String()
}

func (m *Model) renderStage(current stage.Stage, rec record.Record) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(current.String()))
	b.WriteString("\n")

	switch current {
	case stage.LastWorkingDay:
		if rec.LastWorkingDay != nil {
			b.WriteString("Last working day: " + doneStyle.Render(rec.LastWorkingDay.String()))
		} else {
			b.WriteString(mutedStyle.Render("No date set"))
		}

	case stage.PropertyReturn:
		if len(rec.PropertyChecklist) == 0 {
			b.WriteString(mutedStyle.Render("Checklist is empty"))
		}
		for i, item := range rec.PropertyChecklist {
			pointer := "  "
			if i == m.row {
				pointer = titleStyle.Render("> ")
			}
			box := "[ ]"
			if item.Returned {
				box = doneStyle.Render("[x]")
			}
			fmt.Fprintf(&b, "%s%s %s\n", pointer, box, item.Name)
		}

	case stage.CompleteTermination:
		missing := stage.Missing(rec)
		if len(missing) == 0 {
			b.WriteString(doneStyle.Render("All requirements met."))
			if returned, total := rec.ReturnedCount(), len(rec.PropertyChecklist); returned < total {
				b.WriteString("\n" + warnStyle.Render(fmt.Sprintf("%d of %d property items not returned", total-returned, total)))
			}
			break
		}
		b.WriteString("Missing:\n")
		for _, req := range missing {
			fmt.Fprintf(&b, "  %s %s\n", errorStyle.Render("✗"), req.Slot.Label())
		}

	default:
		d, _ := stage.Describe(current)
		slot, err := rec.Artifact(d.Required)
		if err == nil && slot.Saved {
			b.WriteString("Uploaded: " + doneStyle.Render(slot.URL))
		} else {
			b.WriteString(mutedStyle.Render("No document uploaded"))
		}
		if m.uploading {
			b.WriteString("\n" + warnStyle.Render("Uploading..."))
		}
	}
	return b.String()
}

func (m *Model) renderHelp(current stage.Stage) string {
	parts := []string{"← back"}
	if current < stage.Last {
		if m.sess.CanAdvance() {
			parts = append(parts, "→ next")
		} else {
			parts = append(parts, mutedStyle.Render("→ next (locked)"))
		}
	}
	switch current {
	case stage.LastWorkingDay:
		parts = append(parts, "d set date")
	case stage.PropertyReturn:
		parts = append(parts, "↑/↓ select", "space toggle", "a add item")
	case stage.CompleteTermination:
		if !m.finished {
			parts = append(parts, "f finalize")
		}
	default:
		parts = append(parts, "u upload")
	}
	parts = append(parts, "q quit")
	return mutedStyle.Render(strings.Join(parts, " · "))
}
