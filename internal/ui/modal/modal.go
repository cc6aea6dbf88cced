// Package modal provides a small dialog for confirmations and single-value
// prompts.
package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/wayfarer/internal/ui/overlay"
	"github.com/zjrosen/wayfarer/internal/ui/styles"
)

// ButtonVariant controls the styling of the confirm button.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota
	ButtonDanger                // destructive actions
)

// InputConfig defines the prompt's text field.
type InputConfig struct {
	Label       string
	Placeholder string
	Value       string
	MaxLength   int // 0 = unlimited

	// Validate rejects a value before submission. The error text is shown
	// under the field.
	Validate func(string) error
}

// Config controls modal appearance and behavior.
type Config struct {
	// Tag is echoed in SubmitMsg and CancelMsg so the owner can tell
	// dialogs apart.
	Tag            string
	Title          string
	Message        string
	Input          *InputConfig // nil = confirmation mode
	ConfirmLabel   string       // default "Confirm"
	ConfirmVariant ButtonVariant
	MinWidth       int // 0 = 40
}

// SubmitMsg is sent when the user confirms. Value is the trimmed input, or
// empty in confirmation mode.
type SubmitMsg struct {
	Tag   string
	Value string
}

// CancelMsg is sent on Esc or the Cancel button.
type CancelMsg struct {
	Tag string
}

// Field identifies which element is focused.
type Field int

const (
	FieldInput Field = iota
	FieldConfirm
	FieldCancel
)

// Model is the modal component state.
type Model struct {
	config  Config
	input   textinput.Model
	focused Field
	err     string
	width   int
	height  int
}

// New creates a modal. With an Input it starts focused on the field,
// otherwise on the confirm button.
func New(cfg Config) Model {
	m := Model{config: cfg, focused: FieldConfirm}
	if cfg.Input != nil {
		ti := textinput.New()
		ti.Placeholder = cfg.Input.Placeholder
		ti.Width = 36 // Fits within minWidth (40) minus borders/padding
		ti.Prompt = ""
		if cfg.Input.MaxLength > 0 {
			ti.CharLimit = cfg.Input.MaxLength
		}
		ti.SetValue(cfg.Input.Value)
		ti.Focus()
		m.input = ti
		m.focused = FieldInput
	}
	return m
}

// Init starts the cursor blink in input mode.
func (m Model) Init() tea.Cmd {
	if m.config.Input != nil {
		return textinput.Blink
	}
	return nil
}

// Update handles messages for the modal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m.focus(m.next(1)), nil
		case "shift+tab", "up":
			return m.focus(m.next(-1)), nil
		case "left", "right":
			if m.focused != FieldInput {
				return m.focus(m.next(1)), nil
			}
		case "enter":
			if m.focused == FieldCancel {
				return m, m.cancel()
			}
			return m.submit()
		case "esc":
			return m, m.cancel()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.focused == FieldInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if _, typed := msg.(tea.KeyMsg); typed {
			m.err = ""
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	value := ""
	if m.config.Input != nil {
		value = strings.TrimSpace(m.input.Value())
		if validate := m.config.Input.Validate; validate != nil {
			if err := validate(value); err != nil {
				m.err = err.Error()
				return m.focus(FieldInput), nil
			}
		}
	}
	tag := m.config.Tag
	return m, func() tea.Msg { return SubmitMsg{Tag: tag, Value: value} }
}

func (m Model) cancel() tea.Cmd {
	tag := m.config.Tag
	return func() tea.Msg { return CancelMsg{Tag: tag} }
}

// next returns the field delta steps away, skipping the input in
// confirmation mode.
func (m Model) next(delta int) Field {
	fields := []Field{FieldConfirm, FieldCancel}
	if m.config.Input != nil {
		fields = []Field{FieldInput, FieldConfirm, FieldCancel}
	}
	i := 0
	for j, f := range fields {
		if f == m.focused {
			i = j
		}
	}
	i = (i + delta + len(fields)) % len(fields)
	return fields[i]
}

func (m Model) focus(f Field) Model {
	m.focused = f
	if m.config.Input != nil {
		if f == FieldInput {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
	}
	return m
}

// View renders the modal content (without overlay).
func (m Model) View() string {
	contentWidth := max(40, m.config.MinWidth, lipgloss.Width(m.config.Title))
	boxWidth := contentWidth + 2 // Account for content padding

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	if m.config.Message != "" {
		msgStyle := lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor).
			Width(contentWidth)
		content.WriteString(msgStyle.Render(m.config.Message))
		content.WriteString("\n\n")
	}
	if m.config.Input != nil {
		label := m.config.Input.Label
		if label == "" {
			label = "Input"
		}
		content.WriteString(styles.Panel{Title: label, Width: contentWidth, Focused: m.focused == FieldInput}.Render(m.input.View()))
		content.WriteString("\n")
		if m.err != "" {
			content.WriteString(lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Render(m.err))
		}
		content.WriteString("\n")
	}
	content.WriteString(m.renderButtons())

	var result strings.Builder
	result.WriteString(titleStyle.Render(m.config.Title))
	result.WriteString("\n")
	result.WriteString(divider)
	result.WriteString("\n")
	result.WriteString(lipgloss.NewStyle().Padding(1, 1).Render(content.String()))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth)
	return boxStyle.Render(result.String())
}

func (m Model) renderButtons() string {
	confirmStyle := styles.PrimaryButtonStyle
	if m.focused == FieldConfirm {
		confirmStyle = styles.PrimaryButtonFocusedStyle
	}
	if m.config.ConfirmVariant == ButtonDanger {
		confirmStyle = styles.DangerButtonStyle
		if m.focused == FieldConfirm {
			confirmStyle = styles.DangerButtonFocusedStyle
		}
	}
	label := m.config.ConfirmLabel
	if label == "" {
		label = "Confirm"
	}

	cancelStyle := styles.SecondaryButtonStyle
	if m.focused == FieldCancel {
		cancelStyle = styles.SecondaryButtonFocusedStyle
	}
	return confirmStyle.Render(label) + "  " + cancelStyle.Render("Cancel")
}

// Overlay renders the modal centered on bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize updates the viewport size used for centering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Focused returns the focused element.
func (m Model) Focused() Field {
	return m.focused
}

// Err returns the current validation error, if any.
func (m Model) Err() string {
	return m.err
}
