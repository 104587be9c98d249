package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-jigsaw/internal/profile"
)

var (
	promptTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	promptErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NicknameModel asks for a nickname until the input is valid.
type NicknameModel struct {
	input    textinput.Model
	reason   error
	nickname string
	width    int
	height   int
	done     bool
	quitting bool
}

// NewNicknameModel creates a prompt prefilled with initial.
func NewNicknameModel(initial string, width, height int) NicknameModel {
	ti := textinput.New()
	ti.Placeholder = "3-12 letters"
	ti.CharLimit = profile.MaxLen + 8 // Room to type past the limit and see the error
	ti.Width = profile.MaxLen + 2
	ti.SetValue(initial)
	ti.Focus()

	return NicknameModel{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init starts the cursor blinking.
func (m NicknameModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt.
func (m NicknameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			res := profile.Check(m.input.Value())
			if res.Reprompt {
				m.reason = res.Reason
				m.input.SetValue("")
				return m, nil
			}
			m.nickname = res.Nickname
			m.done = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m NicknameModel) View() string {
	if m.done || m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(promptTitleStyle.Render("J I G S A W"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter your nickname (3-12 characters):", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n")
	if m.reason != nil {
		b.WriteString("\n")
		b.WriteString(centerText(promptErrStyle.Render(reasonText(m.reason)), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(promptHelpStyle.Render("Enter: confirm  |  Esc: quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// reasonText turns a validation error into a short hint.
func reasonText(err error) string {
	switch {
	case errors.Is(err, profile.ErrTooShort):
		return "Too short, use at least 3 characters."
	case errors.Is(err, profile.ErrTooLong):
		return "Too long, use at most 12 characters."
	case errors.Is(err, profile.ErrNotASCII):
		return "Use plain ASCII characters only."
	default:
		return err.Error()
	}
}

// Nickname returns the accepted nickname, or empty if none yet.
func (m NicknameModel) Nickname() string {
	return m.nickname
}

// Done reports whether a valid nickname was entered.
func (m NicknameModel) Done() bool {
	return m.done
}

// IsQuitting returns true if the user gave up.
func (m NicknameModel) IsQuitting() bool {
	return m.quitting
}

// RunNicknamePrompt asks for a nickname. Returns empty if the user quit.
func RunNicknamePrompt(initial string, width, height int) (string, error) {
	p := tea.NewProgram(NewNicknameModel(initial, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := finalModel.(NicknameModel)
	if !ok || !m.Done() {
		return "", nil
	}
	return m.Nickname(), nil
}
