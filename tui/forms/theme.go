package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/clipper-cli/tui/styles"
)

// Theme returns a huh theme matching the feedback palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Focus).
		PaddingLeft(1)
	t.Focused.Title = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(styles.Secondary)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(styles.Accent)
	t.Focused.NoteTitle = lipgloss.NewStyle().Foreground(styles.Info).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(styles.Info)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(styles.Dim)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Info)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(styles.Primary)
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(styles.Focus).
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(styles.Dim).
		Foreground(styles.Secondary).
		Padding(0, 1)
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(styles.Secondary)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(styles.Dim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(styles.Secondary)
	t.Blurred.NoteTitle = lipgloss.NewStyle().Foreground(styles.Secondary)
	t.Blurred.Next = t.Blurred.FocusedButton

	return t
}
