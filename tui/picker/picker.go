// Package picker is a bubbletea file browser for choosing the source video.
package picker

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/clipper-cli/tui/styles"
)

// ErrNoSelection is returned when the user leaves the browser without
// choosing a file.
var ErrNoSelection = errors.New("no video selected")

// videoExtensions are offered by the browser; other files are shown disabled.
var videoExtensions = []string{
	".mp4", ".m4v", ".mkv", ".mov", ".avi", ".webm", ".mts", ".m2ts", ".ts",
	".mpg", ".mpeg", ".wmv", ".flv", ".3gp",
}

// VideoExtensions returns the allowed suffixes in lower and upper case.
func VideoExtensions() []string {
	out := make([]string, 0, 2*len(videoExtensions))
	for _, ext := range videoExtensions {
		out = append(out, ext, strings.ToUpper(ext))
	}
	return out
}

// Model is the Bubbletea model for the video browser.
type Model struct {
	filepicker filepicker.Model
	selected   string
	warning    string
	quitting   bool
}

// New creates a browser rooted at dir.
func New(dir string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = VideoExtensions()
	fp.CurrentDirectory = dir
	return Model{filepicker: fp}
}

// Selected returns the chosen path, or "" if none.
func (m Model) Selected() string {
	return m.selected
}

// Init starts reading the initial directory.
func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

// Update handles key presses and forwards everything else to the file picker.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if ok, path := m.filepicker.DidSelectFile(msg); ok {
		m.selected = path
		m.quitting = true
		return m, tea.Quit
	}
	if ok, path := m.filepicker.DidSelectDisabledFile(msg); ok {
		m.warning = fmt.Sprintf("%s is not a supported video file", path)
	}
	return m, cmd
}

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.Title.Render("Select a video to clip"))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(m.filepicker.CurrentDirectory))
	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(styles.Warning.Render(m.warning))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.filepicker.View())
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("enter: open/select  backspace: up  q: quit"))
	return b.String()
}

// Run shows the browser starting at dir and returns the absolute path of
// the chosen file.
func Run(dir string) (string, error) {
	p := tea.NewProgram(New(dir), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("file browser failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok || m.selected == "" {
		return "", ErrNoSelection
	}
	return m.selected, nil
}
