// Package styles provides Lipgloss styles for prompts and run feedback.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// Dim is the border/dim accent colour (Ciapre ANSI 6 brown)
	Dim = lipgloss.Color("#5C4F4B")
	// Focus is used for highlights and focus states (Ciapre ANSI 5 magenta)
	Focus = lipgloss.Color("#724D7C")
	// Secondary is a secondary text colour (Ciapre foreground)
	Secondary = lipgloss.Color("#AEA47A")
	// Primary is the primary text colour (Ciapre ANSI 14 cream)
	Primary = lipgloss.Color("#F3DBB2")
	// Accent is used for titles (Ciapre ANSI 13 bright magenta)
	Accent = lipgloss.Color("#D33061")
	// Info is used for interactive elements (Ciapre ANSI 12 bright blue)
	Info = lipgloss.Color("#3097C6")
	// Red is used for warnings and errors (Ciapre ANSI 1)
	Red = lipgloss.Color("#AC3835")
	// Green is used for success messages (Ciapre ANSI 2)
	Green = lipgloss.Color("#A6A75D")
)

// Title is used for section headers such as "Selected: <file>"
var Title = lipgloss.NewStyle().
	Foreground(Accent).
	Bold(true)

// Label is used for field names in key/value feedback
var Label = lipgloss.NewStyle().
	Foreground(Secondary)

// Value is used for field values in key/value feedback
var Value = lipgloss.NewStyle().
	Foreground(Primary)

// Muted is used for hints and debugging output
var Muted = lipgloss.NewStyle().
	Foreground(Dim)

// Warning is the style for warning messages
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)

// ErrorBox frames a failed run report
var ErrorBox = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Red).
	Padding(0, 1)
