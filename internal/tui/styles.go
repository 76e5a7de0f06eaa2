package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorSecondary = lipgloss.Color("10")  // bright green
	colorDim       = lipgloss.Color("240") // gray
	colorBorder    = lipgloss.Color("238") // dark gray

	// Composer
	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// Speaker labels
	stylePartner = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleClone = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleThinking = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")) // bright red

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true).
			Padding(0, 1)
)
