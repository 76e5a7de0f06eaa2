// Package tui is the interactive clone-chat screen: a transcript viewport, a
// message composer, and async completions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jlamarre/clonechat/internal/clone"
)

const replyTimeout = 90 * time.Second

// message types

type replyMsg struct {
	text string
	err  error
}

type entry struct {
	speaker string // partner or friend name, "" for notices
	text    string
	isErr   bool
}

// model

type model struct {
	engine  *clone.Engine
	friend  string
	partner string

	entries  []entry
	input    textinput.Model
	view     viewport.Model
	thinking bool
	status   string

	width    int
	height   int
	ready    bool
	quitting bool
}

func initialModel(eng *clone.Engine, friend, partner string) model {
	ti := textinput.New()
	ti.Placeholder = "Say something..."
	ti.Focus()
	ti.Prompt = partner + " > "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 1024

	return model{
		engine:  eng,
		friend:  friend,
		partner: partner,
		input:   ti,
		view:    viewport.New(0, 0),
	}
}

// Run starts the chat TUI and blocks until the user quits.
func Run(eng *clone.Engine, friend, partner string) error {
	m := initialModel(eng, friend, partner)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// sendCmd runs the completion off the update loop.
func sendCmd(eng *clone.Engine, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		reply, err := eng.Reply(ctx, text)
		return replyMsg{text: reply, err: err}
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.view = viewport.New(m.width-2, m.panelHeight())
		m.view.Style = stylePanelBorder
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Send):
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.thinking {
				return m, nil
			}
			m.input.Reset()
			m.entries = append(m.entries, entry{speaker: m.partner, text: text})
			m.thinking = true
			m.status = m.friend + " is thinking..."
			m.refreshTranscript()
			return m, sendCmd(m.engine, text)

		case key.Matches(msg, keys.Copy):
			if reply := m.lastReply(); reply != "" {
				if err := clipboard.WriteAll(reply); err == nil {
					m.status = "Copied last reply to clipboard."
				} else {
					m.status = "Clipboard unavailable."
				}
			}
			return m, nil

		case key.Matches(msg, keys.ScrollUp):
			m.view.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.ScrollDn):
			m.view.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.view.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.view.LineDown(m.panelHeight())
			return m, nil
		}

		var tiCmd tea.Cmd
		m.input, tiCmd = m.input.Update(msg)
		return m, tiCmd

	case replyMsg:
		m.thinking = false
		m.status = ""
		if msg.err != nil {
			m.entries = append(m.entries, entry{
				text:  "error: " + msg.err.Error(),
				isErr: true,
			})
		} else {
			m.entries = append(m.entries, entry{speaker: m.friend, text: msg.text})
		}
		m.refreshTranscript()
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	title := styleTitle.Render(fmt.Sprintf("clone of %s — chatting as %s", m.friend, m.partner))

	status := m.status
	if status == "" {
		status = "enter send · C-y copy reply · esc quit"
	}
	statusBar := styleStatusBar.Render(status)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.view.View(),
		m.input.View(),
		statusBar,
	)
}

// panelHeight is the viewport height: total minus title, input, and status.
func (m model) panelHeight() int {
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (m *model) refreshTranscript() {
	wrap := lipgloss.NewStyle().Width(m.width - 4)

	var b strings.Builder
	for _, e := range m.entries {
		switch {
		case e.isErr:
			b.WriteString(wrap.Render(styleError.Render(e.text)))
		case e.speaker == m.friend:
			b.WriteString(styleClone.Render(e.speaker + " >"))
			b.WriteString("\n")
			b.WriteString(wrap.Render("  " + e.text))
		default:
			b.WriteString(stylePartner.Render(e.speaker + " >"))
			b.WriteString("\n")
			b.WriteString(wrap.Render("  " + e.text))
		}
		b.WriteString("\n\n")
	}
	if m.thinking {
		b.WriteString(styleThinking.Render(m.friend + " is typing..."))
		b.WriteString("\n")
	}

	m.view.SetContent(b.String())
	m.view.GotoBottom()
}

func (m model) lastReply() string {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].speaker == m.friend {
			return m.entries[i].text
		}
	}
	return ""
}
