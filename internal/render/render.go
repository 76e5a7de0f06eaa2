// Package render formats extracted messages and recorded chats for plain
// terminal output (the non-TUI paths).
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/jlamarre/clonechat/internal/store"
)

const (
	colorReset  = "\033[0m"
	colorUser   = "\033[1;34m" // bold blue
	colorClone  = "\033[1;32m" // bold green
	colorDim    = "\033[2m"
	colorNumber = "\033[1;33m" // bold yellow
)

// Messages renders a friend's extracted messages as a numbered list, wrapped
// to width columns (0 = no wrap).
func Messages(friend string, messages []string, width int) string {
	var b strings.Builder
	write := lineWriter(&b, width)

	write(fmt.Sprintf("%s--- %d messages from %s ---%s", colorDim, len(messages), friend, colorReset))
	for i, msg := range messages {
		write(fmt.Sprintf("%s%3d%s  %s", colorNumber, i+1, colorReset, msg))
	}
	return b.String()
}

// Chat renders a recorded clone conversation, wrapped to width columns.
func Chat(chat store.Chat, turns []store.Turn, width int) string {
	var b strings.Builder
	write := lineWriter(&b, width)

	partner := chat.Partner
	if partner == "" {
		partner = "You"
	}
	write(fmt.Sprintf("%s--- chat #%d with clone of %s, started %s ---%s",
		colorDim, chat.ID, chat.Friend, chat.StartedAt, colorReset))

	for _, t := range turns {
		var label, color string
		switch t.Role {
		case "user":
			label, color = partner, colorUser
		case "assistant":
			label, color = chat.Friend, colorClone
		default:
			label, color = strings.ToUpper(t.Role), colorDim
		}
		write(fmt.Sprintf("%s%s >%s %s%s%s", color, label, colorReset, colorDim, t.Ts, colorReset))
		for _, line := range strings.Split(indentLines(t.Text, "  "), "\n") {
			write(line)
		}
		write("")
	}
	return b.String()
}

func lineWriter(b *strings.Builder, width int) func(string) {
	return func(s string) {
		for _, wl := range wrapLine(s, width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into lines that fit within maxWidth visible
// columns, skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	result = append(result, cur.String())
	return result
}
