package transcript

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Parser extracts one participant's messages from a WhatsApp-style chat
// export. It runs a single linear pass over the input; all state is local to
// the call, so one Parser is safe for concurrent use on different inputs.
type Parser struct {
	rules *Rules

	// Diag receives human-readable notices (unreadable file, empty result).
	// Defaults to os.Stderr.
	Diag io.Writer
}

// New returns a Parser using the given rules, or DefaultRules when nil.
func New(rules *Rules) *Parser {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Parser{rules: rules, Diag: os.Stderr}
}

// accumulator holds the message currently being assembled. body is non-empty
// only while sender is set.
type accumulator struct {
	sender string
	body   []string
}

func (a *accumulator) active() bool {
	return a.sender != ""
}

func (a *accumulator) start(sender, content string) {
	a.sender = sender
	a.body = []string{content}
}

func (a *accumulator) append(line string) {
	a.body = append(a.body, line)
}

// flush completes the in-progress message: continuation lines are joined with
// single spaces, the edited marker is stripped, and a message whose cleaned
// body is empty is dropped. The accumulator is reset either way.
func (a *accumulator) flush() (Message, bool) {
	if !a.active() {
		return Message{}, false
	}
	sender := a.sender
	body := strings.Join(a.body, " ")
	a.sender = ""
	a.body = nil

	body = strings.TrimSpace(strings.ReplaceAll(body, editedMarker, ""))
	if body == "" {
		return Message{}, false
	}
	return Message{Sender: sender, Body: body}, true
}

// Parse reads a full transcript and returns the bodies of all messages whose
// sender matches target case-insensitively, in transcript order, plus the
// inferred other participant: the first-seen sender (over completed messages)
// that does not match target, or "" when there is none. Malformed input never
// fails; unmatched lines are treated as continuations or dropped. An empty
// result emits a notice on Diag.
func (p *Parser) Parse(content, target string) (messages []string, partner string) {
	var completed []Message
	var senders []string
	seen := make(map[string]bool)

	var acc accumulator
	flush := func() {
		msg, ok := acc.flush()
		if !ok {
			return
		}
		completed = append(completed, msg)
		if !seen[msg.Sender] {
			seen[msg.Sender] = true
			senders = append(senders, msg.Sender)
		}
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if p.rules.isSystem(line) {
			flush()
			continue
		}

		if h, ok := p.rules.matchHeader(line); ok {
			flush()
			acc.start(h.sender, h.content)
			continue
		}

		// Continuation of the current message; dropped when nothing is
		// in progress.
		if acc.active() {
			acc.append(line)
		}
	}
	flush()

	for _, m := range completed {
		if strings.EqualFold(m.Sender, target) {
			messages = append(messages, m.Body)
		}
	}

	for _, s := range senders {
		if !strings.EqualFold(s, target) {
			partner = s
			break
		}
	}

	if len(messages) == 0 {
		fmt.Fprintf(p.diag(), "no messages found for %q\n", target)
	}
	return messages, partner
}

// ParseFile reads the transcript at path and parses it. A missing or
// unreadable file yields empty results and a notice, never an error.
func (p *Parser) ParseFile(path, target string) ([]string, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(p.diag(), "cannot read transcript %s: %v\n", path, err)
		return nil, ""
	}
	return p.Parse(string(data), target)
}

func (p *Parser) diag() io.Writer {
	if p.Diag != nil {
		return p.Diag
	}
	return os.Stderr
}
