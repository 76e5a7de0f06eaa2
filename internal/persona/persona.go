// Package persona builds the impersonation prompt and manages the rolling
// conversation with the clone.
package persona

import (
	"fmt"
	"strings"

	"github.com/jlamarre/clonechat/internal/groq"
)

// Persona describes who the clone is impersonating and which of their past
// messages anchor its style.
type Persona struct {
	Friend   string   // name being impersonated
	Partner  string   // who the clone is talking to
	Examples []string // the friend's past messages, transcript order
}

// SystemPrompt renders the system message: impersonation instructions plus up
// to maxExamples of the friend's most recent messages, quoted one per line.
func (p Persona) SystemPrompt(maxExamples int) string {
	partner := p.Partner
	if partner == "" {
		partner = "your friend"
	}

	examples := p.Examples
	if maxExamples > 0 && len(examples) > maxExamples {
		examples = examples[len(examples)-maxExamples:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s. You are talking to %s.", p.Friend, partner)
	fmt.Fprintf(&b, " Impersonate %s as accurately as possible, mimicking their texting style, tone, common phrases, emoji usage, and typical message length based on the examples of their past messages below.", p.Friend)
	b.WriteString(" Do not state that you are an AI or a clone. Respond naturally.\n\n")
	fmt.Fprintf(&b, "Examples of how %s texts:\n", p.Friend)
	for _, ex := range examples {
		fmt.Fprintf(&b, "- %q\n", ex)
	}
	fmt.Fprintf(&b, "\nOnly output %s's next message. Do not add a %q prefix.", p.Friend, p.Friend+": ")
	return b.String()
}

// History is the rolling clone conversation, oldest first, alternating
// user/assistant turns.
type History struct {
	turns []groq.Message
}

func (h *History) Add(role, content string) {
	h.turns = append(h.turns, groq.Message{Role: role, Content: content})
}

// Trim keeps only the last maxTurns user+assistant exchanges.
func (h *History) Trim(maxTurns int) {
	if maxTurns <= 0 {
		return
	}
	keep := maxTurns * 2
	if len(h.turns) > keep {
		h.turns = h.turns[len(h.turns)-keep:]
	}
}

func (h *History) Len() int {
	return len(h.turns)
}

// Messages assembles the full request: system prompt, prior turns, then the
// user's latest message.
func (h *History) Messages(system, userMessage string) []groq.Message {
	msgs := make([]groq.Message, 0, len(h.turns)+2)
	msgs = append(msgs, groq.Message{Role: "system", Content: system})
	msgs = append(msgs, h.turns...)
	msgs = append(msgs, groq.Message{Role: "user", Content: userMessage})
	return msgs
}
