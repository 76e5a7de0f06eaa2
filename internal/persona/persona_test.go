package persona

import (
	"strings"
	"testing"
)

func TestSystemPrompt(t *testing.T) {
	p := Persona{
		Friend:   "Alice",
		Partner:  "Bob",
		Examples: []string{"hey!", "lol totally", "ttyl"},
	}

	prompt := p.SystemPrompt(15)

	for _, want := range []string{
		"You are Alice.",
		"talking to Bob",
		`- "hey!"`,
		`- "lol totally"`,
		`- "ttyl"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestSystemPrompt_PartnerFallback(t *testing.T) {
	p := Persona{Friend: "Alice", Examples: []string{"hi"}}

	prompt := p.SystemPrompt(15)
	if !strings.Contains(prompt, "talking to your friend") {
		t.Errorf("expected generic partner fallback, got:\n%s", prompt)
	}
}

func TestSystemPrompt_KeepsMostRecentExamples(t *testing.T) {
	p := Persona{
		Friend:   "Alice",
		Partner:  "Bob",
		Examples: []string{"oldest", "middle", "newest"},
	}

	prompt := p.SystemPrompt(2)
	if strings.Contains(prompt, "oldest") {
		t.Errorf("prompt should drop oldest example:\n%s", prompt)
	}
	if !strings.Contains(prompt, "middle") || !strings.Contains(prompt, "newest") {
		t.Errorf("prompt should keep the last two examples:\n%s", prompt)
	}
}

func TestHistory_Trim(t *testing.T) {
	var h History
	for i := 0; i < 12; i++ {
		h.Add("user", "q")
		h.Add("assistant", "a")
	}

	h.Trim(10)
	if h.Len() != 20 {
		t.Errorf("len = %d, want 20", h.Len())
	}

	h.Trim(0) // no-op
	if h.Len() != 20 {
		t.Errorf("len after Trim(0) = %d, want 20", h.Len())
	}
}

func TestHistory_Messages(t *testing.T) {
	var h History
	h.Add("user", "hi")
	h.Add("assistant", "hey")

	msgs := h.Messages("sys", "what's up?")

	if len(msgs) != 4 {
		t.Fatalf("len = %d, want 4", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[0].Content != "sys" {
		t.Errorf("first message = %+v, want system prompt", msgs[0])
	}
	if msgs[3].Role != "user" || msgs[3].Content != "what's up?" {
		t.Errorf("last message = %+v, want latest user turn", msgs[3])
	}
}
