package transcript

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleChat = `
23/01/01, 10:00 am - Messages and calls are end-to-end encrypted.
23/01/01, 10:00 am - Alice is a contact
23/01/01, 10:01 am - Alice: Hey Bob!
How are you doing today?
23/01/01, 10:02 am - Bob: Hi Alice!
I'm good, thanks for asking.
You?
23/01/01, 10:03 am - Alice: Doing great!
Just working on a fun project.
23/01/01, 10:03 am - Alice: <Media omitted>
23/01/01, 10:04 am - Bob: Oh cool! Tell me more.
<This message was edited>
23/01/01, 10:05 am - Alice: It's about AI.
23/01/01, 10:05 am - Charles was added
23/01/01, 10:06 am - Charles: Hey everyone!
23/01/01, 10:07 am - Alice: null
`

func newTestParser(t *testing.T) (*Parser, *bytes.Buffer) {
	t.Helper()
	var diag bytes.Buffer
	p := New(nil)
	p.Diag = &diag
	return p, &diag
}

func TestParse_Alice(t *testing.T) {
	p, _ := newTestParser(t)

	messages, partner := p.Parse(sampleChat, "Alice")

	want := []string{
		"Hey Bob! How are you doing today?",
		"Doing great! Just working on a fun project.",
		"It's about AI.",
	}
	if !reflect.DeepEqual(messages, want) {
		t.Errorf("messages = %q, want %q", messages, want)
	}
	if partner != "Bob" {
		t.Errorf("partner = %q, want Bob", partner)
	}
}

func TestParse_BobEditedMarkerStripped(t *testing.T) {
	p, _ := newTestParser(t)

	messages, partner := p.Parse(sampleChat, "Bob")

	want := []string{
		"Hi Alice! I'm good, thanks for asking. You?",
		"Oh cool! Tell me more.",
	}
	if !reflect.DeepEqual(messages, want) {
		t.Errorf("messages = %q, want %q", messages, want)
	}
	if partner != "Alice" {
		t.Errorf("partner = %q, want Alice", partner)
	}
}

func TestParse_Charles(t *testing.T) {
	p, _ := newTestParser(t)

	messages, partner := p.Parse(sampleChat, "Charles")

	if len(messages) != 1 || messages[0] != "Hey everyone!" {
		t.Errorf("messages = %q, want [Hey everyone!]", messages)
	}
	// First-seen tie-break: Alice completed a message before Bob.
	if partner != "Alice" {
		t.Errorf("partner = %q, want Alice", partner)
	}
}

func TestParse_TargetCaseInsensitive(t *testing.T) {
	p, _ := newTestParser(t)

	exact, _ := p.Parse(sampleChat, "Alice")
	lower, _ := p.Parse(sampleChat, "alice")
	upper, _ := p.Parse(sampleChat, "ALICE")

	if !reflect.DeepEqual(exact, lower) || !reflect.DeepEqual(exact, upper) {
		t.Errorf("case-insensitive match differs: %q vs %q vs %q", exact, lower, upper)
	}
}

func TestParse_Idempotent(t *testing.T) {
	p, _ := newTestParser(t)

	m1, p1 := p.Parse(sampleChat, "Alice")
	m2, p2 := p.Parse(sampleChat, "Alice")

	if !reflect.DeepEqual(m1, m2) || p1 != p2 {
		t.Errorf("second parse differs: (%q, %q) vs (%q, %q)", m1, p1, m2, p2)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, content := range []string{"", "\n\n", "   \n\t\n  "} {
		p, diag := newTestParser(t)

		messages, partner := p.Parse(content, "Alice")

		if len(messages) != 0 {
			t.Errorf("Parse(%q) = %q, want empty", content, messages)
		}
		if partner != "" {
			t.Errorf("Parse(%q) partner = %q, want empty", content, partner)
		}
		if !strings.Contains(diag.String(), "Alice") {
			t.Errorf("Parse(%q) missing diagnostic notice, got %q", content, diag.String())
		}
	}
}

func TestParse_MediaOmittedAnyCase(t *testing.T) {
	p, _ := newTestParser(t)

	chat := "23/01/01, 10:01 am - Alice: real message\n" +
		"23/01/01, 10:02 am - Alice: <MEDIA OMITTED>\n" +
		"23/01/01, 10:03 am - Alice: after"

	messages, _ := p.Parse(chat, "Alice")
	want := []string{"real message", "after"}
	if !reflect.DeepEqual(messages, want) {
		t.Errorf("messages = %q, want %q", messages, want)
	}
}

func TestParse_EditedHeaderContentDropped(t *testing.T) {
	p, _ := newTestParser(t)

	// The marker in the header content marks the whole line ignorable; it
	// must still flush the message in progress.
	chat := "23/01/01, 10:01 am - Alice: keep me\n" +
		"23/01/01, 10:02 am - Alice: gone <This message was edited>\n" +
		"23/01/01, 10:03 am - Bob: hi"

	messages, partner := p.Parse(chat, "Alice")
	if !reflect.DeepEqual(messages, []string{"keep me"}) {
		t.Errorf("messages = %q, want [keep me]", messages)
	}
	if partner != "Bob" {
		t.Errorf("partner = %q, want Bob", partner)
	}
}

func TestParse_ArtifactOnlyBodyDropped(t *testing.T) {
	p, diag := newTestParser(t)

	// The joined body is exactly the edited marker, so cleaning leaves
	// nothing and the message never completes. Carol therefore never
	// enters the sender set either.
	chat := "23/01/01, 10:01 am - Carol: <This\n" +
		"message was edited>\n" +
		"23/01/01, 10:02 am - Alice: hello"

	messages, _ := p.Parse(chat, "Carol")
	if len(messages) != 0 {
		t.Errorf("messages = %q, want empty", messages)
	}
	if !strings.Contains(diag.String(), "Carol") {
		t.Errorf("missing empty-result notice, got %q", diag.String())
	}

	_, partner := p.Parse(chat, "Alice")
	if partner != "" {
		t.Errorf("partner = %q, want empty (Carol's message was dropped)", partner)
	}
}

func TestParse_ContinuationBeforeAnyHeaderDropped(t *testing.T) {
	p, _ := newTestParser(t)

	chat := "stray line with no header\n" +
		"23/01/01, 10:01 am - Alice: hello"

	messages, _ := p.Parse(chat, "Alice")
	if !reflect.DeepEqual(messages, []string{"hello"}) {
		t.Errorf("messages = %q, want [hello]", messages)
	}
}

func TestParse_SystemPhraseFlushesInProgress(t *testing.T) {
	p, _ := newTestParser(t)

	// The encryption notice must complete Alice's message without starting
	// or extending anything.
	chat := "23/01/01, 10:01 am - Alice: part one\n" +
		"part two\n" +
		"Messages and calls are end-to-end encrypted. Tap to learn more.\n" +
		"orphan continuation\n" +
		"23/01/01, 10:02 am - Bob: hi"

	messages, _ := p.Parse(chat, "Alice")
	if !reflect.DeepEqual(messages, []string{"part one part two"}) {
		t.Errorf("messages = %q, want [part one part two]", messages)
	}
}

func TestParse_NullContentIgnored(t *testing.T) {
	p, _ := newTestParser(t)

	chat := "23/01/01, 10:01 am - Alice: null\n" +
		"23/01/01, 10:02 am - Alice: NULL"

	messages, _ := p.Parse(chat, "Alice")
	if len(messages) != 0 {
		t.Errorf("messages = %q, want empty", messages)
	}
}

func TestParse_TwentyFourHourTimestamp(t *testing.T) {
	p, _ := newTestParser(t)

	chat := "23/01/01, 22:15 - Alice: evening\n" +
		"23/01/01, 9:05 a.m. - Bob: morning"

	alice, partner := p.Parse(chat, "Alice")
	if !reflect.DeepEqual(alice, []string{"evening"}) {
		t.Errorf("alice = %q, want [evening]", alice)
	}
	if partner != "Bob" {
		t.Errorf("partner = %q, want Bob", partner)
	}

	bob, _ := p.Parse(chat, "Bob")
	if !reflect.DeepEqual(bob, []string{"morning"}) {
		t.Errorf("bob = %q, want [morning]", bob)
	}
}

func TestParseFile(t *testing.T) {
	p, _ := newTestParser(t)

	path := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(path, []byte(sampleChat), 0o644); err != nil {
		t.Fatal(err)
	}

	messages, partner := p.ParseFile(path, "Alice")
	if len(messages) != 3 {
		t.Errorf("got %d messages, want 3", len(messages))
	}
	if partner != "Bob" {
		t.Errorf("partner = %q, want Bob", partner)
	}
}

func TestParseFile_Missing(t *testing.T) {
	p, diag := newTestParser(t)

	messages, partner := p.ParseFile(filepath.Join(t.TempDir(), "nope.txt"), "Alice")
	if len(messages) != 0 || partner != "" {
		t.Errorf("got (%q, %q), want empty results", messages, partner)
	}
	if diag.Len() == 0 {
		t.Error("expected a notice for the missing file")
	}
}
