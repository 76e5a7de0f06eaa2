package transcript

import (
	"regexp"
	"strings"
)

// editedMarker is appended by WhatsApp to edited messages. It is stripped
// from message bodies; a header whose content contains it (any case) is
// treated as ignorable.
const editedMarker = "<This message was edited>"

// headerRe matches a WhatsApp export message header:
// "DD/MM/YY, H:MM am - Sender: content". The am/pm marker is optional and
// may carry periods ("a.m."); the sender field runs up to the first colon.
var headerRe = regexp.MustCompile(
	`(?i)^\d{2}/\d{2}/\d{2}, \d{1,2}:\d{2}\s*(?:[ap]\.?m\.?)?\s*-\s*([^:]+):\s*(.*)$`,
)

// systemPhrases are metadata notices WhatsApp writes without a sender field.
// They only apply to lines that do not match the header format. The list is
// tuned to the en export locale; extend Rules.SystemPhrases to cover others.
var systemPhrases = []*regexp.Regexp{
	regexp.MustCompile(`Messages and calls are end-to-end encrypted`),
	regexp.MustCompile(`is a contact`),
	regexp.MustCompile(`created group`),
	regexp.MustCompile(`added`),
	regexp.MustCompile(`left`),
	regexp.MustCompile(`changed this group's icon`),
	regexp.MustCompile(`changed the subject`),
	regexp.MustCompile(`You're now an admin`),
}

// Rules is the immutable classification data driving a Parser: the header
// pattern and the system-notice phrase table. Built once, shared by reference.
type Rules struct {
	Header        *regexp.Regexp
	SystemPhrases []*regexp.Regexp
}

var defaultRules = &Rules{
	Header:        headerRe,
	SystemPhrases: systemPhrases,
}

// DefaultRules returns the rule set for the standard WhatsApp en export.
func DefaultRules() *Rules {
	return defaultRules
}

type header struct {
	sender  string
	content string
}

func (r *Rules) matchHeader(line string) (header, bool) {
	m := r.Header.FindStringSubmatch(line)
	if m == nil {
		return header{}, false
	}
	return header{
		sender:  strings.TrimSpace(m[1]),
		content: strings.TrimSpace(m[2]),
	}, true
}

// isSystem reports whether a line is a system/metadata notice. Header-format
// lines are only ever system via their content (null, omitted media, edited
// marker); the phrase table applies only to lines without a header.
func (r *Rules) isSystem(line string) bool {
	if h, ok := r.matchHeader(line); ok {
		c := strings.ToLower(h.content)
		return c == "null" || c == "<media omitted>" ||
			strings.Contains(c, strings.ToLower(editedMarker))
	}
	for _, p := range r.SystemPhrases {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
