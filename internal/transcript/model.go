package transcript

// Message is one fully assembled transcript message: the sender name exactly
// as written in the export, and the body with continuation lines joined and
// known artifacts stripped.
type Message struct {
	Sender string
	Body   string
}
