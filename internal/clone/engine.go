// Package clone drives one conversation with the impersonated friend,
// shared by the TUI and the plain stdin loop.
package clone

import (
	"context"

	"github.com/jlamarre/clonechat/internal/groq"
	"github.com/jlamarre/clonechat/internal/persona"
)

// Completer is the slice of the groq client the engine needs.
type Completer interface {
	ChatCompletion(ctx context.Context, messages []groq.Message, temperature float64, maxTokens int) (string, error)
}

type Options struct {
	Temperature  float64
	MaxTokens    int
	HistoryTurns int

	// Record, when set, is called for every completed turn (user and
	// assistant) so the conversation can be persisted.
	Record func(role, text string)
}

type Engine struct {
	client  Completer
	system  string
	opts    Options
	history persona.History
}

func NewEngine(client Completer, system string, opts Options) *Engine {
	return &Engine{client: client, system: system, opts: opts}
}

// Reply sends the user's message with the persona prompt and rolling history,
// and returns the clone's answer. The turn only enters the history (and the
// recorder) when the completion succeeds.
func (e *Engine) Reply(ctx context.Context, userMessage string) (string, error) {
	msgs := e.history.Messages(e.system, userMessage)

	reply, err := e.client.ChatCompletion(ctx, msgs, e.opts.Temperature, e.opts.MaxTokens)
	if err != nil {
		return "", err
	}

	e.history.Add("user", userMessage)
	e.history.Add("assistant", reply)
	e.history.Trim(e.opts.HistoryTurns)

	if e.opts.Record != nil {
		e.opts.Record("user", userMessage)
		e.opts.Record("assistant", reply)
	}
	return reply, nil
}
