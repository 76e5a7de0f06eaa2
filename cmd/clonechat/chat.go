package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jlamarre/clonechat/internal/clone"
	"github.com/jlamarre/clonechat/internal/config"
	"github.com/jlamarre/clonechat/internal/groq"
	"github.com/jlamarre/clonechat/internal/persona"
	"github.com/jlamarre/clonechat/internal/store"
	"github.com/jlamarre/clonechat/internal/transcript"
	"github.com/jlamarre/clonechat/internal/tui"
)

func chatCmd() *cobra.Command {
	var plain, noSave bool
	var modelFlag string

	cmd := &cobra.Command{
		Use:   "chat <chat-file> <friend>",
		Short: "Chat with a clone of the friend, styled on their exported messages",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, friend := args[0], args[1]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if modelFlag != "" {
				cfg.Model = modelFlag
			}

			apiKey := config.APIKey()
			if apiKey == "" {
				return fmt.Errorf("%s is not set", config.APIKeyEnv())
			}

			parser := transcript.New(nil)
			messages, partner := parser.ParseFile(file, friend)
			if len(messages) == 0 {
				fmt.Fprintf(os.Stderr, "Cannot build a clone of %q without any of their messages.\n", friend)
				return nil
			}

			fmt.Fprintf(os.Stderr, "Found %d messages from %s.\n", len(messages), friend)
			if partner != "" {
				fmt.Fprintf(os.Stderr, "Identified the other participant as %s.\n", partner)
			} else {
				fmt.Fprintln(os.Stderr, "Could not identify the other participant; using a placeholder.")
				partner = "Friend"
			}

			p := persona.Persona{Friend: friend, Partner: partner, Examples: messages}
			system := p.SystemPrompt(cfg.MaxExamples)

			client := groq.NewClient(apiKey, cfg.Model)
			if cfg.APIBase != "" {
				client.SetBaseURL(cfg.APIBase)
			}

			opts := clone.Options{
				Temperature:  cfg.Temperature,
				MaxTokens:    cfg.MaxReplyTokens,
				HistoryTurns: cfg.HistoryTurns,
			}

			if !noSave {
				db, err := store.Open(cfg.DBPath)
				if err != nil {
					return fmt.Errorf("open db: %w", err)
				}
				defer db.Close()

				examples := len(messages)
				if examples > cfg.MaxExamples {
					examples = cfg.MaxExamples
				}
				chatID, err := db.CreateChat(friend, partner, file, examples)
				if err != nil {
					return fmt.Errorf("record chat: %w", err)
				}
				opts.Record = func(role, text string) {
					if err := db.AppendTurn(chatID, role, text); err != nil {
						fmt.Fprintf(os.Stderr, "warn: record turn: %v\n", err)
					}
				}
			}

			eng := clone.NewEngine(client, system, opts)

			if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(eng, friend, partner)
			}
			return runPlainChat(cmd, eng, friend, partner)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Line-based chat instead of the TUI")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record the conversation")
	cmd.Flags().StringVar(&modelFlag, "model", "", "Override the configured model")

	return cmd
}

// runPlainChat is the stdin fallback used for pipes and --plain.
func runPlainChat(cmd *cobra.Command, eng *clone.Engine, friend, partner string) error {
	fmt.Printf("Chatting with a clone of %s. Type 'quit' or 'exit' to stop.\n", friend)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s (you): ", partner)
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			fmt.Println("Goodbye!")
			return nil
		}

		reply, err := eng.Reply(cmd.Context(), input)
		if err != nil {
			if errors.Is(err, groq.ErrContextLength) {
				fmt.Fprintln(os.Stderr, "The prompt is too large; lower max_examples or history_turns in the config.")
			}
			fmt.Fprintf(os.Stderr, "%s (clone): sorry, no reply: %v\n", friend, err)
			continue
		}
		fmt.Printf("%s (clone): %s\n", friend, reply)
	}
}
