package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jlamarre/clonechat/internal/render"
	"github.com/jlamarre/clonechat/internal/transcript"
)

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <chat-file> <friend>",
		Short: "Parse an exported chat and print the friend's messages",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, friend := args[0], args[1]

			parser := transcript.New(nil)
			messages, partner := parser.ParseFile(file, friend)
			if len(messages) == 0 {
				return nil // parser already printed the notice
			}

			if partner != "" {
				fmt.Fprintf(os.Stderr, "Other participant: %s\n", partner)
			}

			width := 0
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}

			fmt.Print(render.Messages(friend, messages, width))
			return nil
		},
	}
}
