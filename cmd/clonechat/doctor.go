package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jlamarre/clonechat/internal/config"
	"github.com/jlamarre/clonechat/internal/store"
	"github.com/jlamarre/clonechat/internal/transcript"
)

func doctorCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, API key, DB, and optionally a chat file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			fmt.Printf("  Model:            %s\n", cfg.Model)
			fmt.Printf("  Max examples:     %d\n", cfg.MaxExamples)
			fmt.Printf("  History turns:    %d\n", cfg.HistoryTurns)
			fmt.Printf("  Max reply tokens: %d\n", cfg.MaxReplyTokens)

			fmt.Println("\n=== API Key ===")
			if config.APIKey() == "" {
				fmt.Printf("  %s: NOT SET\n", config.APIKeyEnv())
			} else {
				fmt.Printf("  %s: set\n", config.APIKeyEnv())
			}

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (created on first chat)")
			} else {
				db, err := store.Open(cfg.DBPath)
				if err != nil {
					return fmt.Errorf("open db: %w", err)
				}
				defer db.Close()

				chats, err := db.ChatCount()
				if err != nil {
					return fmt.Errorf("count chats: %w", err)
				}
				turns, err := db.TurnCount()
				if err != nil {
					return fmt.Errorf("count turns: %w", err)
				}
				fmt.Printf("  Chats: %d\n", chats)
				fmt.Printf("  Turns: %d\n", turns)
			}

			if file != "" {
				fmt.Println("\n=== Chat File ===")
				checkChatFile(file)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Exported chat file to smoke-check")

	return cmd
}

// checkChatFile parses the export with no target, which reports the first
// detected participant without extracting anyone's messages.
func checkChatFile(path string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("  %s (NOT FOUND)\n", path)
		return
	}
	fmt.Printf("  %s (%d bytes)\n", path, info.Size())

	var diag bytes.Buffer
	parser := transcript.New(nil)
	parser.Diag = &diag

	_, participant := parser.ParseFile(path, "")
	if participant == "" {
		fmt.Println("  Status: no messages recognized")
		return
	}
	fmt.Printf("  Detected participant: %s\n", participant)
}
