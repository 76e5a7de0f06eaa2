package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jlamarre/clonechat/internal/config"
	"github.com/jlamarre/clonechat/internal/render"
	"github.com/jlamarre/clonechat/internal/store"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded clone conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			chats, err := db.ListChats()
			if err != nil {
				return fmt.Errorf("list chats: %w", err)
			}
			if len(chats) == 0 {
				fmt.Fprintln(os.Stderr, "No recorded chats yet.")
				return nil
			}

			for _, c := range chats {
				partner := c.Partner
				if partner == "" {
					partner = "-"
				}
				fmt.Printf("%d\t%s\t%s\t%s\t%d turns\n",
					c.ID, c.StartedAt, c.Friend, partner, c.Turns)
			}
			return nil
		},
	}

	cmd.AddCommand(historyShowCmd())
	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one recorded conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid chat id %q", args[0])
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			chat, err := db.GetChat(id)
			if err != nil {
				return fmt.Errorf("get chat: %w", err)
			}
			if chat == nil {
				return fmt.Errorf("chat %d not found", id)
			}

			turns, err := db.GetTurns(id)
			if err != nil {
				return fmt.Errorf("get turns: %w", err)
			}

			width := 0
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}

			fmt.Print(render.Chat(*chat, turns, width))
			return nil
		},
	}
}
