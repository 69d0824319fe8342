package cmd

import (
	"context"
	"fmt"

	"github.com/rubiojr/scour/pkg/config"
	"github.com/urfave/cli/v3"
)

// HistoryCommand creates the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent searches",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Delete all history entries",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return showHistory(c.String("config"), c.Int("limit"), c.Bool("clear"))
		},
	}
}

func showHistory(configPath string, limit int, clear bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if clear {
		if err := store.ClearHistory(); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Println("History cleared")
		return nil
	}

	entries, err := store.RecentSearches(limit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No search history")
		return nil
	}
	for _, entry := range entries {
		fmt.Printf("%s  %-10s %3d results  %s\n",
			entry.SearchedAt.Local().Format("2006-01-02 15:04"),
			entry.Intent, entry.ResultCount, entry.Query)
	}
	return nil
}
