package cmd

import (
	"context"
	"fmt"

	"github.com/rubiojr/scour/pkg/config"
	"github.com/rubiojr/scour/pkg/core"
	"github.com/urfave/cli/v3"
)

// BookmarksCommand creates the bookmarks command group
func BookmarksCommand() *cli.Command {
	return &cli.Command{
		Name:  "bookmarks",
		Usage: "Manage saved results",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List bookmarks",
				Action: func(ctx context.Context, c *cli.Command) error {
					return listBookmarks(c.String("config"))
				},
			},
			{
				Name:      "add",
				Usage:     "Save a link",
				ArgsUsage: "<url> [title]",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() == 0 {
						return fmt.Errorf("a url is required")
					}
					return addBookmark(c.String("config"), c.Args().Get(0), c.Args().Get(1))
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a bookmark by id",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() == 0 {
						return fmt.Errorf("a bookmark id is required")
					}
					return deleteBookmark(c.String("config"), c.Args().Get(0))
				},
			},
		},
	}
}

func listBookmarks(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bookmarks, err := store.Bookmarks()
	if err != nil {
		return fmt.Errorf("reading bookmarks: %w", err)
	}
	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks")
		return nil
	}
	for _, b := range bookmarks {
		fmt.Printf("%s  %s\n    %s\n", b.ID, b.Title, b.Link)
	}
	return nil
}

func addBookmark(configPath, link, title string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if title == "" {
		title = link
	}
	bookmark, err := store.AddBookmark(core.ResultItem{Title: title, Link: link})
	if err != nil {
		return fmt.Errorf("saving bookmark: %w", err)
	}
	fmt.Printf("Saved %s (%s)\n", bookmark.Link, bookmark.ID)
	return nil
}

func deleteBookmark(configPath, id string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteBookmark(id); err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	fmt.Println("Deleted")
	return nil
}
