package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/rubiojr/scour/pkg/config"
	"github.com/rubiojr/scour/pkg/core"
	"github.com/urfave/cli/v3"
)

// SourcesCommand creates the sources command
func SourcesCommand() *cli.Command {
	return &cli.Command{
		Name:  "sources",
		Usage: "List the per-intent source catalog",
		Action: func(ctx context.Context, c *cli.Command) error {
			return listSources(c.String("config"))
		},
	}
}

func listSources(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	catalog := cfg.Catalog()
	intents := make([]core.Intent, 0, len(catalog))
	for intent := range catalog {
		intents = append(intents, intent)
	}
	sort.Slice(intents, func(i, j int) bool { return intents[i] < intents[j] })

	for _, intent := range intents {
		fmt.Printf("%s:\n", intent)
		for _, src := range catalog[intent] {
			if src.Scoped() {
				fmt.Printf("  %-16s %s (%s, %s)\n", src.ID, src.DisplayName, src.SiteDomain, src.Kind)
			} else {
				fmt.Printf("  %-16s %s (%s)\n", src.ID, src.DisplayName, src.Kind)
			}
		}
	}
	return nil
}
