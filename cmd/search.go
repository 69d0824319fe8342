package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/scour/pkg/config"
	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/geo"
	"github.com/rubiojr/scour/pkg/rank"
	"github.com/rubiojr/scour/pkg/search"
	"github.com/urfave/cli/v3"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 0, 1, 2)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("32")).
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("32")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Margin(0, 0, 1, 0)

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run a search from the terminal",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sources",
				Usage: "Source selector (\"all\" or comma-separated IDs/domains)",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Results per page",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort order: relevance, recent, mostViewed, mostEngaged",
			},
			&cli.StringFlag{
				Name:  "intent",
				Usage: "Explicit intent (skips classification)",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "Manual location: country name",
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "Manual location: state or region",
			},
			&cli.StringFlag{
				Name:  "city",
				Usage: "Manual location: city",
			},
			&cli.StringFlag{
				Name:  "location",
				Usage: "Manual location: free-form string",
			},
			&cli.BoolFlag{
				Name:  "global",
				Usage: "Search without any geographic restriction",
			},
			&cli.StringFlag{
				Name:  "time-range",
				Usage: "Restrict by age: any, day, week, month, year",
			},
			&cli.StringFlag{
				Name:  "language",
				Usage: "Restrict by language (ISO-639-1 code)",
			},
			&cli.StringFlag{
				Name:  "file-type",
				Usage: "Restrict to a document format: pdf, doc, ppt, xls",
			},
			&cli.StringFlag{
				Name:  "site",
				Usage: "Scope the search to one domain",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return fmt.Errorf("a query is required")
			}
			return runSearch(ctx, c, query)
		},
	}
}

func runSearch(ctx context.Context, c *cli.Command, query string) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	service := buildService(cfg)
	defer service.Close()

	params := search.SearchParams{
		Query:          query,
		SourceSelector: c.String("sources"),
		Page:           c.Int("page"),
		Limit:          c.Int("limit"),
		Sort:           rank.ParseOrder(c.String("sort")),
		Intent:         c.String("intent"),
		AutoIntent:     true,
		SiteOverride:   c.String("site"),
		Manual: core.PartialLocation{
			Country:  c.String("country"),
			State:    c.String("state"),
			City:     c.String("city"),
			FreeText: c.String("location"),
		},
		Filters: core.SearchFilters{
			TimeRange: core.TimeRange(c.String("time-range")),
			Language:  c.String("language"),
			FileType:  core.FileType(c.String("file-type")),
		},
	}
	switch {
	case c.Bool("global"):
		params.LocationMode = geo.ModeGlobal
	case !params.Manual.Empty():
		params.LocationMode = geo.ModeManual
	default:
		params.LocationMode = geo.ModeGlobal // no IP detection from the CLI
	}

	results, err := service.Search(ctx, params)
	if err != nil {
		return err
	}

	fmt.Print(renderResults(query, results))
	return nil
}

func renderResults(query string, results *search.SearchResults) string {
	var out strings.Builder

	header := fmt.Sprintf("%d results for %q (%s)", len(results.Results), query, results.Intent)
	out.WriteString(titleStyle.Render(header))
	out.WriteString("\n")

	if results.Blocked {
		out.WriteString(noDataStyle.Render(results.Message))
		out.WriteString("\n")
		return out.String()
	}
	if results.CorrectedQuery != "" && results.CorrectedQuery != query {
		out.WriteString(noticeStyle.Render(fmt.Sprintf("Showing results for %q", results.CorrectedQuery)))
		out.WriteString("\n")
	}
	if results.Summary != "" {
		out.WriteString(summaryStyle.Render(results.Summary))
		out.WriteString("\n")
	}
	if len(results.Results) == 0 {
		out.WriteString(noDataStyle.Render("No results found."))
		out.WriteString("\n")
		return out.String()
	}

	for i, item := range results.Results {
		out.WriteString(renderResult(i+1, item))
		out.WriteString("\n")
	}

	if len(results.Tabs) > 0 {
		names := make([]string, 0, len(results.Tabs))
		for _, tile := range results.Tabs {
			names = append(names, fmt.Sprintf("%s (%d)", tile.DisplayName, tile.Count))
		}
		out.WriteString(metaStyle.Render("Tabs: " + strings.Join(names, ", ")))
		out.WriteString("\n")
	}
	if len(results.RelatedSearches) > 0 {
		out.WriteString(metaStyle.Render("Related: " + strings.Join(results.RelatedSearches, ", ")))
		out.WriteString("\n")
	}

	footer := fmt.Sprintf("Page %d of %d", results.Pagination.CurrentPage, results.Pagination.TotalPages)
	out.WriteString(metaStyle.Render(footer))
	out.WriteString("\n")
	return out.String()
}

func renderResult(position int, item core.ResultItem) string {
	var content strings.Builder

	title := fmt.Sprintf("%d. %s", position, item.Title)
	content.WriteString(lipgloss.NewStyle().Bold(true).Render(title))

	if item.Snippet != "" {
		content.WriteString("\n" + item.Snippet)
	}
	content.WriteString("\n" + linkStyle.Render(item.Link))

	meta := []string{string(item.Kind), item.SourceID}
	if item.Date != "" {
		meta = append(meta, item.Date)
	}
	content.WriteString("\n" + metaStyle.Render(strings.Join(meta, " · ")))

	return resultStyle.Render(content.String())
}
