package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"CatalogLens/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logging.New("error").Error("cataloglens stopped", "error", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "cataloglens",
		Usage: "catalog statistics, semantic search and AI analysis in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the YAML config file",
				EnvVars: []string{"CATALOG_LENS_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "statistics backend: api or db",
				Value: "api",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "error, warn, info or debug (overrides config)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "show per-table statistics and aggregate metrics",
				Action: statsAction,
			},
			{
				Name:      "search",
				Usage:     "semantic product search",
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "maximum number of hits (0 uses config)"},
					&cli.Float64Flag{Name: "min-price", Usage: "minimum price"},
					&cli.Float64Flag{Name: "max-price", Usage: "maximum price"},
					&cli.Float64Flag{Name: "min-rating", Usage: "minimum rating"},
					&cli.StringSliceFlag{Name: "brand", Usage: "restrict to brand (repeatable)"},
				},
				Action: searchAction,
			},
			{
				Name:  "analyze",
				Usage: "AI risk analysis of one product",
				Flags: append(productFlags(),
					&cli.StringFlag{Name: "question", Aliases: []string{"q"}, Usage: "question for the analyst (default from config)"},
				),
				Action: analyzeAction,
			},
			{
				Name:   "details",
				Usage:  "labelled attributes of one product",
				Flags:  productFlags(),
				Action: detailsAction,
			},
			{
				Name:      "chat",
				Usage:     "ask the catalog assistant",
				ArgsUsage: "<message>",
				Action:    chatAction,
			},
			{
				Name:   "brands",
				Usage:  "list known brands",
				Action: brandsAction,
			},
			{
				Name:  "watch",
				Usage: "refresh statistics periodically until interrupted",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "interval", Usage: "refresh interval (overrides config)"},
				},
				Action: watchAction,
			},
		},
	}
}

func productFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "id", Usage: "product id", Required: true},
		&cli.StringFlag{Name: "table", Usage: "source table of the product", Required: true},
	}
}
