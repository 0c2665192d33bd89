package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"CatalogLens/internal/app"
	"CatalogLens/internal/config"
	"CatalogLens/internal/domain"
	"CatalogLens/internal/logging"
	"CatalogLens/internal/usecase"
)

// loadApp builds the application from the global flags.
func loadApp(c *cli.Context) (*app.Application, error) {
	cfg := config.LoadFrom(c.String("config"))
	if level := c.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if c.Command.Name == "watch" && c.Duration("interval") > 0 {
		cfg.Dashboard.RefreshInterval = c.Duration("interval")
	}

	logger := logging.New(cfg.Logging.Level)
	return app.New(cfg, c.String("source"), os.Stdout, logger)
}

func statsAction(c *cli.Context) error {
	application, err := loadApp(c)
	if err != nil {
		return err
	}
	defer application.Close()

	overview, err := application.Dashboard().Overview(c.Context)
	if err != nil {
		return err
	}
	return application.Presenter().Overview(overview)
}

func searchAction(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search: %w", usecase.ErrEmptyQuery)
	}

	application, err := loadApp(c)
	if err != nil {
		return err
	}
	defer application.Close()

	result, err := application.Dashboard().Search(c.Context, usecase.SearchRequest{
		Query:   query,
		Filters: searchFilters(c),
		Limit:   c.Int("limit"),
	})
	if err != nil {
		return err
	}
	return application.Presenter().SearchResult(result)
}

func searchFilters(c *cli.Context) domain.SearchFilters {
	var filters domain.SearchFilters
	if c.IsSet("min-price") {
		v := c.Float64("min-price")
		filters.PriceMin = &v
	}
	if c.IsSet("max-price") {
		v := c.Float64("max-price")
		filters.PriceMax = &v
	}
	if c.IsSet("min-rating") {
		v := c.Float64("min-rating")
		filters.RatingMin = &v
	}
	filters.Brands = c.StringSlice("brand")
	return filters
}

func analyzeAction(c *cli.Context) error {
	application, err := loadApp(c)
	if err != nil {
		return err
	}
	defer application.Close()

	report, err := application.Dashboard().Analyze(c.Context, productRef(c), c.String("question"))
	if err != nil {
		return err
	}
	application.Presenter().Analysis(report)
	return nil
}

func detailsAction(c *cli.Context) error {
	application, err := loadApp(c)
	if err != nil {
		return err
	}
	defer application.Close()

	fields, err := application.Dashboard().Details(c.Context, productRef(c))
	if err != nil {
		return err
	}
	return application.Presenter().Fields(fields)
}

func productRef(c *cli.Context) domain.ProductRef {
	return domain.ProductRef{
		ID:          strings.TrimSpace(c.String("id")),
		SourceTable: strings.TrimSpace(c.String("table")),
	}
}

func chatAction(c *cli.Context) error {
	application, err := loadApp(c)
	if err != nil {
		return err
	}
	defer application.Close()

	answer, err := application.Dashboard().Chat(c.Context, strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return err
	}
	application.Presenter().Chat(answer)
	return nil
}

func brandsAction(c *cli.Context) error {
	application, err := loadApp(c)
	if err != nil {
		return err
	}
	defer application.Close()

	brands, err := application.Dashboard().Brands(c.Context)
	if err != nil {
		return err
	}
	application.Presenter().Brands(brands)
	return nil
}

func watchAction(c *cli.Context) error {
	application, err := loadApp(c)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Watch(c.Context)
}
