package ports

import (
	"context"
	"time"

	"CatalogLens/internal/domain"
)

// StatsSource returns per-table catalog statistics.
type StatsSource interface {
	TableStats(ctx context.Context) ([]domain.TableStatistic, error)
}

// ProductSearcher runs semantic product searches.
type ProductSearcher interface {
	Search(ctx context.Context, query string, filters domain.SearchFilters, limit int) ([]domain.SearchHit, error)
}

// ProductCatalog resolves single products and catalog-wide facets.
type ProductCatalog interface {
	ProductDetails(ctx context.Context, ref domain.ProductRef) (domain.ProductDetails, error)
	Brands(ctx context.Context) ([]string, error)
}

// Analyst asks the text-generation backend for narratives.
type Analyst interface {
	Analyze(ctx context.Context, ref domain.ProductRef, question string) (domain.Analysis, error)
	Chat(ctx context.Context, message string) (domain.ChatReply, error)
}

// NarrativeCleaner reduces markup in generated text to plain lines.
type NarrativeCleaner interface {
	PlainText(text string) string
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
