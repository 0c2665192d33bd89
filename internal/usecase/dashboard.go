package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"CatalogLens/internal/domain"
	"CatalogLens/internal/labels"
	"CatalogLens/internal/metrics"
	"CatalogLens/internal/narrative"
	"CatalogLens/internal/ports"
	"CatalogLens/internal/validate"
)

var (
	// ErrEmptyQuery is returned for blank search queries.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrEmptyMessage is returned for blank chat messages.
	ErrEmptyMessage = errors.New("chat message is empty")
	// ErrMissingProduct is returned when a product reference is incomplete.
	ErrMissingProduct = errors.New("product id and source table are required")
	// ErrNotConfigured is returned when the port an operation needs is absent.
	ErrNotConfigured = errors.New("dependency is not configured")
)

// DashboardDeps wires all driven adapters into the dashboard use cases.
type DashboardDeps struct {
	Stats           ports.StatsSource
	Searcher        ports.ProductSearcher
	Catalog         ports.ProductCatalog
	Analyst         ports.Analyst
	Cleaner         ports.NarrativeCleaner
	Segmenter       *narrative.Segmenter
	SearchLimit     int
	DefaultQuestion string
	Logger          *slog.Logger
}

// Dashboard turns backend responses into view-ready data.
type Dashboard struct {
	stats           ports.StatsSource
	searcher        ports.ProductSearcher
	catalog         ports.ProductCatalog
	analyst         ports.Analyst
	cleaner         ports.NarrativeCleaner
	segmenter       *narrative.Segmenter
	searchLimit     int
	defaultQuestion string
	logger          *slog.Logger
}

// NewDashboard constructs the orchestration component.
func NewDashboard(deps DashboardDeps) *Dashboard {
	segmenter := deps.Segmenter
	if segmenter == nil {
		segmenter = narrative.NewSegmenter(nil)
	}
	limit := deps.SearchLimit
	if limit <= 0 {
		limit = 10
	}

	return &Dashboard{
		stats:           deps.Stats,
		searcher:        deps.Searcher,
		catalog:         deps.Catalog,
		analyst:         deps.Analyst,
		cleaner:         deps.Cleaner,
		segmenter:       segmenter,
		searchLimit:     limit,
		defaultQuestion: deps.DefaultQuestion,
		logger:          deps.Logger,
	}
}

// Overview is the per-table breakdown plus its system-wide aggregate.
type Overview struct {
	Tables  []domain.TableStatistic
	Metrics domain.AggregateMetrics
}

// Overview fetches table statistics and aggregates them.
func (d *Dashboard) Overview(ctx context.Context) (Overview, error) {
	if d.stats == nil {
		return Overview{}, fmt.Errorf("overview: %w: stats source", ErrNotConfigured)
	}

	tables, err := d.stats.TableStats(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("fetch table stats: %w", err)
	}

	result := Overview{Tables: tables, Metrics: metrics.Aggregate(tables)}
	d.debug("overview ready", "tables", result.Metrics.TotalTables, "products", result.Metrics.TotalProducts)
	return result, nil
}

// SearchRequest describes one product search.
type SearchRequest struct {
	Query   string
	Filters domain.SearchFilters
	Limit   int
}

// SearchResult holds the displayable hits in backend order.
type SearchResult struct {
	Query   string
	Hits    []domain.SearchHit
	Dropped int
}

// Search runs a search and drops hits that are not displayable.
func (d *Dashboard) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return SearchResult{}, ErrEmptyQuery
	}
	if d.searcher == nil {
		return SearchResult{}, fmt.Errorf("search: %w: searcher", ErrNotConfigured)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = d.searchLimit
	}

	hits, err := d.searcher.Search(ctx, query, req.Filters, limit)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search %q: %w", query, err)
	}

	kept := validate.Filter(hits)
	if dropped := len(hits) - len(kept); dropped > 0 {
		d.debug("dropped undisplayable hits", "query", query, "dropped", dropped)
	}

	return SearchResult{Query: query, Hits: kept, Dropped: len(hits) - len(kept)}, nil
}

// AnalysisReport is a segmented AI analysis of one product.
type AnalysisReport struct {
	Product      domain.ProductRef
	Narrative    string
	Sections     []domain.NarrativeSection
	RiskAnalysis domain.RiskAnalysis
	Details      domain.ProductDetails
}

// Analyze requests a narrative for ref and segments it. An empty question
// uses the configured default.
func (d *Dashboard) Analyze(ctx context.Context, ref domain.ProductRef, question string) (AnalysisReport, error) {
	if err := checkRef(ref); err != nil {
		return AnalysisReport{}, err
	}
	if d.analyst == nil {
		return AnalysisReport{}, fmt.Errorf("analyze: %w: analyst", ErrNotConfigured)
	}

	if strings.TrimSpace(question) == "" {
		question = d.defaultQuestion
	}

	analysis, err := d.analyst.Analyze(ctx, ref, question)
	if err != nil {
		return AnalysisReport{}, fmt.Errorf("analyze product %s/%s: %w", ref.SourceTable, ref.ID, err)
	}

	text := d.plainText(analysis.Narrative)
	sections := d.segmenter.Segment(text)
	if len(sections) == 0 && strings.TrimSpace(text) != "" {
		d.warn("narrative has no sections", "product", ref.ID, "table", ref.SourceTable)
	}

	return AnalysisReport{
		Product:      ref,
		Narrative:    text,
		Sections:     sections,
		RiskAnalysis: analysis.RiskAnalysis,
		Details:      analysis.ProductDetails,
	}, nil
}

// Details returns the labelled attributes of one product. The risk block
// is reported separately by Analyze and is left out here.
func (d *Dashboard) Details(ctx context.Context, ref domain.ProductRef) ([]labels.Field, error) {
	if err := checkRef(ref); err != nil {
		return nil, err
	}
	if d.catalog == nil {
		return nil, fmt.Errorf("details: %w: catalog", ErrNotConfigured)
	}

	details, err := d.catalog.ProductDetails(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("product details %s/%s: %w", ref.SourceTable, ref.ID, err)
	}
	return labels.Fields(details, "risk_analysis"), nil
}

// ChatAnswer is an assistant reply plus its segmented form.
type ChatAnswer struct {
	Reply           string
	Sections        []domain.NarrativeSection
	ContextProducts int
}

// Chat forwards message to the assistant and segments the reply.
func (d *Dashboard) Chat(ctx context.Context, message string) (ChatAnswer, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatAnswer{}, ErrEmptyMessage
	}
	if d.analyst == nil {
		return ChatAnswer{}, fmt.Errorf("chat: %w: analyst", ErrNotConfigured)
	}

	reply, err := d.analyst.Chat(ctx, message)
	if err != nil {
		return ChatAnswer{}, fmt.Errorf("chat: %w", err)
	}

	text := d.plainText(reply.Response)
	return ChatAnswer{
		Reply:           text,
		Sections:        d.segmenter.Segment(text),
		ContextProducts: reply.ContextProducts,
	}, nil
}

// Brands lists the catalog brands usable as search filters.
func (d *Dashboard) Brands(ctx context.Context) ([]string, error) {
	if d.catalog == nil {
		return nil, fmt.Errorf("brands: %w: catalog", ErrNotConfigured)
	}

	brands, err := d.catalog.Brands(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch brands: %w", err)
	}
	return brands, nil
}

func (d *Dashboard) plainText(text string) string {
	if d.cleaner == nil {
		return text
	}
	return d.cleaner.PlainText(text)
}

func checkRef(ref domain.ProductRef) error {
	if strings.TrimSpace(ref.ID) == "" || strings.TrimSpace(ref.SourceTable) == "" {
		return ErrMissingProduct
	}
	return nil
}

func (d *Dashboard) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}

func (d *Dashboard) warn(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Warn(msg, args...)
	}
}
