package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"CatalogLens/internal/config"
	"CatalogLens/internal/domain"
	"CatalogLens/internal/ports"
)

// PostgresStatsSource computes per-table statistics straight from the
// product database. Every "<table><suffix>" embedding table is paired with
// its "<table>" source table.
type PostgresStatsSource struct {
	db          *sql.DB
	schema      string
	suffix      string
	parallelism int
	logger      *slog.Logger
	builder     sq.StatementBuilderType
}

var _ ports.StatsSource = (*PostgresStatsSource)(nil)

// Open connects to Postgres using the lib/pq driver.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresStatsSource wires a sql.DB implementation.
func NewPostgresStatsSource(db *sql.DB, cfg config.DatabaseConfig, logger *slog.Logger) *PostgresStatsSource {
	schema := cfg.Schema
	if schema == "" {
		schema = "public"
	}
	suffix := cfg.EmbeddingSuffix
	if suffix == "" {
		suffix = "_embeddings"
	}
	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}

	return &PostgresStatsSource{
		db:          db,
		schema:      schema,
		suffix:      suffix,
		parallelism: parallelism,
		logger:      logger,
		builder:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// TableStats returns statistics for every embedding table whose source
// table exists and holds at least one product, ordered by table name.
func (s *PostgresStatsSource) TableStats(ctx context.Context) ([]domain.TableStatistic, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database is not configured")
	}

	tables, err := s.embeddingTables(ctx)
	if err != nil {
		return nil, err
	}
	s.debug("embedding tables", "count", len(tables))

	found := make([]*domain.TableStatistic, len(tables))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for i, table := range tables {
		g.Go(func() error {
			stat, err := s.tableStat(gctx, table)
			if err != nil {
				return fmt.Errorf("table %s: %w", table, err)
			}
			found[i] = stat
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := make([]domain.TableStatistic, 0, len(found))
	for _, stat := range found {
		if stat != nil {
			stats = append(stats, *stat)
		}
	}
	return stats, nil
}

func (s *PostgresStatsSource) embeddingTables(ctx context.Context) ([]string, error) {
	query, args, err := s.listTablesQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build table list: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query table list: %w", err)
	}

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return tables, nil
}

// tableStat returns nil without error when the source table is missing or
// empty.
func (s *PostgresStatsSource) tableStat(ctx context.Context, embeddingTable string) (*domain.TableStatistic, error) {
	source := strings.TrimSuffix(embeddingTable, s.suffix)

	var exists int
	if err := s.queryRow(ctx, s.tableExistsQuery(source), &exists); err != nil {
		return nil, fmt.Errorf("check source table: %w", err)
	}
	if exists == 0 {
		s.warn("source table missing", "table", source)
		return nil, nil
	}

	var embeddings int
	if err := s.queryRow(ctx, s.countQuery(embeddingTable), &embeddings); err != nil {
		return nil, fmt.Errorf("count embeddings: %w", err)
	}

	var (
		total     int
		avgPrice  sql.NullFloat64
		avgRating sql.NullFloat64
	)
	if err := s.queryRow(ctx, s.productStatsQuery(source), &total, &avgPrice, &avgRating); err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	return &domain.TableStatistic{
		Name:              DisplayName(source),
		TotalProducts:     total,
		EmbeddingsCount:   embeddings,
		AvgPrice:          avgPrice.Float64,
		AvgRating:         avgRating.Float64,
		EmbeddingCoverage: Coverage(embeddings, total),
	}, nil
}

func (s *PostgresStatsSource) queryRow(ctx context.Context, b sq.SelectBuilder, dest ...any) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return s.db.QueryRowContext(ctx, query, args...).Scan(dest...)
}

func (s *PostgresStatsSource) listTablesQuery() sq.SelectBuilder {
	return s.builder.
		Select("table_name").
		From("information_schema.tables").
		Where(sq.Eq{"table_schema": s.schema}).
		Where(sq.Like{"table_name": "%" + escapeLike(s.suffix)}).
		OrderBy("table_name")
}

func (s *PostgresStatsSource) tableExistsQuery(table string) sq.SelectBuilder {
	return s.builder.
		Select("COUNT(*)").
		From("information_schema.tables").
		Where(sq.Eq{"table_schema": s.schema}).
		Where(sq.Eq{"table_name": table})
}

func (s *PostgresStatsSource) countQuery(table string) sq.SelectBuilder {
	return s.builder.Select("COUNT(*)").From(s.qualified(table))
}

func (s *PostgresStatsSource) productStatsQuery(table string) sq.SelectBuilder {
	return s.builder.
		Select(
			"COUNT(*)",
			"AVG(CASE WHEN price > 0 THEN price END)",
			"AVG(CASE WHEN rating > 0 THEN rating END)",
		).
		From(s.qualified(table))
}

func (s *PostgresStatsSource) qualified(table string) string {
	return pq.QuoteIdentifier(s.schema) + "." + pq.QuoteIdentifier(table)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(v string) string {
	return likeEscaper.Replace(v)
}

var titleCase = cases.Title(language.Und)

// DisplayName turns a table name such as "klima_urunleri" into "Klima Urunleri".
func DisplayName(table string) string {
	return titleCase.String(strings.ReplaceAll(table, "_", " "))
}

// Coverage is the embedded share of products in percent, rounded to two
// decimals.
func Coverage(embeddings, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(embeddings)/float64(total)*10000) / 100
}

func (s *PostgresStatsSource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *PostgresStatsSource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
