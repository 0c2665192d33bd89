package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"CatalogLens/internal/domain"
)

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.AggregateMetrics{}, Aggregate(nil))
	assert.Equal(t, domain.AggregateMetrics{}, Aggregate([]domain.TableStatistic{}))
}

func TestAggregateIsWeightedByProducts(t *testing.T) {
	t.Parallel()

	got := Aggregate([]domain.TableStatistic{
		{Name: "A", TotalProducts: 100, AvgPrice: 100, AvgRating: 4},
		{Name: "B", TotalProducts: 1, AvgPrice: 10000, AvgRating: 1},
	})

	assert.Equal(t, 101, got.TotalProducts)
	assert.Equal(t, 2, got.TotalTables)
	assert.InDelta(t, 198.0198, got.AvgPrice, 0.001)
	assert.InDelta(t, 401.0/101.0, got.AvgRating, 1e-9)
	assert.NotEqual(t, 5050.0, got.AvgPrice)
}

func TestAggregateSums(t *testing.T) {
	t.Parallel()

	got := Aggregate([]domain.TableStatistic{
		{Name: "Klima", TotalProducts: 40, EmbeddingsCount: 40, AvgPrice: 25000, AvgRating: 4.5, EmbeddingCoverage: 100},
		{Name: "Telefon", TotalProducts: 60, EmbeddingsCount: 30, AvgPrice: 15000, AvgRating: 4.0, EmbeddingCoverage: 50},
	})

	assert.Equal(t, domain.AggregateMetrics{
		TotalProducts:   100,
		TotalEmbeddings: 70,
		AvgPrice:        19000,
		AvgRating:       4.2,
		TotalTables:     2,
	}, roundedRating(got))
}

func TestAggregateZeroProductTables(t *testing.T) {
	t.Parallel()

	got := Aggregate([]domain.TableStatistic{
		{Name: "Empty", TotalProducts: 0, AvgPrice: 99999, AvgRating: 5},
		{Name: "Real", TotalProducts: 10, EmbeddingsCount: 5, AvgPrice: 50, AvgRating: 3},
	})
	assert.Equal(t, 2, got.TotalTables)
	assert.InDelta(t, 50, got.AvgPrice, 1e-9)
	assert.InDelta(t, 3, got.AvgRating, 1e-9)

	onlyEmpty := Aggregate([]domain.TableStatistic{{Name: "Empty", AvgPrice: 10, AvgRating: 4}})
	assert.Equal(t, domain.AggregateMetrics{TotalTables: 1}, onlyEmpty)
}

func TestAggregateCoverage(t *testing.T) {
	t.Parallel()

	got := Aggregate([]domain.TableStatistic{
		{TotalProducts: 3, EmbeddingsCount: 2},
	})
	assert.InDelta(t, 66.67, got.Coverage(), 1e-9)
	assert.Zero(t, Aggregate(nil).Coverage())
}

func roundedRating(m domain.AggregateMetrics) domain.AggregateMetrics {
	m.AvgRating = float64(int(m.AvgRating*1000+0.5)) / 1000
	return m
}
