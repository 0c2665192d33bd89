// Package metrics combines per-table catalog statistics into system-wide figures.
package metrics

import "CatalogLens/internal/domain"

// Aggregate sums product and embedding counts and weights the average price
// and rating of every table by its product count. With no products the
// averages are 0.
func Aggregate(tables []domain.TableStatistic) domain.AggregateMetrics {
	var (
		totalProducts   int
		totalEmbeddings int
		priceSum        float64
		ratingSum       float64
	)

	for _, table := range tables {
		weight := float64(table.TotalProducts)
		totalProducts += table.TotalProducts
		totalEmbeddings += table.EmbeddingsCount
		priceSum += table.AvgPrice * weight
		ratingSum += table.AvgRating * weight
	}

	result := domain.AggregateMetrics{
		TotalProducts:   totalProducts,
		TotalEmbeddings: totalEmbeddings,
		TotalTables:     len(tables),
	}
	if totalProducts > 0 {
		result.AvgPrice = priceSum / float64(totalProducts)
		result.AvgRating = ratingSum / float64(totalProducts)
	}
	return result
}
