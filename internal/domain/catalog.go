package domain

import (
	"math"
	"strings"
)

// TableStatistic is the per-source-table summary reported by the backend.
type TableStatistic struct {
	Name              string  `json:"name"`
	TotalProducts     int     `json:"total_products"`
	EmbeddingsCount   int     `json:"embeddings_count"`
	AvgPrice          float64 `json:"avg_price"`
	AvgRating         float64 `json:"avg_rating"`
	EmbeddingCoverage float64 `json:"embedding_coverage"`
}

// CoverageStatus buckets embedding coverage for progress displays.
type CoverageStatus string

const (
	CoverageComplete CoverageStatus = "complete"
	CoverageActive   CoverageStatus = "active"
	CoverageLagging  CoverageStatus = "lagging"
)

// CoverageStatus reports complete at 100%, active above 50%, lagging otherwise.
func (t TableStatistic) CoverageStatus() CoverageStatus {
	switch {
	case t.EmbeddingCoverage >= 100:
		return CoverageComplete
	case t.EmbeddingCoverage > 50:
		return CoverageActive
	default:
		return CoverageLagging
	}
}

// AggregateMetrics is the system-wide summary across all source tables.
type AggregateMetrics struct {
	TotalProducts   int     `json:"totalProducts"`
	TotalEmbeddings int     `json:"totalEmbeddings"`
	AvgPrice        float64 `json:"avgPrice"`
	AvgRating       float64 `json:"avgRating"`
	TotalTables     int     `json:"totalTables"`
}

// Coverage returns the overall embedding coverage in percent, 0 when empty.
func (m AggregateMetrics) Coverage() float64 {
	if m.TotalProducts <= 0 {
		return 0
	}
	return math.Round(float64(m.TotalEmbeddings)/float64(m.TotalProducts)*10000) / 100
}

// HitDetails carries the optional enrichment attached to a search hit.
type HitDetails struct {
	Price  Scalar `json:"price"`
	Rating Scalar `json:"rating"`
	Brand  Scalar `json:"brand"`
}

// RiskAnalysis is the precomputed risk block stored with a product.
type RiskAnalysis struct {
	OverallRisk          Scalar `json:"overall_risk"`
	RiskLevel            string `json:"risk_level"`
	PriceRisk            Scalar `json:"price_risk"`
	RatingRisk           Scalar `json:"rating_risk"`
	CompetitionRisk      Scalar `json:"competition_risk"`
	SellerRecommendation string `json:"seller_recommendation,omitempty"`
}

// RiskLevel is the normalised severity of a risk_level label.
type RiskLevel string

const (
	RiskHigh    RiskLevel = "high"
	RiskMedium  RiskLevel = "medium"
	RiskLow     RiskLevel = "low"
	RiskUnknown RiskLevel = "unknown"
)

// Level maps the backend's Turkish risk labels to a severity.
func (r RiskAnalysis) Level() RiskLevel {
	label := strings.ToUpper(r.RiskLevel)
	switch {
	case label == "":
		return RiskUnknown
	case strings.Contains(label, "YÜKSEK"):
		return RiskHigh
	case strings.Contains(label, "ORTA"):
		return RiskMedium
	case strings.Contains(label, "DÜŞÜK"):
		return RiskLow
	default:
		return RiskUnknown
	}
}

// RiskIcon picks the traffic-light glyph for a 0-10 risk score.
func RiskIcon(score float64) string {
	switch {
	case score >= 7:
		return "🔴"
	case score >= 5:
		return "🟡"
	case score >= 3:
		return "🟢"
	default:
		return "✅"
	}
}

// SearchHit is a raw search result as received from the backend.
type SearchHit struct {
	ID           Scalar        `json:"id"`
	Name         string        `json:"name"`
	SourceTable  string        `json:"source_table"`
	Similarity   float64       `json:"similarity"`
	CombinedText string        `json:"combined_text,omitempty"`
	Details      *HitDetails   `json:"details,omitempty"`
	RiskAnalysis *RiskAnalysis `json:"risk_analysis,omitempty"`
}

// ProductRef addresses a product inside one of the source tables.
type ProductRef struct {
	ID          string
	SourceTable string
}

// ProductDetails is the free-form attribute map of a single product.
type ProductDetails map[string]any

// SearchFilters narrows a semantic search on the backend.
type SearchFilters struct {
	PriceMin  *float64 `json:"price_min,omitempty"`
	PriceMax  *float64 `json:"price_max,omitempty"`
	RatingMin *float64 `json:"rating_min,omitempty"`
	Brands    []string `json:"brands,omitempty"`
}

// Analysis is the backend's answer to an AI analysis request.
type Analysis struct {
	Narrative      string         `json:"analysis"`
	ProductDetails ProductDetails `json:"product_details"`
	RiskAnalysis   RiskAnalysis   `json:"risk_analysis"`
}

// ChatReply is the assistant answer together with the number of catalog
// products used as context.
type ChatReply struct {
	Response        string `json:"response"`
	ContextProducts int    `json:"context_products"`
}
