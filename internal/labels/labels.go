// Package labels maps product attribute keys to Turkish display labels.
package labels

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var known = map[string]string{
	"barrier_to_entry":            "Pazara Giriş Engeli",
	"break_even_time":             "Başabaş Noktası",
	"cash_flow_impact":            "Nakit Akışı Etkisi",
	"competition_level":           "Rekabet Seviyesi",
	"competitive_positioning":     "Rekabet Konumu",
	"confidence_level":            "Güven Skoru",
	"cost_optimization":           "Maliyet Optimizasyonu",
	"customer_insights":           "Müşteri Analizi",
	"customer_satisfaction_risk":  "Müşteri Memnuniyeti Riski",
	"decision":                    "Karar",
	"differentiation_opportunity": "Farklılaşma Fırsatı",
	"estimated_monthly_sales":     "Tahmini Aylık Satış",
	"executive_summary":           "Satıcı Özeti",
	"exit_strategy":               "Çıkış Stratejisi",
	"financial_projections":       "Mali Tahminler",
	"future_outlook":              "Gelecek Beklentisi",
	"growth_potential":            "Büyüme Potansiyeli",
	"growth_strategies":           "Büyüme Stratejileri",
	"immediate_actions":           "Acil Eylemler",
	"innovation_impact":           "Yenilik Etkisi",
	"inventory_recommendation":    "Stok Tavsiyesi",
	"inventory_strategy":          "Stok Stratejisi",
	"last_updated":                "Son Güncelleme",
	"logistics_complexity":        "Lojistik Karmaşıklığı",
	"main_risks":                  "Ana Riskler",
	"market_demand":               "Pazar Talebi",
	"market_saturation":           "Pazar Doygunluğu",
	"marketing_angles":            "Pazarlama Açısı",
	"marketing_focus":             "Pazarlama Odağı",
	"mitigation_strategies":       "Azaltım Stratejileri",
	"monthly_revenue_estimate":    "Aylık Gelir Tahmini",
	"operational_advice":          "Operasyon Tavsiyeleri",
	"overall_rating":              "Genel Derecelendirme",
	"overall_risk_score":          "Risk Skoru",
	"platform":                    "Satış Platformu",
	"price_category":              "Fiyat Segmenti",
	"price_competitiveness":       "Fiyat Rekabeti",
	"price_trend":                 "Fiyat Eğilimi",
	"pricing_opportunities":       "Fiyatlandırma Fırsatları",
	"priority_level":              "Öncelik Seviyesi",
	"product_id":                  "Ürün Kimliği",
	"product_url":                 "Ürün Linki",
	"profit_margin_estimate":      "Kâr Marjı Tahmini",
	"profitability_analysis":      "Karlılık Analizi",
	"purchase_motivation":         "Satın Alma Motivasyonu",
	"return_risk":                 "İade Riski",
	"risk_management":             "Risk Yönetimi",
	"roi_potential":               "Yatırım Geri Dönüş Potansiyeli",
	"sales_performance":           "Satış Performansı",
	"sales_velocity":              "Satış Hızı",
	"sales_volume":                "Satış Hacmi",
	"search_keywords":             "Arama Etiketleri",
	"seasonality":                 "Sezonsallık",
	"seller_action_plan":          "Satıcı Eylem Planı",
	"seller_description":          "Satıcı Açıklaması",
	"seller_summary":              "Satıcı Özeti",
	"supplier_reliability":        "Tedarikçi Güvenilirliği",
	"support_requirements":        "Destek Gereksinimi",
	"target_customer":             "Hedef Müşteri",
	"technical_summary":           "Teknik Özellikler",
	"technology_lifecycle":        "Teknoloji Ömrü",
	"trending_status":             "Trend Durumu",
	"updated_at":                  "Son Güncellenme",
}

var titleCase = cases.Title(language.Und, cases.NoLower)

// Label returns the display label for key. Unknown keys have underscores
// replaced by spaces and every word capitalised.
func Label(key string) string {
	if label, ok := known[key]; ok {
		return label
	}
	return titleCase.String(strings.ReplaceAll(key, "_", " "))
}

// Field is one labelled product attribute.
type Field struct {
	Key   string
	Label string
	Value string
}

// Fields labels every attribute of attrs whose rendered value is not
// blank, sorted by key. Keys listed in skip are left out.
func Fields(attrs map[string]any, skip ...string) []Field {
	excluded := make(map[string]struct{}, len(skip))
	for _, key := range skip {
		excluded[key] = struct{}{}
	}

	fields := make([]Field, 0, len(attrs))
	for key, raw := range attrs {
		if _, ok := excluded[key]; ok {
			continue
		}
		value := Render(raw)
		if strings.TrimSpace(value) == "" {
			continue
		}
		fields = append(fields, Field{Key: key, Label: Label(key), Value: value})
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields
}

// Render formats a decoded JSON value for display.
func Render(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	case bool:
		if val {
			return "Evet"
		}
		return "Hayır"
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := Render(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		nested := Fields(val)
		parts := make([]string, 0, len(nested))
		for _, f := range nested {
			parts = append(parts, f.Label+": "+f.Value)
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(val)
	}
}
