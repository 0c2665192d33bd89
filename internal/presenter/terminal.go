// Package presenter renders dashboard data for a terminal.
package presenter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"CatalogLens/internal/domain"
	"CatalogLens/internal/labels"
	"CatalogLens/internal/usecase"
)

var categoryColors = map[domain.Category]string{
	domain.CategoryRisk:          "#d32f2f",
	domain.CategoryPricing:       "#ff9800",
	domain.CategoryProfitability: "#4caf50",
	domain.CategoryMarketing:     "#9c27b0",
	domain.CategoryOperations:    "#607d8b",
	domain.CategoryStrategy:      "#2196f3",
	domain.CategorySummary:       "#ff5722",
	domain.CategoryNeutral:       "#1976d2",
}

// CategoryColor returns the hex colour used for a section category.
func CategoryColor(c domain.Category) string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return categoryColors[domain.CategoryNeutral]
}

// Terminal writes tables and styled sections to w. Colours are only
// emitted when w is a colour-capable terminal.
type Terminal struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	numbers  *message.Printer
}

// NewTerminal builds a presenter for w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{
		w:        w,
		renderer: lipgloss.NewRenderer(w),
		numbers:  message.NewPrinter(language.Turkish),
	}
}

// Overview prints the aggregate metrics followed by the per-table breakdown.
func (t *Terminal) Overview(o usecase.Overview) error {
	m := o.Metrics
	bold := t.renderer.NewStyle().Bold(true)

	fmt.Fprintln(t.w, bold.Render("📊 Satıcı Dashboard"))
	fmt.Fprintf(t.w, "Toplam Ürün:     %s\n", t.numbers.Sprintf("%d", m.TotalProducts))
	fmt.Fprintf(t.w, "AI Embeddings:   %s (%%%.2f)\n", t.numbers.Sprintf("%d", m.TotalEmbeddings), m.Coverage())
	fmt.Fprintf(t.w, "Ortalama Fiyat:  ₺%s\n", t.numbers.Sprintf("%.0f", m.AvgPrice))
	fmt.Fprintf(t.w, "Ortalama Rating: %.1f⭐\n", m.AvgRating)
	fmt.Fprintf(t.w, "Tablo Sayısı:    %d\n\n", m.TotalTables)

	rows := make([][]string, 0, len(o.Tables))
	for _, table := range o.Tables {
		rows = append(rows, []string{
			table.Name,
			t.numbers.Sprintf("%d", table.TotalProducts),
			t.numbers.Sprintf("%d", table.EmbeddingsCount),
			fmt.Sprintf("%.2f (%s)", table.EmbeddingCoverage, table.CoverageStatus()),
			"₺" + t.numbers.Sprintf("%.0f", table.AvgPrice),
			fmt.Sprintf("%.1f⭐", table.AvgRating),
		})
	}
	return t.table([]string{"Tablo Adı", "Toplam Ürün", "Embedding Sayısı", "Kapsama (%)", "Ort. Fiyat (₺)", "Ort. Rating"}, rows)
}

// Refreshed prints one watch-loop tick.
func (t *Terminal) Refreshed(at time.Time, o usecase.Overview, err error) {
	if err != nil {
		fmt.Fprintf(t.w, "[%s] yenileme hatası: %v\n", at.Format(time.TimeOnly), err)
		return
	}
	fmt.Fprintf(t.w, "[%s] ", at.Format(time.TimeOnly))
	if renderErr := t.Overview(o); renderErr != nil {
		fmt.Fprintf(t.w, "render: %v\n", renderErr)
	}
}

// SearchResult prints displayable hits in backend order.
func (t *Terminal) SearchResult(r usecase.SearchResult) error {
	fmt.Fprintf(t.w, "%q için %d ürün bulundu", r.Query, len(r.Hits))
	if r.Dropped > 0 {
		fmt.Fprintf(t.w, " (%d eksik kayıt gizlendi)", r.Dropped)
	}
	fmt.Fprintln(t.w)

	rows := make([][]string, 0, len(r.Hits))
	for i, hit := range r.Hits {
		var brand, price, rating string
		if hit.Details != nil {
			brand = hit.Details.Brand.String()
			if v, ok := hit.Details.Price.Float(); ok && v > 0 {
				price = "₺" + t.numbers.Sprintf("%.0f", v)
			}
			if v, ok := hit.Details.Rating.Float(); ok && v > 0 {
				rating = fmt.Sprintf("%.1f/5", v)
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			hit.Name,
			hit.SourceTable,
			hit.ID.String(),
			fmt.Sprintf("%%%.1f", hit.Similarity*100),
			brand,
			price,
			rating,
			riskSummary(hit.RiskAnalysis),
		})
	}
	return t.table([]string{"#", "Ürün", "Tablo", "ID", "Benzerlik", "Marka", "Fiyat", "Rating", "Risk"}, rows)
}

// Analysis prints the risk headline and every narrative section.
func (t *Terminal) Analysis(r usecase.AnalysisReport) {
	fmt.Fprintf(t.w, "🤖 AI Analizi: %s/%s\n", r.Product.SourceTable, r.Product.ID)
	if summary := riskSummary(&r.RiskAnalysis); summary != "" {
		fmt.Fprintf(t.w, "Risk: %s\n", summary)
	}
	if rec := strings.TrimSpace(r.RiskAnalysis.SellerRecommendation); rec != "" {
		fmt.Fprintf(t.w, "Satıcı Önerisi: %s\n", rec)
	}
	fmt.Fprintln(t.w)

	if len(r.Sections) == 0 {
		fmt.Fprintln(t.w, r.Narrative)
		return
	}
	t.Sections(r.Sections)
}

// Sections prints narrative sections with category colours.
func (t *Terminal) Sections(sections []domain.NarrativeSection) {
	subHeading := t.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(CategoryColor(domain.CategoryPricing)))
	bullet := t.renderer.NewStyle().Foreground(lipgloss.Color(CategoryColor(domain.CategoryProfitability)))

	for _, section := range sections {
		title := t.renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(CategoryColor(section.Category)))
		fmt.Fprintln(t.w, title.Render(section.Icon+" "+section.Title))

		for _, line := range section.Lines {
			switch line.Kind {
			case domain.LineBullet:
				fmt.Fprintf(t.w, "  %s %s\n", bullet.Render("•"), line.Text)
			case domain.LineSubHeading:
				fmt.Fprintf(t.w, "  %s\n", subHeading.Render(line.Text))
			default:
				fmt.Fprintf(t.w, "  %s\n", line.Text)
			}
		}
		fmt.Fprintln(t.w)
	}
}

// Chat prints an assistant answer.
func (t *Terminal) Chat(a usecase.ChatAnswer) {
	if a.ContextProducts > 0 {
		fmt.Fprintf(t.w, "%d ilgili ürün analiz edildi\n\n", a.ContextProducts)
	}
	if len(a.Sections) == 0 {
		fmt.Fprintln(t.w, a.Reply)
		return
	}
	t.Sections(a.Sections)
}

// Fields prints labelled product attributes.
func (t *Terminal) Fields(fields []labels.Field) error {
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f.Label, f.Value})
	}
	return t.table([]string{"Alan", "Değer"}, rows)
}

// Brands prints one brand per line.
func (t *Terminal) Brands(brands []string) {
	for _, b := range brands {
		fmt.Fprintln(t.w, b)
	}
}

func (t *Terminal) table(header []string, rows [][]string) error {
	table := tablewriter.NewTable(t.w)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("table rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func riskSummary(r *domain.RiskAnalysis) string {
	if r == nil {
		return ""
	}
	score, ok := r.OverallRisk.Float()
	if !ok && r.RiskLevel == "" {
		return ""
	}
	if !ok {
		return r.RiskLevel
	}
	return strings.TrimSpace(fmt.Sprintf("%s %.1f/10 %s", domain.RiskIcon(score), score, r.RiskLevel))
}
