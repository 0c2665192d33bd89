package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CatalogLens/internal/domain"
)

func TestSegmentSingleSection(t *testing.T) {
	t.Parallel()

	sections := Segment("## 🔴 Risk Analizi\n- Yüksek fiyat riski\n-- Fiyat Detayı\nDetay metni")

	require.Len(t, sections, 1)
	assert.Equal(t, domain.NarrativeSection{
		Title:    "Risk Analizi",
		Icon:     "🔴",
		Category: domain.CategoryRisk,
		Lines: []domain.ContentLine{
			{Kind: domain.LineBullet, Text: "Yüksek fiyat riski"},
			{Kind: domain.LineSubHeading, Text: "Fiyat Detayı"},
			{Kind: domain.LinePlain, Text: "Detay metni"},
		},
	}, sections[0])
}

func TestSegmentWithoutHeadings(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"",
		"   \n\n",
		"Bu ürün için genel bir değerlendirme.\n- madde",
		"# Tek kare başlık\nmetin",
	} {
		sections := Segment(text)
		assert.NotNil(t, sections, "text %q", text)
		assert.Empty(t, sections, "text %q", text)
	}
}

func TestSegmentKeepsOrderAndDropsEmptyCandidates(t *testing.T) {
	t.Parallel()

	text := "Giriş paragrafı başlıksız.\n" +
		"## 💰 Fiyat ve Rekabet\n- Rakip fiyatları düşük\n\n" +
		"##\nbaşlıksız gövde\n" +
		"## 📦 Lojistik\n   \n\n" +
		"## 📈 Satış Performansı\nAylık 120 adet\n" +
		"## ✅ Karar\n- Stoklamaya devam"

	sections := Segment(text)

	require.Len(t, sections, 3)
	assert.Equal(t, "Fiyat ve Rekabet", sections[0].Title)
	assert.Equal(t, domain.CategoryPricing, sections[0].Category)
	assert.Equal(t, "Satış Performansı", sections[1].Title)
	assert.Equal(t, domain.CategoryProfitability, sections[1].Category)
	assert.Equal(t, "Karar", sections[2].Title)
	assert.Equal(t, domain.CategorySummary, sections[2].Category)
}

func TestSegmentEverySectionHasTitleAndLines(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"## A\n-\n--\n---\n",
		"## 🎯\n- tek ikon başlığı",
		"##   \n- boş başlık",
		"  ## Girintili Başlık\r\n- satır\r\n",
		"## X\n## Y\n- y içeriği\n## Z",
	}

	for _, text := range inputs {
		for _, section := range Segment(text) {
			assert.NotEmpty(t, section.Title, "text %q", text)
			assert.NotEmpty(t, section.Lines, "text %q", text)
			for _, line := range section.Lines {
				assert.NotEmpty(t, line.Text, "text %q", text)
			}
		}
	}
}

func TestSegmentHeadingAtStartAndMidText(t *testing.T) {
	t.Parallel()

	sections := Segment("## Başlangıç\nilk\nara metin ## satır içi işaret\n## Son\nson satır")

	require.Len(t, sections, 2)
	assert.Equal(t, []domain.ContentLine{
		{Kind: domain.LinePlain, Text: "ilk"},
		{Kind: domain.LinePlain, Text: "ara metin ## satır içi işaret"},
	}, sections[0].Lines)
	assert.Equal(t, "Son", sections[1].Title)
	assert.Equal(t, []domain.ContentLine{{Kind: domain.LinePlain, Text: "son satır"}}, sections[1].Lines)
}

func TestSegmentInlineMarkerIsNotAHeading(t *testing.T) {
	t.Parallel()

	sections := Segment("Giriş ## 🔴 Risk\n- madde")

	assert.NotNil(t, sections)
	assert.Empty(t, sections)
}

func TestSegmentIndentedAndCRLF(t *testing.T) {
	t.Parallel()

	sections := Segment("  ## 🚚 Operasyon Tavsiyeleri\r\n  - Hızlı kargo\r\n")

	require.Len(t, sections, 1)
	assert.Equal(t, "🚚", sections[0].Icon)
	assert.Equal(t, "Operasyon Tavsiyeleri", sections[0].Title)
	assert.Equal(t, domain.CategoryOperations, sections[0].Category)
	assert.Equal(t, []domain.ContentLine{{Kind: domain.LineBullet, Text: "Hızlı kargo"}}, sections[0].Lines)
}

func TestHeadingOffsets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []int
	}{
		{name: "none", text: "metin\nmetin", want: nil},
		{name: "at start", text: "## A\nx", want: []int{0}},
		{name: "mid string", text: "x\n## A\ny\n## B", want: []int{2, 9}},
		{name: "indented", text: "x\n  ## A", want: []int{4}},
		{name: "deeper marker", text: "### A\nx", want: []int{0}},
		{name: "inline marker ignored", text: "a ## b", want: nil},
		{name: "trailing newline", text: "## A\n", want: []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HeadingOffsets(tt.text))
		})
	}
}

func TestParseHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line      string
		wantTitle string
		wantIcon  string
		wantOK    bool
	}{
		{line: "## 🔴 Risk Analizi", wantTitle: "Risk Analizi", wantIcon: "🔴", wantOK: true},
		{line: "##⚠️ Kritik Uyarılar", wantTitle: "Kritik Uyarılar", wantIcon: "⚠️", wantOK: true},
		{line: "  ## ⚠️   Kritik Uyarılar \r", wantTitle: "Kritik Uyarılar", wantIcon: "⚠️", wantOK: true},
		{line: "## Risk Analizi", wantTitle: "Risk Analizi", wantIcon: DefaultIcon, wantOK: true},
		{line: "## 1. Özet", wantTitle: "1. Özet", wantIcon: DefaultIcon, wantOK: true},
		{line: "## 🎯", wantTitle: "🎯", wantIcon: DefaultIcon, wantOK: true},
		{line: "### Alt Başlık", wantTitle: "Alt Başlık", wantIcon: DefaultIcon, wantOK: true},
		{line: "##", wantOK: false},
		{line: "##    ", wantOK: false},
	}

	for _, tt := range tests {
		title, icon, ok := ParseHeading(tt.line)
		assert.Equal(t, tt.wantOK, ok, tt.line)
		if !tt.wantOK {
			continue
		}
		assert.Equal(t, tt.wantTitle, title, tt.line)
		assert.Equal(t, tt.wantIcon, icon, tt.line)
	}
}

func TestParseBody(t *testing.T) {
	t.Parallel()

	body := "\n- madde bir\n  -  madde iki  \n-- Alt Başlık\n---\n\n   düz metin  \n-\n"

	assert.Equal(t, []domain.ContentLine{
		{Kind: domain.LineBullet, Text: "madde bir"},
		{Kind: domain.LineBullet, Text: "madde iki"},
		{Kind: domain.LineSubHeading, Text: "Alt Başlık"},
		{Kind: domain.LinePlain, Text: "düz metin"},
	}, ParseBody(body))

	assert.Empty(t, ParseBody(" \n\t\n"))
}
