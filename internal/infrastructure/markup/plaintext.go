package markup

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"CatalogLens/internal/ports"
)

var tagExpr = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s[^>]*)?/?>`)

// Cleaner converts HTML fragments in generated narratives into the line
// format the segmenter understands: headings become "## " lines and list
// items become "- " bullets.
type Cleaner struct{}

var _ ports.NarrativeCleaner = (*Cleaner)(nil)

// NewCleaner returns a stateless cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// PlainText returns text unchanged unless it contains HTML tags.
func (c *Cleaner) PlainText(text string) string {
	if !tagExpr.MatchString(text) {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	body := doc.Find("body")

	body.Find("script, style").Remove()
	body.Find("br").ReplaceWithHtml("\n")
	body.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.SetText("\n## " + strings.TrimSpace(s.Text()) + "\n")
	})
	body.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.SetText("\n- " + strings.TrimSpace(s.Text()) + "\n")
	})
	body.Find("p, div, tr, ul, ol").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return tidy(body.Text())
}

// tidy trims every line and squeezes runs of blank lines into one.
func tidy(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
