package narrative

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"CatalogLens/internal/domain"
)

// Rule maps a group of title keywords to a category.
type Rule struct {
	Category domain.Category
	Keywords []string
}

// DefaultRules is evaluated top to bottom and the first matching rule wins,
// so a title mentioning both risk and strategy is a risk section.
var DefaultRules = []Rule{
	{Category: domain.CategoryRisk, Keywords: []string{"Risk", "Kritik", "Critical"}},
	{Category: domain.CategoryPricing, Keywords: []string{"Fiyat", "Rekabet", "Price", "Pricing", "Competition"}},
	{Category: domain.CategoryProfitability, Keywords: []string{"Karlılık", "Kârlılık", "Satış", "Profitability", "Sales"}},
	{Category: domain.CategoryMarketing, Keywords: []string{"Pazarlama", "Müşteri", "Marketing", "Customer"}},
	{Category: domain.CategoryOperations, Keywords: []string{"Operasyon", "Lojistik", "Operation", "Logistics"}},
	{Category: domain.CategoryStrategy, Keywords: []string{"Eylem", "Strateji", "Action", "Strategy"}},
	{Category: domain.CategorySummary, Keywords: []string{"Karar", "Özet", "Decision", "Summary"}},
}

// Classifier assigns a category to a section title using ordered rules.
type Classifier struct {
	rules []compiledRule
}

type compiledRule struct {
	category domain.Category
	forms    []string
}

// NewClassifier compiles rules. A nil slice selects DefaultRules.
//
// Keywords are case-sensitive: "Risk" matches "Risk" and the all-caps
// heading forms "RİSK" and "RISK", but not "risk" inside a sentence.
func NewClassifier(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules
	}

	turkishUpper := cases.Upper(language.Turkish)
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		var forms []string
		for _, kw := range rule.Keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			for _, form := range []string{kw, turkishUpper.String(kw), strings.ToUpper(kw)} {
				if !slices.Contains(forms, form) {
					forms = append(forms, form)
				}
			}
		}
		compiled = append(compiled, compiledRule{category: rule.Category, forms: forms})
	}
	return &Classifier{rules: compiled}
}

// Classify returns the category of the first rule with a keyword starting
// a word of title, or Neutral.
func (c *Classifier) Classify(title string) domain.Category {
	for _, rule := range c.rules {
		for _, form := range rule.forms {
			if hasWordPrefix(title, form) {
				return rule.category
			}
		}
	}
	return domain.CategoryNeutral
}

// hasWordPrefix reports whether kw occurs in s at the start of a word, so
// "Action" is found in "Action Plan" and "Call-Action" but not in
// "Transaction".
func hasWordPrefix(s, kw string) bool {
	for offset := 0; offset <= len(s)-len(kw); {
		i := strings.Index(s[offset:], kw)
		if i < 0 {
			return false
		}
		i += offset
		if i == 0 {
			return true
		}
		if r, _ := utf8.DecodeLastRuneInString(s[:i]); !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		offset = i + size
	}
	return false
}
