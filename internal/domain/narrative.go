package domain

// Category is the semantic colour class of a narrative section.
type Category string

const (
	CategoryRisk          Category = "risk"
	CategoryPricing       Category = "pricing"
	CategoryProfitability Category = "profitability"
	CategoryMarketing     Category = "marketing"
	CategoryOperations    Category = "operations"
	CategoryStrategy      Category = "strategy"
	CategorySummary       Category = "summary"
	CategoryNeutral       Category = "neutral"
)

// LineKind tells the view how to render a content line.
type LineKind string

const (
	LineBullet     LineKind = "bullet"
	LineSubHeading LineKind = "subheading"
	LinePlain      LineKind = "plain"
)

// ContentLine is a single non-blank body line of a section.
type ContentLine struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
}

// NarrativeSection is one heading-delimited unit of an AI narrative.
type NarrativeSection struct {
	Title    string        `json:"title"`
	Icon     string        `json:"icon"`
	Category Category      `json:"category"`
	Lines    []ContentLine `json:"lines"`
}
