// Package narrative turns AI-generated report text into ordered, typed
// sections ready for display.
package narrative

import (
	"strings"
	"unicode"

	"CatalogLens/internal/domain"
)

const (
	headingMarker = "##"

	// DefaultIcon is used when a heading carries no leading glyph.
	DefaultIcon = "📋"
)

// Segmenter splits narratives into sections. The zero value is not usable;
// build one with NewSegmenter.
type Segmenter struct {
	classifier *Classifier
}

// NewSegmenter builds a segmenter around the given classifier, or the
// default rule set when classifier is nil.
func NewSegmenter(classifier *Classifier) *Segmenter {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	return &Segmenter{classifier: classifier}
}

var defaultSegmenter = NewSegmenter(nil)

// Segment splits text with the default rules.
func Segment(text string) []domain.NarrativeSection {
	return defaultSegmenter.Segment(text)
}

// Segment returns the sections of text in their original order. Text
// without any heading yields an empty slice. Candidates with a blank
// heading or no content lines are skipped.
func (s *Segmenter) Segment(text string) []domain.NarrativeSection {
	offsets := HeadingOffsets(text)
	sections := make([]domain.NarrativeSection, 0, len(offsets))

	for i, start := range offsets {
		end := len(text)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		if section, ok := s.parseSection(text[start:end]); ok {
			sections = append(sections, section)
		}
	}
	return sections
}

// HeadingOffsets returns the byte offset of the marker of every line that
// opens with "##" (after optional indentation), in ascending order.
func HeadingOffsets(text string) []int {
	var offsets []int

	lineStart := 0
	for {
		i := lineStart
		for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		if strings.HasPrefix(text[i:], headingMarker) {
			offsets = append(offsets, i)
		}

		next := strings.IndexByte(text[lineStart:], '\n')
		if next < 0 {
			return offsets
		}
		lineStart += next + 1
	}
}

func (s *Segmenter) parseSection(chunk string) (domain.NarrativeSection, bool) {
	headingLine, body, _ := strings.Cut(chunk, "\n")

	title, icon, ok := ParseHeading(headingLine)
	if !ok {
		return domain.NarrativeSection{}, false
	}

	lines := ParseBody(body)
	if len(lines) == 0 {
		return domain.NarrativeSection{}, false
	}

	return domain.NarrativeSection{
		Title:    title,
		Icon:     icon,
		Category: s.classifier.Classify(title),
		Lines:    lines,
	}, true
}

// ParseHeading strips the marker and separates a leading glyph token from
// the title. ok is false when nothing follows the marker.
func ParseHeading(line string) (title, icon string, ok bool) {
	text := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
	if text == "" {
		return "", "", false
	}

	if cut := strings.IndexFunc(text, unicode.IsSpace); cut > 0 {
		token, rest := text[:cut], strings.TrimSpace(text[cut:])
		if rest != "" && isGlyph(token) {
			return rest, token, true
		}
	}
	return text, DefaultIcon, true
}

// isGlyph reports whether token is a symbol rather than a word: emoji and
// punctuation qualify, anything with a letter or digit does not.
func isGlyph(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ParseBody classifies each non-blank line of a section body.
func ParseBody(body string) []domain.ContentLine {
	var lines []domain.ContentLine

	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)

		var kind domain.LineKind
		switch {
		case line == "", isRule(line):
			continue
		case strings.HasPrefix(line, "--"):
			kind, line = domain.LineSubHeading, strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "-"):
			kind, line = domain.LineBullet, strings.TrimSpace(line[1:])
		default:
			kind = domain.LinePlain
		}

		if line == "" {
			continue
		}
		lines = append(lines, domain.ContentLine{Kind: kind, Text: line})
	}
	return lines
}

// isRule matches markdown thematic breaks such as "---".
func isRule(line string) bool {
	return len(line) >= 3 && strings.Trim(line, "-") == ""
}
