package pipeline

import (
	"regexp"
	"strings"
)

// Kind identifies which gemtext construct a line was classified as.
type Kind int

// Line kinds. Paragraph is the fallback.
const (
	Paragraph Kind = iota
	Heading1
	Heading2
	Heading3
	ListItem
	Quote
	Link
)

var kindNames = [...]string{
	Paragraph: "paragraph",
	Heading1:  "heading1",
	Heading2:  "heading2",
	Heading3:  "heading3",
	ListItem:  "list-item",
	Quote:     "quote",
	Link:      "link",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Line is the classification of one non-empty, non-fence line.
// Text is set for every kind except Link, which uses Href and Label.
type Line struct {
	Kind  Kind
	Text  string
	Href  string
	Label string
}

// rule maps a line-start pattern to the kind it produces.
type rule struct {
	pattern *regexp.Regexp
	kind    Kind
}

// Classifier maps trimmed lines to their Line classification.
// The rule table is built once and never modified, so a Classifier is safe
// for concurrent use.
type Classifier struct {
	rules []rule
}

// NewClassifier builds the ordered rule table. Longer heading markers come
// first so "### x" is never taken for a level 1 or 2 heading.
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			{regexp.MustCompile(`^### (.*)$`), Heading3},
			{regexp.MustCompile(`^## (.*)$`), Heading2},
			{regexp.MustCompile(`^# (.*)$`), Heading1},
			{regexp.MustCompile(`^\* (.*)$`), ListItem},
			{regexp.MustCompile(`^> (.*)$`), Quote},
			{regexp.MustCompile(`^=>\s*(\S+)(\s+.*)?$`), Link},
		},
	}
}

// Classify returns the classification of a trimmed, non-empty line.
// The first matching rule wins; unmatched lines become paragraphs.
func (c *Classifier) Classify(line string) Line {
	for _, r := range c.rules {
		m := r.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if r.kind == Link {
			href := m[1]
			label := strings.TrimSpace(m[2])
			if label == "" {
				label = href
			}
			return Line{Kind: Link, Href: href, Label: label}
		}
		return Line{Kind: r.kind, Text: strings.TrimSpace(m[1])}
	}
	return Line{Kind: Paragraph, Text: strings.TrimSpace(line)}
}
