package extract

import "strings"

// strategy is one attempt at extracting a field's raw text from a page.
// Strategies are tried in order from most precise (structural,
// label-anchored) to least precise (anywhere-in-text regex); the first
// success wins.
type strategy interface {
	name() string
	attempt(p *page, f fieldSpec) (string, bool)
}

// labelAdjacency finds a node whose own text contains one of the field's
// labels and reads the text of the next element in document order,
// accepting it when it matches the validating pattern. Labels are tried in
// priority order; within a label, document order decides.
type labelAdjacency struct{}

func (labelAdjacency) name() string { return "label_adjacency" }

func (labelAdjacency) attempt(p *page, f fieldSpec) (string, bool) {
	for _, label := range f.labels {
		for _, el := range p.elements {
			if !containsFold(ownText(el), label) {
				continue
			}
			next := followingElement(el)
			if next == nil {
				continue
			}
			text := subtreeText(next)
			if text != "" && f.validate.MatchString(text) {
				return text, true
			}
		}
	}
	return "", false
}

// valuePattern finds a node whose own text matches the validating pattern
// directly, then confirms relevance by requiring one of the field's labels
// in the parent's text. The parent check rejects unrelated numbers
// elsewhere on the page.
type valuePattern struct{}

func (valuePattern) name() string { return "value_pattern" }

func (valuePattern) attempt(p *page, f fieldSpec) (string, bool) {
	for _, el := range p.elements {
		own := ownText(el)
		if own == "" || !f.validate.MatchString(own) {
			continue
		}
		if el.Parent == nil {
			continue
		}
		parentText := subtreeText(el.Parent)
		for _, label := range f.labels {
			if containsFold(parentText, label) {
				return own, true
			}
		}
	}
	return "", false
}

// keywordNodes scans individual text nodes containing field-relevant
// keywords (e.g. "gust", "rafale") for the validating pattern and returns
// the matched substring.
type keywordNodes struct{}

func (keywordNodes) name() string { return "keyword_nodes" }

func (keywordNodes) attempt(p *page, f fieldSpec) (string, bool) {
	if f.keywords == nil {
		return "", false
	}
	for _, text := range p.textNodes {
		if !f.keywords.MatchString(text) {
			continue
		}
		if m := f.validate.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

// contextPattern runs the field's context-qualified regex
// (label … number unit) over the flattened page text.
type contextPattern struct{}

func (contextPattern) name() string { return "context_regex" }

func (contextPattern) attempt(p *page, f fieldSpec) (string, bool) {
	if f.context == nil {
		return "", false
	}
	return matchValueUnit(f.context.FindStringSubmatch(p.flat))
}

// loosePattern is the last resort: the bare validating pattern anywhere in
// the flattened page text, first match accepted.
type loosePattern struct{}

func (loosePattern) name() string { return "loose_regex" }

func (loosePattern) attempt(p *page, f fieldSpec) (string, bool) {
	return matchValueUnit(f.validate.FindStringSubmatch(p.flat))
}

// matchValueUnit rebuilds "value unit" from a two-group regex match,
// normalizing the decimal separator.
func matchValueUnit(m []string) (string, bool) {
	if len(m) < 3 {
		return "", false
	}
	value := strings.ReplaceAll(m[1], ",", ".")
	return value + " " + m[2], true
}
