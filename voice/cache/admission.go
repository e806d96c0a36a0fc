package cache

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// policy decides which texts are worth persisting. Decisions happen at
// write time; the frequency counter itself is maintained by the cache on
// lookup misses.
type policy struct {
	maxTextLength int
	minMisses     int
	keywords      []string
	fold          cases.Caser
}

// newPolicy case-folds the keyword list once up front. The returned policy
// is not safe for concurrent use on its own; the cache serializes calls
// through its lock.
func newPolicy(maxTextLength, minMisses int, keywords []string) *policy {
	p := &policy{
		maxTextLength: maxTextLength,
		minMisses:     minMisses,
		fold:          cases.Fold(),
	}
	p.keywords = make([]string, 0, len(keywords))
	for _, kw := range keywords {
		p.keywords = append(p.keywords, p.fold.String(kw))
	}
	return p
}

// admit reports whether text should be cached given its recorded miss
// count. Rules apply in order: long texts are assumed unique and rejected,
// keyword texts are always accepted, everything else must have missed
// often enough. Length is measured in characters, not bytes, so accented
// text is not penalized for its encoding.
func (p *policy) admit(text string, seen int) bool {
	if utf8.RuneCountInString(text) > p.maxTextLength {
		return false
	}
	folded := p.fold.String(text)
	for _, kw := range p.keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return seen >= p.minMisses
}
