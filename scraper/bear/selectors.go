package bear

import "strings"

// PatternKind says how a selector pattern locates elements.
type PatternKind int

const (
	// PatternCSS is a plain CSS selector (attribute or class substring match).
	PatternCSS PatternKind = iota
	// PatternTextRegex matches the first leaf element whose text content
	// matches a case-insensitive regex.
	PatternTextRegex
)

type SelectorPattern struct {
	Kind PatternKind
	Expr string
}

// SelectorCandidate pairs a pattern with the accept test run on the matched
// element's text. Candidates are tried in order, most specific first; the
// first accepted text wins.
type SelectorCandidate struct {
	Pattern SelectorPattern
	Accept  func(text string) bool
}

// Dashboard DOM selectors. The Bear dashboard changes markup without notice,
// so each metric carries a fallback chain. Update these when extraction breaks.
var visibilityCandidates = []SelectorCandidate{
	{Pattern: SelectorPattern{PatternCSS, `[data-testid*="visibility"]`}, Accept: acceptVisibility},
	{Pattern: SelectorPattern{PatternCSS, `[class*="visibility"]`}, Accept: acceptVisibility},
	{Pattern: SelectorPattern{PatternTextRegex, `.*visibility.*%`}, Accept: acceptVisibility},
	{Pattern: SelectorPattern{PatternTextRegex, `.*brand.*visibility.*`}, Accept: acceptVisibility},
	{Pattern: SelectorPattern{PatternCSS, `[class*="percentage"]`}, Accept: acceptVisibility},
	{Pattern: SelectorPattern{PatternCSS, `[class*="metric"]`}, Accept: acceptVisibility},
}

var promptCandidates = []SelectorCandidate{
	{Pattern: SelectorPattern{PatternCSS, `[data-testid*="prompt"]`}, Accept: acceptPrompt},
	{Pattern: SelectorPattern{PatternCSS, `[class*="prompt"]`}, Accept: acceptPrompt},
	{Pattern: SelectorPattern{PatternTextRegex, `.*prompt.*count.*`}, Accept: acceptPrompt},
	{Pattern: SelectorPattern{PatternTextRegex, `.*total.*prompt.*`}, Accept: acceptPrompt},
	{Pattern: SelectorPattern{PatternCSS, `[class*="count"]`}, Accept: acceptPrompt},
	{Pattern: SelectorPattern{PatternCSS, `[class*="metric"]`}, Accept: acceptPrompt},
}

func acceptVisibility(text string) bool {
	return strings.Contains(text, "%") || strings.Contains(strings.ToLower(text), "visibility")
}

func acceptPrompt(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range []string{"prompt", "count", "total"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
