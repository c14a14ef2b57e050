package bear

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"bear-dashboard-scraper/config"
	"bear-dashboard-scraper/models"
	"bear-dashboard-scraper/utils"
)

// ExtractionMethodSelectors tags results produced by the selector-fallback
// strategy, as opposed to any future AI-driven one. Stored records carry it
// for provenance.
const ExtractionMethodSelectors = "dom_selectors"

// ErrNoMatch is returned by Document.QueryText when nothing matches the
// pattern within the per-attempt timeout. Expected during fallback, never
// surfaced past the extractor.
var ErrNoMatch = errors.New("no element matched selector")

// Document is the authenticated dashboard page the extractor reads from.
// The scraper owns its lifecycle; the extractor only queries it.
type Document interface {
	// WaitReady blocks until the dashboard has settled enough to query.
	WaitReady(ctx context.Context) error
	// QueryText returns the text content of the first element matching
	// pattern, or ErrNoMatch if nothing matches within timeout.
	QueryText(ctx context.Context, pattern SelectorPattern, timeout time.Duration) (string, error)
}

var (
	percentPattern     = regexp.MustCompile(`(\d+\.?\d*)%`)
	promptCountPattern = regexp.MustCompile(`(\d+)\s*total\s*prompts`)
)

// Extractor runs the selector-fallback extraction against a Document.
// Timeouts and delays come from the config given at construction.
type Extractor struct {
	cfg *config.Config
}

func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract locates the brand visibility percentage and the prompt count,
// then strict-parses both. It never returns a Go error: faults outside the
// candidate loop are folded into the result's Error field, and a dashboard
// where no candidate matches is an all-null result, not a failure.
func (e *Extractor) Extract(ctx context.Context, doc Document) models.ExtractionResult {
	result := models.ExtractionResult{ExtractionMethod: ExtractionMethodSelectors}

	if err := doc.WaitReady(ctx); err != nil {
		result.Error = err.Error()
		return result
	}

	utils.Info("Looking for brand visibility percentage...")
	rawVisibility, err := e.firstMatch(ctx, doc, visibilityCandidates)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	// Breather between the two metric searches so we don't hammer the
	// dashboard backend.
	if err := utils.Sleep(ctx, e.cfg.MetricDelay); err != nil {
		result.Error = err.Error()
		return result
	}

	utils.Info("Looking for prompt count...")
	rawPrompt, err := e.firstMatch(ctx, doc, promptCandidates)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.BrandVisibilityPercentage = parseVisibility(rawVisibility)
	result.PromptCount = parsePromptCount(rawPrompt)
	return result
}

// firstMatch walks candidates in order and returns the first accepted text.
// Not-found and per-attempt timeouts fall through to the next candidate;
// any other query error aborts the walk. Empty return with nil error means
// no candidate matched.
func (e *Extractor) firstMatch(ctx context.Context, doc Document, candidates []SelectorCandidate) (string, error) {
	for _, c := range candidates {
		text, err := doc.QueryText(ctx, c.Pattern, e.cfg.SelectorTimeout)
		if err != nil {
			if errors.Is(err, ErrNoMatch) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			return "", err
		}

		text = strings.TrimSpace(text)
		if text != "" && c.Accept(text) {
			utils.Success("Matched %q via %s", text, c.Pattern.Expr)
			return text, nil
		}
	}
	return "", nil
}

// parseVisibility pulls "10.3%" out of text like "Visibility: 10.3%".
// A selector hit without a numeric percentage is dropped, not guessed at.
func parseVisibility(raw string) *string {
	if raw == "" {
		return nil
	}
	m := percentPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	v := m[1] + "%"
	return &v
}

// parsePromptCount pulls "39" out of text like "39 total prompts". The parse
// is stricter than the accept test; broader matches are dropped.
func parsePromptCount(raw string) *string {
	if raw == "" {
		return nil
	}
	m := promptCountPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	v := m[1]
	return &v
}
