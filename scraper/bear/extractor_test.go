package bear

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bear-dashboard-scraper/config"
)

// fakeDocument serves canned text per selector expression. Unknown
// expressions behave like absent elements.
type fakeDocument struct {
	responses map[string]string
	faults    map[string]error
	waitErr   error
	calls     []string
}

func (d *fakeDocument) WaitReady(ctx context.Context) error {
	return d.waitErr
}

func (d *fakeDocument) QueryText(ctx context.Context, pattern SelectorPattern, timeout time.Duration) (string, error) {
	d.calls = append(d.calls, pattern.Expr)
	if err, ok := d.faults[pattern.Expr]; ok {
		return "", err
	}
	text, ok := d.responses[pattern.Expr]
	if !ok {
		return "", ErrNoMatch
	}
	return text, nil
}

func testExtractor() *Extractor {
	cfg := config.DefaultConfig()
	cfg.MetricDelay = 0
	cfg.SelectorTimeout = 10 * time.Millisecond
	return NewExtractor(cfg)
}

func TestExtract_FallbackToLaterCandidate(t *testing.T) {
	// Only the third visibility candidate has a match.
	doc := &fakeDocument{
		responses: map[string]string{
			visibilityCandidates[2].Pattern.Expr: "Visibility: 10.3%",
		},
	}

	result := testExtractor().Extract(context.Background(), doc)

	if result.BrandVisibilityPercentage == nil || *result.BrandVisibilityPercentage != "10.3%" {
		t.Errorf("expected visibility 10.3%%, got %v", result.BrandVisibilityPercentage)
	}
	if result.Error != "" {
		t.Errorf("unexpected error: %s", result.Error)
	}
}

func TestExtract_PromptCount(t *testing.T) {
	doc := &fakeDocument{
		responses: map[string]string{
			promptCandidates[0].Pattern.Expr: "39 total prompts",
		},
	}

	result := testExtractor().Extract(context.Background(), doc)

	if result.PromptCount == nil || *result.PromptCount != "39" {
		t.Errorf("expected prompt count 39, got %v", result.PromptCount)
	}
}

func TestExtract_StrictParseDropsLooseMatches(t *testing.T) {
	// Both texts pass the accept tests but fail strict parsing.
	doc := &fakeDocument{
		responses: map[string]string{
			visibilityCandidates[0].Pattern.Expr: "visibility is high",
			promptCandidates[0].Pattern.Expr:     "prompt usage is growing",
		},
	}

	result := testExtractor().Extract(context.Background(), doc)

	if result.BrandVisibilityPercentage != nil {
		t.Errorf("expected nil visibility, got %q", *result.BrandVisibilityPercentage)
	}
	if result.PromptCount != nil {
		t.Errorf("expected nil prompt count, got %q", *result.PromptCount)
	}
	if result.Error != "" {
		t.Errorf("loose matches are not faults, got error %q", result.Error)
	}
}

func TestExtract_AllCandidatesAbsent(t *testing.T) {
	doc := &fakeDocument{}

	result := testExtractor().Extract(context.Background(), doc)

	if result.BrandVisibilityPercentage != nil || result.PromptCount != nil {
		t.Errorf("expected all-null result, got %+v", result)
	}
	if result.ExtractionMethod != ExtractionMethodSelectors {
		t.Errorf("extraction method = %q, want %q", result.ExtractionMethod, ExtractionMethodSelectors)
	}
	if result.Error != "" {
		t.Errorf("an empty dashboard is not a fault, got error %q", result.Error)
	}
}

func TestExtract_TimeoutFallsThrough(t *testing.T) {
	doc := &fakeDocument{
		faults: map[string]error{
			visibilityCandidates[0].Pattern.Expr: context.DeadlineExceeded,
		},
		responses: map[string]string{
			visibilityCandidates[1].Pattern.Expr: "Visibility: 12.0%",
		},
	}

	result := testExtractor().Extract(context.Background(), doc)

	if result.BrandVisibilityPercentage == nil || *result.BrandVisibilityPercentage != "12.0%" {
		t.Errorf("expected fallback past the timed-out candidate, got %v", result.BrandVisibilityPercentage)
	}
	if result.Error != "" {
		t.Errorf("timeouts are expected-absent, got error %q", result.Error)
	}
}

func TestExtract_UnexpectedQueryFault(t *testing.T) {
	doc := &fakeDocument{
		faults: map[string]error{
			visibilityCandidates[0].Pattern.Expr: errors.New("browser crashed: tab closed"),
		},
	}

	result := testExtractor().Extract(context.Background(), doc)

	if result.BrandVisibilityPercentage != nil || result.PromptCount != nil {
		t.Errorf("expected all-null result on fault, got %+v", result)
	}
	if result.Error == "" || !strings.Contains(result.Error, "browser crashed") {
		t.Errorf("expected fault message in error, got %q", result.Error)
	}
}

func TestExtract_WaitReadyFault(t *testing.T) {
	doc := &fakeDocument{waitErr: errors.New("dashboard did not settle")}

	result := testExtractor().Extract(context.Background(), doc)

	if result.Error == "" {
		t.Error("expected error when the document never settles")
	}
	if len(doc.calls) != 0 {
		t.Errorf("expected no queries after a settle fault, got %d", len(doc.calls))
	}
}

func TestExtract_CandidateOrderRespected(t *testing.T) {
	// First and third candidates both match; the first must win.
	doc := &fakeDocument{
		responses: map[string]string{
			visibilityCandidates[0].Pattern.Expr: "Brand visibility 44.0%",
			visibilityCandidates[2].Pattern.Expr: "Visibility: 10.3%",
		},
	}

	result := testExtractor().Extract(context.Background(), doc)

	if result.BrandVisibilityPercentage == nil || *result.BrandVisibilityPercentage != "44.0%" {
		t.Errorf("expected first candidate's value 44.0%%, got %v", result.BrandVisibilityPercentage)
	}
	for _, expr := range doc.calls {
		if expr == visibilityCandidates[2].Pattern.Expr {
			t.Error("third candidate queried despite an earlier accepted match")
		}
	}
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		raw  string
		want string // "" means nil
	}{
		{"Visibility: 10.3%", "10.3%"},
		{"10%", "10%"},
		{"Your brand appears in 7.25% of prompts", "7.25%"},
		{"visibility is high", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := parseVisibility(tt.raw)
		if tt.want == "" {
			if got != nil {
				t.Errorf("parseVisibility(%q) = %q, want nil", tt.raw, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("parseVisibility(%q) = %v, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParsePromptCount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"39 total prompts", "39"},
		{"12   total   prompts", "12"},
		{"39 Total Prompts", ""}, // parse is case-sensitive
		{"prompt count: 39", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := parsePromptCount(tt.raw)
		if tt.want == "" {
			if got != nil {
				t.Errorf("parsePromptCount(%q) = %q, want nil", tt.raw, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("parsePromptCount(%q) = %v, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestAcceptPredicates(t *testing.T) {
	if !acceptVisibility("10.3%") || !acceptVisibility("Brand Visibility") {
		t.Error("visibility accept should take percent signs and the word visibility")
	}
	if acceptVisibility("nothing useful") {
		t.Error("visibility accept took unrelated text")
	}
	if !acceptPrompt("39 total prompts") || !acceptPrompt("Count: 7") || !acceptPrompt("Total") {
		t.Error("prompt accept should take prompt/count/total")
	}
	if acceptPrompt("something else") {
		t.Error("prompt accept took unrelated text")
	}
}
