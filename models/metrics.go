package models

import "time"

// ExtractionResult holds what a single extraction attempt produced.
// Value fields are nil when no selector matched, or when the matched text
// failed strict parsing. Error is set only for faults outside the normal
// selector fallback; an empty dashboard is not an error.
type ExtractionResult struct {
	BrandVisibilityPercentage *string `json:"brand_visibility_percentage"`
	PromptCount               *string `json:"prompt_count"`
	ExtractionMethod          string  `json:"extraction_method"`
	Error                     string  `json:"error,omitempty"`
}

// ScrapeResult is the outcome of one full login-and-extract run.
type ScrapeResult struct {
	Status string
	URL    string
	Data   ExtractionResult
}

// ScrapeData is the flat payload persisted for one scrape.
type ScrapeData struct {
	BrandVisibilityPercentage *string `json:"brand_visibility_percentage"`
	PromptCount               *string `json:"prompt_count"`
	ExtractionMethod          string  `json:"extraction_method"`
	ScrapeURL                 string  `json:"scrape_url"`
	ScrapeTimestamp           string  `json:"scrape_timestamp"`
}

// ScrapeRecord is the on-disk envelope around ScrapeData.
type ScrapeRecord struct {
	Timestamp time.Time  `json:"timestamp"`
	Data      ScrapeData `json:"data"`
}

// NewScrapeRecord stamps a scrape result for persistence.
func NewScrapeRecord(result ScrapeResult, now time.Time) ScrapeRecord {
	return ScrapeRecord{
		Timestamp: now,
		Data: ScrapeData{
			BrandVisibilityPercentage: result.Data.BrandVisibilityPercentage,
			PromptCount:               result.Data.PromptCount,
			ExtractionMethod:          result.Data.ExtractionMethod,
			ScrapeURL:                 result.URL,
			ScrapeTimestamp:           now.Format(time.RFC3339),
		},
	}
}
