package services

import (
	"testing"
	"time"

	"bear-dashboard-scraper/models"
)

func record(day int, visibility, prompts string) models.ScrapeRecord {
	var vis, pc *string
	if visibility != "" {
		vis = &visibility
	}
	if prompts != "" {
		pc = &prompts
	}
	return models.ScrapeRecord{
		Timestamp: time.Date(2025, 6, day, 12, 0, 0, 0, time.UTC),
		Data: models.ScrapeData{
			BrandVisibilityPercentage: vis,
			PromptCount:               pc,
			ExtractionMethod:          "dom_selectors",
		},
	}
}

func TestGenerateReport_Empty(t *testing.T) {
	report := GenerateReport(nil)
	if report.ScrapeCount != 0 || report.HasChange || report.HasRange {
		t.Errorf("empty history should produce an empty report, got %+v", report)
	}
}

func TestGenerateReport_Trend(t *testing.T) {
	records := []models.ScrapeRecord{
		record(1, "8.0%", "20"),
		record(2, "", ""), // failed extraction
		record(3, "10.3%", "39"),
	}

	report := GenerateReport(records)

	if report.ScrapeCount != 3 {
		t.Errorf("ScrapeCount = %d, want 3", report.ScrapeCount)
	}
	if report.EmptyExtractions != 1 {
		t.Errorf("EmptyExtractions = %d, want 1", report.EmptyExtractions)
	}
	if report.LatestVisibility != "10.3%" || report.LatestPromptCount != "39" {
		t.Errorf("latest metrics wrong: %q / %q", report.LatestVisibility, report.LatestPromptCount)
	}
	if !report.HasChange {
		t.Fatal("expected a change between the two parsed scrapes")
	}
	if report.PreviousVisibility != "8.0%" {
		t.Errorf("PreviousVisibility = %q, want 8.0%%", report.PreviousVisibility)
	}
	if diff := report.VisibilityChange - 2.3; diff > 0.001 || diff < -0.001 {
		t.Errorf("VisibilityChange = %f, want 2.3", report.VisibilityChange)
	}
	if !report.HasRange || report.MinVisibility != 8.0 || report.MaxVisibility != 10.3 {
		t.Errorf("range wrong: %+v", report)
	}
}

func TestGenerateReport_SingleScrapeHasNoChange(t *testing.T) {
	report := GenerateReport([]models.ScrapeRecord{record(1, "10.3%", "39")})

	if report.HasChange {
		t.Error("one scrape cannot have a change vs previous")
	}
	if !report.HasRange || report.MinVisibility != 10.3 || report.MaxVisibility != 10.3 {
		t.Errorf("single-value range wrong: %+v", report)
	}
}

func TestParsePercent(t *testing.T) {
	if v, ok := parsePercent("10.3%"); !ok || v != 10.3 {
		t.Errorf("parsePercent(10.3%%) = %v, %v", v, ok)
	}
	if v, ok := parsePercent(" 7% "); !ok || v != 7 {
		t.Errorf("parsePercent(' 7%% ') = %v, %v", v, ok)
	}
	if _, ok := parsePercent("high"); ok {
		t.Error("parsePercent should reject non-numeric text")
	}
}
