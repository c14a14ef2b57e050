package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bear-dashboard-scraper/models"
)

// Report summarizes the stored scrape history.
type Report struct {
	ScrapeCount        int
	EmptyExtractions   int
	LatestTimestamp    time.Time
	LatestVisibility   string
	LatestPromptCount  string
	PreviousVisibility string
	VisibilityChange   float64
	HasChange          bool
	MinVisibility      float64
	MaxVisibility      float64
	HasRange           bool
}

// GenerateReport computes history insights over records ordered oldest
// first. Records whose extraction came back empty still count toward the
// totals but contribute nothing to the visibility trend.
func GenerateReport(records []models.ScrapeRecord) Report {
	report := Report{ScrapeCount: len(records)}
	if len(records) == 0 {
		return report
	}

	var (
		visibilityValues []float64
		lastTwo          []string
	)

	for _, r := range records {
		if r.Data.BrandVisibilityPercentage == nil && r.Data.PromptCount == nil {
			report.EmptyExtractions++
		}

		if r.Data.BrandVisibilityPercentage != nil {
			raw := *r.Data.BrandVisibilityPercentage
			if v, ok := parsePercent(raw); ok {
				visibilityValues = append(visibilityValues, v)
				lastTwo = append(lastTwo, raw)
				if len(lastTwo) > 2 {
					lastTwo = lastTwo[1:]
				}
			}
		}
	}

	latest := records[len(records)-1]
	report.LatestTimestamp = latest.Timestamp
	if latest.Data.BrandVisibilityPercentage != nil {
		report.LatestVisibility = *latest.Data.BrandVisibilityPercentage
	}
	if latest.Data.PromptCount != nil {
		report.LatestPromptCount = *latest.Data.PromptCount
	}

	if len(visibilityValues) > 0 {
		min, max := visibilityValues[0], visibilityValues[0]
		for _, v := range visibilityValues[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		report.MinVisibility = min
		report.MaxVisibility = max
		report.HasRange = true
	}

	if len(lastTwo) == 2 {
		prev, _ := parsePercent(lastTwo[0])
		curr, _ := parsePercent(lastTwo[1])
		report.PreviousVisibility = lastTwo[0]
		report.VisibilityChange = curr - prev
		report.HasChange = true
	}

	return report
}

// PrintRecord shows the outcome of a single scrape, including where it was
// saved.
func PrintRecord(record models.ScrapeRecord, filePath string) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║          BEAR DASHBOARD SCRAPING RESULTS         ║")
	fmt.Println("╠══════════════════════════════════════════════════╣")
	fmt.Printf("║  Brand Visibility : %-28s ║\n", orUnavailable(record.Data.BrandVisibilityPercentage))
	fmt.Printf("║  Prompt Count     : %-28s ║\n", orUnavailable(record.Data.PromptCount))
	fmt.Printf("║  Method           : %-28s ║\n", record.Data.ExtractionMethod)
	fmt.Println("╚══════════════════════════════════════════════════╝")
	if filePath != "" {
		fmt.Printf("Data file: %s\n", filePath)
	}
	fmt.Println()
}

func PrintReport(report Report) {
	fmt.Println()
	fmt.Println("┌───────────────────────────────┬──────────────────────────────┐")
	fmt.Println("│ Scrape History                │                              │")
	fmt.Println("├───────────────────────────────┼──────────────────────────────┤")
	fmt.Printf("│ %-29s │ %-28d │\n", "Total Scrapes", report.ScrapeCount)
	fmt.Printf("│ %-29s │ %-28d │\n", "Empty Extractions", report.EmptyExtractions)
	fmt.Printf("│ %-29s │ %-28s │\n", "Latest Visibility", orDash(report.LatestVisibility))
	fmt.Printf("│ %-29s │ %-28s │\n", "Latest Prompt Count", orDash(report.LatestPromptCount))
	if report.HasChange {
		fmt.Printf("│ %-29s │ %-28s │\n", "Change Since Previous", fmt.Sprintf("%+.1f pts (from %s)", report.VisibilityChange, report.PreviousVisibility))
	}
	if report.HasRange {
		fmt.Printf("│ %-29s │ %-28s │\n", "Visibility Range", fmt.Sprintf("%.1f%% – %.1f%%", report.MinVisibility, report.MaxVisibility))
	}
	if !report.LatestTimestamp.IsZero() {
		fmt.Printf("│ %-29s │ %-28s │\n", "Last Scraped", report.LatestTimestamp.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("└───────────────────────────────┴──────────────────────────────┘")
	fmt.Println()
}

func parsePercent(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(raw), "%"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func orUnavailable(v *string) string {
	if v == nil {
		return "unavailable"
	}
	return *v
}

func orDash(v string) string {
	if v == "" {
		return "—"
	}
	return v
}
