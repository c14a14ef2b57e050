package main

import (
	"fmt"
	"os"
	"time"

	"bear-dashboard-scraper/config"
	"bear-dashboard-scraper/models"
	"bear-dashboard-scraper/scraper/bear"
	"bear-dashboard-scraper/services"
	"bear-dashboard-scraper/storage"
	"bear-dashboard-scraper/utils"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "bear-dashboard-scraper",
		Usage:  "scrape brand visibility metrics from the Bear dashboard",
		Action: runScrape,
		Commands: []*cli.Command{
			{
				Name:   "scrape",
				Usage:  "run a new scrape (default)",
				Action: runScrape,
			},
			{
				Name:   "list",
				Usage:  "list previous scrape data files",
				Action: runList,
			},
			{
				Name:   "latest",
				Usage:  "view the most recent scrape data and history trend",
				Action: runLatest,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
}

func runScrape(_ *cli.Context) error {
	cfg := config.Load()
	if !cfg.HasCredentials() {
		return fmt.Errorf("missing BEAR_DASHBOARD_EMAIL or BEAR_DASHBOARD_PASSWORD; set them in the environment or a .env file")
	}

	utils.Section("Bear Dashboard Scraper")

	scraper, err := bear.NewScraper(cfg)
	if err != nil {
		return fmt.Errorf("could not start scraper: %w", err)
	}
	defer scraper.Close()

	result, err := scraper.ScrapeDashboard()
	if err != nil {
		return err
	}
	if result.Data.Error != "" {
		utils.Warn("Extraction fault recorded: %s", result.Data.Error)
	}

	record := models.NewScrapeRecord(result, time.Now())

	writer := storage.NewJSONWriter(cfg.DataDir)
	path, err := writer.Save(record, "")
	if err != nil {
		return fmt.Errorf("failed to save scrape data: %w", err)
	}

	if cfg.DBEnabled() {
		saveToPostgres(cfg, record)
	}

	services.PrintRecord(record, path)
	return nil
}

// saveToPostgres records history best-effort; the JSON file already holds
// the scrape, so DB trouble is a warning, not a failure.
func saveToPostgres(cfg *config.Config, record models.ScrapeRecord) {
	pg, err := storage.NewPostgresWriter(cfg)
	if err != nil {
		utils.Warn("PostgreSQL unavailable, keeping JSON only: %v", err)
		return
	}
	defer pg.Close()

	if err := pg.EnsureSchema(); err != nil {
		utils.Warn("Failed to ensure PostgreSQL schema: %v", err)
		return
	}
	if err := pg.Write(record); err != nil {
		utils.Warn("Failed to record scrape in PostgreSQL: %v", err)
		return
	}
	utils.Success("Recorded scrape in PostgreSQL history")
}

func runList(_ *cli.Context) error {
	cfg := config.Load()
	writer := storage.NewJSONWriter(cfg.DataDir)

	names, err := writer.List()
	if err != nil {
		return fmt.Errorf("failed to list data files: %w", err)
	}

	if len(names) == 0 {
		fmt.Println("No previous scrape data files found.")
		return nil
	}

	fmt.Println("Previous scrape data files:")
	for i, name := range names {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	return nil
}

func runLatest(_ *cli.Context) error {
	cfg := config.Load()
	writer := storage.NewJSONWriter(cfg.DataDir)

	names, err := writer.List()
	if err != nil {
		return fmt.Errorf("failed to list data files: %w", err)
	}
	if len(names) == 0 {
		fmt.Println("No scrape data files found.")
		return nil
	}

	record, err := writer.Load(names[0])
	if err != nil {
		return fmt.Errorf("failed to load latest data: %w", err)
	}

	fmt.Printf("Latest scrape data from %s:\n", names[0])
	services.PrintRecord(record, "")

	records, err := writer.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load scrape history: %w", err)
	}
	services.PrintReport(services.GenerateReport(records))
	return nil
}
