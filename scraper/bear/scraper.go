package bear

import (
	"context"
	"fmt"

	"bear-dashboard-scraper/config"
	"bear-dashboard-scraper/models"
	"bear-dashboard-scraper/utils"

	"github.com/chromedp/chromedp"
)

const (
	emailFieldSelector    = `input[type="email"], input[name="email"]`
	passwordFieldSelector = `input[type="password"], input[name="password"]`
	loginButtonSelector   = `button[type="submit"]`
)

// Scraper owns the browser session and drives one login-and-extract run
// against the Bear dashboard.
type Scraper struct {
	cfg         *config.Config
	allocCtx    context.Context
	allocCancel context.CancelFunc
	extractor   *Extractor
}

func NewScraper(cfg *config.Config) (*Scraper, error) {
	utils.Info("Launching Chrome browser...")
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(),
		utils.StealthOpts(cfg.Headless)...,
	)
	utils.Success("Browser ready")
	return &Scraper{
		cfg:         cfg,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		extractor:   NewExtractor(cfg),
	}, nil
}

func (s *Scraper) Close() {
	utils.Info("Closing browser...")
	s.allocCancel()
}

// ScrapeDashboard logs in and extracts the two dashboard metrics in a fresh
// tab. Login failure is an error; extraction faults are already folded into
// the result's Data.Error by the extractor.
func (s *Scraper) ScrapeDashboard() (models.ScrapeResult, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.allocCtx)
	defer tabCancel()

	ctx, cancel := context.WithTimeout(tabCtx, s.cfg.RequestTimeout)
	defer cancel()

	if err := utils.Retry(s.cfg.MaxRetries, func() error {
		return s.login(ctx)
	}); err != nil {
		return models.ScrapeResult{Status: "error"}, fmt.Errorf("dashboard login failed: %w", err)
	}

	var currentURL string
	if err := chromedp.Run(ctx, chromedp.Location(&currentURL)); err != nil {
		currentURL = s.cfg.DashboardURL
	}

	doc := &chromedpDocument{tabCtx: ctx, settleDelay: s.cfg.SettleDelay}
	data := s.extractor.Extract(ctx, doc)

	utils.Success("Dashboard scrape complete")
	return models.ScrapeResult{Status: "success", URL: currentURL, Data: data}, nil
}

func (s *Scraper) login(ctx context.Context) error {
	utils.Info("Navigating to %s ...", s.cfg.DashboardURL)
	err := chromedp.Run(ctx,
		chromedp.Navigate(s.cfg.DashboardURL),
		utils.HideWebDriver(),
		chromedp.WaitVisible(emailFieldSelector, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("login page did not load: %w", err)
	}

	utils.Info("Logging in to the Bear dashboard...")
	if err := chromedp.Run(ctx,
		chromedp.SendKeys(emailFieldSelector, s.cfg.Email, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("could not fill email field: %w", err)
	}
	utils.RandomDelay(s.cfg.MinActionDelay, s.cfg.MaxActionDelay)

	if err := chromedp.Run(ctx,
		chromedp.SendKeys(passwordFieldSelector, s.cfg.Password, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("could not fill password field: %w", err)
	}
	utils.RandomDelay(s.cfg.MinActionDelay, s.cfg.MaxActionDelay)

	if err := chromedp.Run(ctx,
		chromedp.Click(loginButtonSelector, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("could not submit login form: %w", err)
	}

	// Let the post-login redirect land before we start querying metrics.
	if err := utils.Sleep(ctx, s.cfg.SettleDelay); err != nil {
		return err
	}

	utils.Success("Logged into Bear dashboard")
	return nil
}
