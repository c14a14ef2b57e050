package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BEAR_DASHBOARD_EMAIL", "")
	t.Setenv("BEAR_DASHBOARD_PASSWORD", "")
	t.Setenv("BEAR_DB_HOST", "")

	cfg := Load()

	if cfg.HasCredentials() {
		t.Error("no credentials in env, HasCredentials should be false")
	}
	if cfg.DBEnabled() {
		t.Error("no DB host in env, DBEnabled should be false")
	}
	if cfg.DashboardURL != "https://app.usebear.ai" {
		t.Errorf("default dashboard URL = %q", cfg.DashboardURL)
	}
	if cfg.SelectorTimeout <= 0 || cfg.MetricDelay <= 0 {
		t.Error("extraction timings must have positive defaults")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BEAR_DASHBOARD_EMAIL", "team@example.com")
	t.Setenv("BEAR_DASHBOARD_PASSWORD", "hunter2")
	t.Setenv("BEAR_DASHBOARD_URL", "https://staging.usebear.ai")
	t.Setenv("BEAR_HEADLESS", "false")
	t.Setenv("BEAR_DB_HOST", "db.internal")
	t.Setenv("BEAR_DB_PORT", "5433")

	cfg := Load()

	if !cfg.HasCredentials() {
		t.Error("credentials set, HasCredentials should be true")
	}
	if cfg.DashboardURL != "https://staging.usebear.ai" {
		t.Errorf("DashboardURL override not applied: %q", cfg.DashboardURL)
	}
	if cfg.Headless {
		t.Error("BEAR_HEADLESS=false should disable headless mode")
	}
	if !cfg.DBEnabled() || cfg.DBPort != 5433 {
		t.Errorf("DB overrides not applied: host=%q port=%d", cfg.DBHost, cfg.DBPort)
	}
}

func TestLoadBadPortKeepsDefault(t *testing.T) {
	t.Setenv("BEAR_DB_PORT", "not-a-port")

	cfg := Load()
	if cfg.DBPort != DefaultConfig().DBPort {
		t.Errorf("bad port should keep the default, got %d", cfg.DBPort)
	}
}
