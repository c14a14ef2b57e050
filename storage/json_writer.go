package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bear-dashboard-scraper/models"
	"bear-dashboard-scraper/utils"
)

const dataFilePrefix = "bear_dashboard_data_"

// JSONWriter persists scrape records as timestamped JSON files under a data
// directory, one file per scrape. Primary sink; PostgreSQL is optional.
type JSONWriter struct {
	dir string
}

func NewJSONWriter(dir string) *JSONWriter {
	return &JSONWriter{dir: dir}
}

// Save writes record to a JSON file and returns its path. Pass name "" for
// the default timestamped filename; a custom name gets ".json" appended if
// missing. Creates the data directory on demand.
func (w *JSONWriter) Save(record models.ScrapeRecord, name string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create data dir: %w", err)
	}

	if name == "" {
		name = dataFilePrefix + record.Timestamp.Format("20060102_150405") + ".json"
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	path := filepath.Join(w.dir, name)

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not marshal scrape record: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("could not write %s: %w", path, err)
	}

	utils.Success("Saved scrape record → %s", path)
	return path, nil
}

// Load reads a single record back by filename.
func (w *JSONWriter) Load(name string) (models.ScrapeRecord, error) {
	var record models.ScrapeRecord

	path := filepath.Join(w.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return record, fmt.Errorf("could not read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return record, nil
}

// List returns the record filenames in the data directory, most recent
// first. A missing directory means no records yet, not an error.
func (w *JSONWriter) List() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not list data dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}

	// Timestamped names sort lexically, so reverse order is newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// LoadAll loads every stored record, oldest first, for trend reporting.
func (w *JSONWriter) LoadAll() ([]models.ScrapeRecord, error) {
	names, err := w.List()
	if err != nil {
		return nil, err
	}

	records := make([]models.ScrapeRecord, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		record, err := w.Load(names[i])
		if err != nil {
			utils.Warn("Skipping unreadable record %s: %v", names[i], err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
