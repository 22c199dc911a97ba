package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"zender/internal/catalog"
)

func TestCatalogListNoRuns(t *testing.T) {
	configPath, _ := writeTestConfig(t, "")

	_, err := runCLI(t, "--config", configPath, "catalog", "list")
	if err == nil {
		t.Fatal("expected error when no scrape runs exist")
	}
	requireContains(t, err.Error(), "no catalog snapshots")
}

func TestCatalogListAndShow(t *testing.T) {
	configPath, stateDir := writeTestConfig(t, "")

	series := catalog.Series{
		Title: "De Mol",
		Link:  "https://www.vrt.be/vrtmax/a-z/de-mol/",
	}
	season := series.EnsureSeason("Seizoen 3", "")
	season.Episodes = append(season.Episodes, catalog.Episode{
		Title:   "Aflevering 5",
		Number:  5,
		PageURL: "https://www.vrt.be/vrtmax/a-z/de-mol/3/de-mol-s3-a5/",
	})

	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		t.Fatalf("create state dir: %v", err)
	}
	store, err := catalog.Open(filepath.Join(stateDir, "catalog.db"))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	if _, err := store.SaveRun(context.Background(), "VRTMAX", time.Now(), []catalog.Series{series}); err != nil {
		t.Fatalf("save run: %v", err)
	}
	store.Close()

	out, err := runCLI(t, "--config", configPath, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "De Mol")
	requireContains(t, out, "VRTMAX")

	out, err = runCLI(t, "--config", configPath, "catalog", "show", "De Mol")
	if err != nil {
		t.Fatalf("catalog show: %v", err)
	}
	requireContains(t, out, "Seizoen 3")
	requireContains(t, out, "Aflevering 5")

	_, err = runCLI(t, "--config", configPath, "catalog", "show", "Missing Series")
	if err == nil {
		t.Fatal("expected error for unknown series")
	}
}
