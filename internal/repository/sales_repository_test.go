package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"SalesCast/internal/domain/models"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestLoadDefaultSource(t *testing.T) {
	path := writeTempCSV(t, "Date,Sales\n2024-01-02,20\n2024-01-01,10\n")
	repo := NewCSVSeriesRepository(path)

	series, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if series.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", series.Len())
	}
	if !series.First().Before(series.Last()) {
		t.Fatalf("series not sorted: first=%v last=%v", series.First(), series.Last())
	}
}

func TestLoadMissingSource(t *testing.T) {
	repo := NewCSVSeriesRepository(filepath.Join(t.TempDir(), "absent.csv"))

	_, err := repo.Load(context.Background())
	var derr *models.DomainError
	if !errors.As(err, &derr) || derr.Kind != models.KindSourceNotFound {
		t.Fatalf("expected source-not-found, got %v", err)
	}
}

func TestLoadUnresolvableSource(t *testing.T) {
	path := writeTempCSV(t, "foo,bar\n1,2\n")
	repo := NewCSVSeriesRepository(path)

	_, err := repo.Load(context.Background())
	var derr *models.DomainError
	if !errors.As(err, &derr) || derr.Kind != models.KindSchema {
		t.Fatalf("expected schema error, got %v", err)
	}
}
