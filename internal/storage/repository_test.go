// ABOUTME: Tests for the SQLite Repository implementation.
// ABOUTME: Verifies per-day upserts, window queries, and deletes.
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/checkingin/internal/models"
)

var testDay = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func TestUpsertAndGetPhysicalMetric(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	m := models.NewPhysicalMetric("alice", testDay).
		WithSteps(8200).
		WithSleepHours(7.5).
		WithRecoveryPercent(74)

	if err := db.UpsertPhysicalMetric(ctx, m); err != nil {
		t.Fatalf("UpsertPhysicalMetric failed: %v", err)
	}

	got, err := db.GetPhysicalMetric(ctx, "alice", testDay.Add(13*time.Hour))
	if err != nil {
		t.Fatalf("GetPhysicalMetric failed: %v", err)
	}

	if got.ID != m.ID {
		t.Errorf("ID mismatch: got %v, want %v", got.ID, m.ID)
	}
	if got.Steps == nil || *got.Steps != 8200 {
		t.Errorf("Steps mismatch: got %v, want 8200", got.Steps)
	}
	if got.SleepHours == nil || *got.SleepHours != 7.5 {
		t.Errorf("SleepHours mismatch: got %v, want 7.5", got.SleepHours)
	}
	if got.Calories != nil {
		t.Errorf("expected nil Calories, got %d", *got.Calories)
	}
	if !models.SameDay(got.Date, testDay) {
		t.Errorf("Date mismatch: got %v", got.Date)
	}
}

func TestUpsertPhysicalMetricReplacesDay(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := models.NewPhysicalMetric("alice", testDay).WithSteps(3000).WithCalories(1800)
	if err := db.UpsertPhysicalMetric(ctx, first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second := models.NewPhysicalMetric("alice", testDay).WithSleepHours(6.5)
	if err := db.UpsertPhysicalMetric(ctx, second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected upsert to keep original ID %v, got %v", first.ID, second.ID)
	}

	all, err := db.ListPhysicalMetrics(ctx, "alice", time.Time{}, 0)
	if err != nil {
		t.Fatalf("ListPhysicalMetrics failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one row per day, got %d", len(all))
	}
	if all[0].Steps != nil || all[0].Calories != nil {
		t.Error("expected later upload to replace earlier fields")
	}
	if all[0].SleepHours == nil || *all[0].SleepHours != 6.5 {
		t.Errorf("SleepHours = %v, want 6.5", all[0].SleepHours)
	}
}

func TestListPhysicalMetricsWindow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		m := models.NewPhysicalMetric("alice", testDay.AddDate(0, 0, -i)).WithSteps(1000 * i)
		if err := db.UpsertPhysicalMetric(ctx, m); err != nil {
			t.Fatalf("upsert day %d failed: %v", i, err)
		}
	}
	other := models.NewPhysicalMetric("bob", testDay).WithSteps(99)
	if err := db.UpsertPhysicalMetric(ctx, other); err != nil {
		t.Fatalf("upsert bob failed: %v", err)
	}

	week, err := db.ListPhysicalMetrics(ctx, "alice", testDay.AddDate(0, 0, -7), 0)
	if err != nil {
		t.Fatalf("ListPhysicalMetrics failed: %v", err)
	}
	if len(week) != 8 {
		t.Errorf("expected 8 records on or after since, got %d", len(week))
	}
	if !models.SameDay(week[0].Date, testDay) {
		t.Errorf("expected most recent first, got %v", week[0].Date)
	}
	for _, m := range week {
		if m.UserID != "alice" {
			t.Errorf("unexpected user %s in window", m.UserID)
		}
	}

	limited, err := db.ListPhysicalMetrics(ctx, "alice", time.Time{}, 3)
	if err != nil {
		t.Fatalf("ListPhysicalMetrics with limit failed: %v", err)
	}
	if len(limited) != 3 {
		t.Errorf("expected 3 records with limit, got %d", len(limited))
	}
}

func TestGetPhysicalMetricNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetPhysicalMetric(context.Background(), "alice", testDay)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePhysicalMetric(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	m := models.NewPhysicalMetric("alice", testDay).WithSteps(5000)
	if err := db.UpsertPhysicalMetric(ctx, m); err != nil {
		t.Fatalf("UpsertPhysicalMetric failed: %v", err)
	}

	if err := db.DeletePhysicalMetric(ctx, "alice", testDay); err != nil {
		t.Fatalf("DeletePhysicalMetric failed: %v", err)
	}
	if _, err := db.GetPhysicalMetric(ctx, "alice", testDay); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted record to be gone, got %v", err)
	}
	if err := db.DeletePhysicalMetric(ctx, "alice", testDay); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestUpsertAndGetMentalEntry(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := models.NewMentalEntry("alice", testDay, 4).
		WithJournal("good day").
		WithGratitude("coffee")

	if err := db.UpsertMentalEntry(ctx, e); err != nil {
		t.Fatalf("UpsertMentalEntry failed: %v", err)
	}

	got, err := db.GetMentalEntry(ctx, "alice", testDay)
	if err != nil {
		t.Fatalf("GetMentalEntry failed: %v", err)
	}
	if got.Mood != 4 {
		t.Errorf("Mood = %d, want 4", got.Mood)
	}
	if got.Journal == nil || *got.Journal != "good day" {
		t.Errorf("Journal = %v, want 'good day'", got.Journal)
	}
	if got.Gratitude == nil || *got.Gratitude != "coffee" {
		t.Errorf("Gratitude = %v, want 'coffee'", got.Gratitude)
	}
	if got.Notes != nil {
		t.Errorf("expected nil Notes, got %q", *got.Notes)
	}
}

func TestUpsertMentalEntryDefaultsMood(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := &models.MentalEntry{UserID: "alice", Date: testDay}
	if err := db.UpsertMentalEntry(ctx, e); err != nil {
		t.Fatalf("UpsertMentalEntry failed: %v", err)
	}

	got, err := db.GetMentalEntry(ctx, "alice", testDay)
	if err != nil {
		t.Fatalf("GetMentalEntry failed: %v", err)
	}
	if got.Mood != models.DefaultMood {
		t.Errorf("Mood = %d, want %d", got.Mood, models.DefaultMood)
	}
}

func TestUpsertMentalEntryReplacesDay(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.UpsertMentalEntry(ctx, models.NewMentalEntry("alice", testDay, 2).WithJournal("rough")); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := db.UpsertMentalEntry(ctx, models.NewMentalEntry("alice", testDay, 5)); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	entries, err := db.ListMentalEntries(ctx, "alice", time.Time{}, 0)
	if err != nil {
		t.Fatalf("ListMentalEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Mood != 5 || entries[0].Journal != nil {
		t.Errorf("expected replaced entry, got mood %d journal %v", entries[0].Mood, entries[0].Journal)
	}
}

func TestListMentalEntriesOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for i, mood := range []int{1, 2, 3, 4} {
		e := models.NewMentalEntry("alice", testDay.AddDate(0, 0, -i), mood)
		if err := db.UpsertMentalEntry(ctx, e); err != nil {
			t.Fatalf("UpsertMentalEntry failed: %v", err)
		}
	}

	entries, err := db.ListMentalEntries(ctx, "alice", testDay.AddDate(0, 0, -2), 0)
	if err != nil {
		t.Fatalf("ListMentalEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []int{1, 2, 3} {
		if entries[i].Mood != want {
			t.Errorf("entry %d mood = %d, want %d", i, entries[i].Mood, want)
		}
	}
}

func TestDeleteMentalEntry(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.UpsertMentalEntry(ctx, models.NewMentalEntry("alice", testDay, 3)); err != nil {
		t.Fatalf("UpsertMentalEntry failed: %v", err)
	}
	if err := db.DeleteMentalEntry(ctx, "alice", testDay); err != nil {
		t.Fatalf("DeleteMentalEntry failed: %v", err)
	}
	if _, err := db.GetMentalEntry(ctx, "alice", testDay); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", DBFileName)

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if db.Path() != dbPath {
		t.Errorf("Path() = %s, want %s", db.Path(), dbPath)
	}
	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Errorf("expected parent directory to exist: %v", err)
	}
}

func TestDataDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	if got := DataDir(); got != "/tmp/xdg-data/checkingin" {
		t.Errorf("DataDir() = %s, want /tmp/xdg-data/checkingin", got)
	}
	if got := DefaultDBPath(); got != "/tmp/xdg-data/checkingin/checkingin.db" {
		t.Errorf("DefaultDBPath() = %s", got)
	}
}

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "checkingin-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := Open(filepath.Join(tmpDir, DBFileName))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
