// ABOUTME: Tests for the Tracker against a temporary SQLite database.
// ABOUTME: A fake extractor stands in for the vision model.
package wellness

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/checkingin/internal/insights"
	"github.com/harperreed/checkingin/internal/models"
	"github.com/harperreed/checkingin/internal/storage"
	"github.com/harperreed/checkingin/internal/vision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	result   *models.ExtractedMetrics
	err      error
	calls    int
	mimeType string
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, mimeType string) (*models.ExtractedMetrics, error) {
	f.calls++
	f.mimeType = mimeType
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.Local)

func setupTracker(t *testing.T, ext vision.Extractor) (*Tracker, *storage.DB) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), storage.DBFileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(db, ext, "alice", WithClock(func() time.Time { return fixedNow })), db
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestNewDefaults(t *testing.T) {
	tr := New(nil, nil, "")
	assert.Equal(t, DefaultUser, tr.UserID())
	assert.Equal(t, DefaultLookbackDays, tr.lookbackDays)

	tr = New(nil, nil, "bob", WithLookbackDays(-3))
	assert.Equal(t, DefaultLookbackDays, tr.lookbackDays)

	tr = New(nil, nil, "bob", WithLookbackDays(14))
	assert.Equal(t, 14, tr.lookbackDays)
}

func TestUploadScreenshotStoresTodayMetrics(t *testing.T) {
	ext := &fakeExtractor{result: &models.ExtractedMetrics{
		SleepHours: floatPtr(7.5),
		Steps:      intPtr(8432),
	}}
	tr, db := setupTracker(t, ext)
	ctx := context.Background()

	res, err := tr.UploadScreenshot(ctx, []byte{0xFF, 0xD8, 0xFF, 0xE0}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, ext.calls)
	assert.Equal(t, "image/jpeg", ext.mimeType)
	assert.Equal(t, "2024-03-15", models.FormatDate(res.Metric.Date))

	stored, err := db.GetPhysicalMetric(ctx, "alice", fixedNow)
	require.NoError(t, err)
	require.NotNil(t, stored.Steps)
	assert.Equal(t, 8432, *stored.Steps)
	assert.Equal(t, res.Metric.ID, stored.ID)
}

func TestUploadScreenshotReplacesEarlierUpload(t *testing.T) {
	ext := &fakeExtractor{result: &models.ExtractedMetrics{
		SleepHours: floatPtr(6),
		Calories:   intPtr(2100),
	}}
	tr, db := setupTracker(t, ext)
	ctx := context.Background()

	first, err := tr.UploadScreenshot(ctx, []byte("img"), "image/png")
	require.NoError(t, err)

	ext.result = &models.ExtractedMetrics{Steps: intPtr(9000)}
	second, err := tr.UploadScreenshot(ctx, []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, first.Metric.ID, second.Metric.ID)

	all, err := db.ListPhysicalMetrics(ctx, "alice", time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].SleepHours)
	assert.Nil(t, all[0].Calories)
	require.NotNil(t, all[0].Steps)
	assert.Equal(t, 9000, *all[0].Steps)
}

func TestUploadScreenshotErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty image", func(t *testing.T) {
		ext := &fakeExtractor{}
		tr, _ := setupTracker(t, ext)
		_, err := tr.UploadScreenshot(ctx, nil, "image/png")
		assert.ErrorIs(t, err, ErrEmptyImage)
		assert.Zero(t, ext.calls)
	})

	t.Run("no extractor", func(t *testing.T) {
		tr, _ := setupTracker(t, nil)
		_, err := tr.UploadScreenshot(ctx, []byte("img"), "image/png")
		assert.ErrorIs(t, err, vision.ErrMissingAPIKey)
	})

	t.Run("extraction failure stores nothing", func(t *testing.T) {
		boom := errors.New("model unavailable")
		tr, db := setupTracker(t, &fakeExtractor{err: boom})
		_, err := tr.UploadScreenshot(ctx, []byte("img"), "image/png")
		assert.ErrorIs(t, err, boom)

		_, err = db.GetPhysicalMetric(ctx, "alice", fixedNow)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestAddJournalEntry(t *testing.T) {
	tests := []struct {
		name     string
		input    JournalInput
		wantMood int
		wantErr  error
	}{
		{"explicit mood", JournalInput{Mood: 4, Entry: "good day"}, 4, nil},
		{"missing mood defaults", JournalInput{Entry: "meh"}, models.DefaultMood, nil},
		{"lowest mood", JournalInput{Mood: 1}, 1, nil},
		{"mood too high", JournalInput{Mood: 9}, 0, ErrInvalidMood},
		{"negative mood", JournalInput{Mood: -1}, 0, ErrInvalidMood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := setupTracker(t, nil)
			entry, err := tr.AddJournalEntry(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMood, entry.Mood)
		})
	}
}

func TestAddJournalEntryOptionalText(t *testing.T) {
	tr, db := setupTracker(t, nil)
	ctx := context.Background()

	_, err := tr.AddJournalEntry(ctx, JournalInput{Mood: 5, Gratitude: "coffee", Goals: "run 5k"})
	require.NoError(t, err)

	stored, err := db.GetMentalEntry(ctx, "alice", fixedNow)
	require.NoError(t, err)
	assert.Nil(t, stored.Journal)
	require.NotNil(t, stored.Gratitude)
	assert.Equal(t, "coffee", *stored.Gratitude)
	require.NotNil(t, stored.Notes)
	assert.Equal(t, "run 5k", *stored.Notes)
}

func TestInsightsEmpty(t *testing.T) {
	tr, _ := setupTracker(t, nil)

	snap, err := tr.Insights(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.TodayStatus.HasHealthData)
	assert.False(t, snap.TodayStatus.HasMentalHealthData)
	assert.Equal(t, 0, snap.WeeklyTrends.EntriesCount)
	assert.Equal(t, insights.TrendStable, snap.WeeklyTrends.MoodTrend)
	assert.Equal(t, 2.5, snap.WeeklyTrends.OverallWellnessScore)
	assert.Empty(t, snap.Suggestions)
}

func TestInsightsUsesLookbackWindow(t *testing.T) {
	tr, db := setupTracker(t, nil)
	ctx := context.Background()

	// Ten days of entries; only today and the previous seven fall in the window.
	for i := 0; i < 10; i++ {
		e := models.NewMentalEntry("alice", fixedNow.AddDate(0, 0, -i), 4)
		require.NoError(t, db.UpsertMentalEntry(ctx, e))
	}
	require.NoError(t, db.UpsertMentalEntry(ctx, models.NewMentalEntry("bob", fixedNow, 1)))

	snap, err := tr.Insights(ctx)
	require.NoError(t, err)
	assert.Equal(t, WindowLimit, snap.WeeklyTrends.EntriesCount)
	assert.Equal(t, 4.0, snap.WeeklyTrends.AvgMood)
	require.NotNil(t, snap.TodayStatus.Mood)
	assert.Equal(t, 4, *snap.TodayStatus.Mood)
}

func TestInsightsLowMoodSuggestion(t *testing.T) {
	tr, _ := setupTracker(t, nil)
	ctx := context.Background()

	_, err := tr.AddJournalEntry(ctx, JournalInput{Mood: 2})
	require.NoError(t, err)

	snap, err := tr.Insights(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, snap.Suggestions)
	assert.Equal(t, insights.SuggestionMental, snap.Suggestions[0].Type)
	assert.Equal(t, insights.PriorityHigh, snap.Suggestions[0].Priority)
}

func TestJournalSummaryStreak(t *testing.T) {
	tr, db := setupTracker(t, nil)
	ctx := context.Background()

	// Twelve consecutive days ending today, then a gap, then one older entry.
	for i := 0; i < 12; i++ {
		require.NoError(t, db.UpsertMentalEntry(ctx, models.NewMentalEntry("alice", fixedNow.AddDate(0, 0, -i), 3)))
	}
	require.NoError(t, db.UpsertMentalEntry(ctx, models.NewMentalEntry("alice", fixedNow.AddDate(0, 0, -20), 5)))

	summary, err := tr.JournalSummary(ctx)
	require.NoError(t, err)
	assert.Len(t, summary.Entries, WindowLimit)
	assert.Equal(t, WindowLimit, summary.Stats.TotalEntries)
	assert.Equal(t, 3.0, summary.Stats.AvgMood)
	assert.Equal(t, 12, summary.Stats.Streak)
}

func TestJournalSummaryNoEntryToday(t *testing.T) {
	tr, db := setupTracker(t, nil)
	ctx := context.Background()

	require.NoError(t, db.UpsertMentalEntry(ctx, models.NewMentalEntry("alice", fixedNow.AddDate(0, 0, -1), 3)))

	summary, err := tr.JournalSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Stats.Streak)
	assert.Equal(t, 1, summary.Stats.TotalEntries)
}

func TestListAndDelete(t *testing.T) {
	tr, db := setupTracker(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		m := models.NewPhysicalMetric("alice", fixedNow.AddDate(0, 0, -i)).WithSteps(1000 * (i + 1))
		require.NoError(t, db.UpsertPhysicalMetric(ctx, m))
	}

	metrics, err := tr.ListMetrics(ctx, 2)
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.Equal(t, 1000, *metrics[0].Steps)

	require.NoError(t, tr.DeleteMetric(ctx, fixedNow))
	assert.ErrorIs(t, tr.DeleteMetric(ctx, fixedNow), storage.ErrNotFound)

	_, err = tr.AddJournalEntry(ctx, JournalInput{Mood: 3})
	require.NoError(t, err)
	require.NoError(t, tr.DeleteJournalEntry(ctx, fixedNow))
	assert.ErrorIs(t, tr.DeleteJournalEntry(ctx, fixedNow), storage.ErrNotFound)
}
