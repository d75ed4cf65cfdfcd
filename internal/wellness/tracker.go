// ABOUTME: Tracker ties storage, vision extraction, and insights together.
// ABOUTME: Every CLI command and MCP tool goes through it for one user.
package wellness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/checkingin/internal/insights"
	"github.com/harperreed/checkingin/internal/logging"
	"github.com/harperreed/checkingin/internal/models"
	"github.com/harperreed/checkingin/internal/storage"
	"github.com/harperreed/checkingin/internal/vision"
)

const (
	// DefaultLookbackDays is the insights window.
	DefaultLookbackDays = 7
	// WindowLimit caps how many records of each kind feed the insights.
	WindowLimit = 7
	// DefaultUser is used when no user is configured.
	DefaultUser = "default"
)

var (
	ErrInvalidMood = errors.New("mood must be between 1 and 5")
	ErrEmptyImage  = errors.New("image is empty")
)

// Tracker records wellness data for a single user.
type Tracker struct {
	repo         storage.Repository
	extractor    vision.Extractor
	userID       string
	lookbackDays int
	now          func() time.Time
}

// Option customizes a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLookbackDays sets the insights window. Values <= 0 are ignored.
func WithLookbackDays(days int) Option {
	return func(t *Tracker) {
		if days > 0 {
			t.lookbackDays = days
		}
	}
}

// New creates a Tracker. extractor may be nil, in which case uploads fail
// with vision.ErrMissingAPIKey.
func New(repo storage.Repository, extractor vision.Extractor, userID string, opts ...Option) *Tracker {
	if userID == "" {
		userID = DefaultUser
	}
	t := &Tracker{
		repo:         repo,
		extractor:    extractor,
		userID:       userID,
		lookbackDays: DefaultLookbackDays,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// UserID returns the user this tracker records for.
func (t *Tracker) UserID() string {
	return t.userID
}

// Today returns the current calendar day.
func (t *Tracker) Today() time.Time {
	return models.Day(t.now())
}

// UploadResult is what an upload stored and what the model read.
type UploadResult struct {
	Metric    *models.PhysicalMetric   `json:"metric"`
	Extracted *models.ExtractedMetrics `json:"extracted"`
}

// UploadScreenshot extracts metrics from image and stores them as today's
// physical record, replacing any earlier upload for the day.
func (t *Tracker) UploadScreenshot(ctx context.Context, image []byte, mimeType string) (*UploadResult, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if t.extractor == nil {
		return nil, vision.ErrMissingAPIKey
	}
	if mimeType == "" {
		mimeType = vision.DetectMimeType(image)
	}

	extracted, err := t.extractor.Extract(ctx, image, mimeType)
	if err != nil {
		logging.Error("screenshot extraction failed", "user", t.userID, "err", err)
		return nil, fmt.Errorf("extract metrics: %w", err)
	}
	if extracted.Empty() {
		logging.Warn("no metrics found in screenshot", "user", t.userID)
	}

	metric := models.NewPhysicalMetric(t.userID, t.Today()).ApplyExtraction(extracted)
	if err := t.repo.UpsertPhysicalMetric(ctx, metric); err != nil {
		return nil, fmt.Errorf("save metrics: %w", err)
	}

	logging.Info("stored physical metrics", "user", t.userID, "date", models.FormatDate(metric.Date))
	return &UploadResult{Metric: metric, Extracted: extracted}, nil
}

// JournalInput is one day's journal submission. Mood 0 means not given.
type JournalInput struct {
	Mood      int
	Entry     string
	Gratitude string
	Goals     string
}

// AddJournalEntry stores today's journal entry, replacing any earlier one.
func (t *Tracker) AddJournalEntry(ctx context.Context, in JournalInput) (*models.MentalEntry, error) {
	if in.Mood != 0 && !models.IsValidMood(in.Mood) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMood, in.Mood)
	}

	entry := models.NewMentalEntry(t.userID, t.Today(), in.Mood).
		WithJournal(in.Entry).
		WithGratitude(in.Gratitude).
		WithNotes(in.Goals)

	if err := t.repo.UpsertMentalEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("save journal entry: %w", err)
	}

	logging.Info("stored journal entry", "user", t.userID, "date", models.FormatDate(entry.Date), "mood", entry.Mood)
	return entry, nil
}

func (t *Tracker) windowStart() time.Time {
	return t.Today().AddDate(0, 0, -t.lookbackDays)
}

func (t *Tracker) loadWindow(ctx context.Context) ([]*models.PhysicalMetric, []*models.MentalEntry, error) {
	since := t.windowStart()

	physical, err := t.repo.ListPhysicalMetrics(ctx, t.userID, since, WindowLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("load physical metrics: %w", err)
	}
	mental, err := t.repo.ListMentalEntries(ctx, t.userID, since, WindowLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("load journal entries: %w", err)
	}
	return physical, mental, nil
}

// Insights computes the wellness snapshot over the lookback window.
func (t *Tracker) Insights(ctx context.Context) (*insights.Snapshot, error) {
	physical, mental, err := t.loadWindow(ctx)
	if err != nil {
		return nil, err
	}

	logging.Debug("computing insights", "user", t.userID, "physical", len(physical), "mental", len(mental))
	return insights.Compute(physical, mental, t.Today()), nil
}

// JournalSummary lists the window's entries with habit statistics.
type JournalSummary struct {
	Entries []*models.MentalEntry `json:"entries"`
	Stats   insights.JournalStats `json:"stats"`
}

// JournalSummary returns the recent entries. The streak is measured over
// the full history so it can run past the window.
func (t *Tracker) JournalSummary(ctx context.Context) (*JournalSummary, error) {
	window, err := t.repo.ListMentalEntries(ctx, t.userID, t.windowStart(), WindowLimit)
	if err != nil {
		return nil, fmt.Errorf("load journal entries: %w", err)
	}
	history, err := t.repo.ListMentalEntries(ctx, t.userID, time.Time{}, 0)
	if err != nil {
		return nil, fmt.Errorf("load journal history: %w", err)
	}

	return &JournalSummary{
		Entries: window,
		Stats:   insights.ComputeJournalStats(window, history, t.Today()),
	}, nil
}

// ListMetrics returns up to limit physical records, newest first.
func (t *Tracker) ListMetrics(ctx context.Context, limit int) ([]*models.PhysicalMetric, error) {
	metrics, err := t.repo.ListPhysicalMetrics(ctx, t.userID, time.Time{}, limit)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return metrics, nil
}

// PhysicalMetric returns the physical record for date, or storage.ErrNotFound.
func (t *Tracker) PhysicalMetric(ctx context.Context, date time.Time) (*models.PhysicalMetric, error) {
	return t.repo.GetPhysicalMetric(ctx, t.userID, date)
}

// JournalEntry returns the journal entry for date, or storage.ErrNotFound.
func (t *Tracker) JournalEntry(ctx context.Context, date time.Time) (*models.MentalEntry, error) {
	return t.repo.GetMentalEntry(ctx, t.userID, date)
}

// DeleteMetric removes the physical record for date.
func (t *Tracker) DeleteMetric(ctx context.Context, date time.Time) error {
	return t.repo.DeletePhysicalMetric(ctx, t.userID, date)
}

// DeleteJournalEntry removes the journal entry for date.
func (t *Tracker) DeleteJournalEntry(ctx context.Context, date time.Time) error {
	return t.repo.DeleteMentalEntry(ctx, t.userID, date)
}
