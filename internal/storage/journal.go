// ABOUTME: Journal entry persistence for SQLite storage.
// ABOUTME: One mood entry per user and day; a later entry replaces the day's text.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/checkingin/internal/models"
)

const mentalColumns = `id, user_id, date, mood, journal, gratitude, notes, created_at, updated_at`

// UpsertMentalEntry inserts the entry or replaces the existing entry for the
// same user and day. The stored ID and CreatedAt are written back to e.
func (d *DB) UpsertMentalEntry(ctx context.Context, e *models.MentalEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Mood == 0 {
		e.Mood = models.DefaultMood
	}
	e.Date = models.Day(e.Date)
	e.UpdatedAt = time.Now()

	query := `
		INSERT INTO mental_entries (` + mentalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			mood = excluded.mood,
			journal = excluded.journal,
			gratitude = excluded.gratitude,
			notes = excluded.notes,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`
	var idStr, createdAt string
	err := d.db.QueryRowContext(ctx, query,
		e.ID.String(),
		e.UserID,
		models.FormatDate(e.Date),
		e.Mood,
		e.Journal,
		e.Gratitude,
		e.Notes,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	).Scan(&idStr, &createdAt)
	if err != nil {
		return fmt.Errorf("upsert mental entry: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return nil
}

// GetMentalEntry returns the user's entry for the calendar day of date.
func (d *DB) GetMentalEntry(ctx context.Context, userID string, date time.Time) (*models.MentalEntry, error) {
	query := `SELECT ` + mentalColumns + ` FROM mental_entries WHERE user_id = ? AND date = ?`
	e, err := scanMentalEntry(d.db.QueryRowContext(ctx, query, userID, models.FormatDate(models.Day(date))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("journal entry for %s: %w", models.FormatDate(date), ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

// ListMentalEntries returns the user's entries on or after since, newest first.
func (d *DB) ListMentalEntries(ctx context.Context, userID string, since time.Time, limit int) ([]*models.MentalEntry, error) {
	query, args := windowQuery("mental_entries", mentalColumns, userID, since, limit)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mental entries: %w", err)
	}
	defer rows.Close()

	return scanMentalEntries(rows)
}

// DeleteMentalEntry removes the user's entry for the calendar day of date.
func (d *DB) DeleteMentalEntry(ctx context.Context, userID string, date time.Time) error {
	return d.deleteByDay(ctx, "mental_entries", userID, date)
}

func (d *DB) listAllMentalEntries(ctx context.Context) ([]*models.MentalEntry, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+mentalColumns+` FROM mental_entries ORDER BY date DESC, user_id`)
	if err != nil {
		return nil, fmt.Errorf("list mental entries: %w", err)
	}
	defer rows.Close()

	return scanMentalEntries(rows)
}

func scanMentalEntries(rows *sql.Rows) ([]*models.MentalEntry, error) {
	var entries []*models.MentalEntry
	for rows.Next() {
		e, err := scanMentalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanMentalEntry(row rowScanner) (*models.MentalEntry, error) {
	var e models.MentalEntry
	var idStr, date, createdAt, updatedAt string
	var journal, gratitude, notes sql.NullString

	err := row.Scan(&idStr, &e.UserID, &date, &e.Mood, &journal, &gratitude, &notes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan mental entry: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.Date, _ = models.ParseDate(date)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if journal.Valid {
		e.Journal = &journal.String
	}
	if gratitude.Valid {
		e.Gratitude = &gratitude.String
	}
	if notes.Valid {
		e.Notes = &notes.String
	}

	return &e, nil
}
