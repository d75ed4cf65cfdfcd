// ABOUTME: Physical metric persistence for SQLite storage.
// ABOUTME: Upserts one row per user and day; an upload replaces the whole row.
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

const physicalColumns = `id, user_id, date, sleep_hours, recovery_percent, strain, hrv,
	resting_heart_rate, steps, calories, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// UpsertPhysicalMetric inserts the record or replaces every measurement of
// the existing row for the same user and day. The stored ID and CreatedAt
// are written back to m.
func (d *DB) UpsertPhysicalMetric(ctx context.Context, m *models.PhysicalMetric) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.Date = models.Day(m.Date)
	m.UpdatedAt = time.Now()

	query := `
		INSERT INTO physical_metrics (` + physicalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			sleep_hours = excluded.sleep_hours,
			recovery_percent = excluded.recovery_percent,
			strain = excluded.strain,
			hrv = excluded.hrv,
			resting_heart_rate = excluded.resting_heart_rate,
			steps = excluded.steps,
			calories = excluded.calories,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`
	var idStr, createdAt string
	err := d.db.QueryRowContext(ctx, query,
		m.ID.String(),
		m.UserID,
		models.FormatDate(m.Date),
		m.SleepHours,
		m.RecoveryPercent,
		m.Strain,
		m.HRV,
		m.RestingHeartRate,
		m.Steps,
		m.Calories,
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	).Scan(&idStr, &createdAt)
	if err != nil {
		return fmt.Errorf("upsert physical metric: %w", err)
	}

	m.ID, _ = uuid.Parse(idStr)
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return nil
}

// GetPhysicalMetric returns the user's record for the calendar day of date.
func (d *DB) GetPhysicalMetric(ctx context.Context, userID string, date time.Time) (*models.PhysicalMetric, error) {
	query := `SELECT ` + physicalColumns + ` FROM physical_metrics WHERE user_id = ? AND date = ?`
	m, err := scanPhysicalMetric(d.db.QueryRowContext(ctx, query, userID, models.FormatDate(models.Day(date))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("physical metric for %s: %w", models.FormatDate(date), ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

// ListPhysicalMetrics returns the user's records on or after since, newest first.
func (d *DB) ListPhysicalMetrics(ctx context.Context, userID string, since time.Time, limit int) ([]*models.PhysicalMetric, error) {
	query, args := windowQuery("physical_metrics", physicalColumns, userID, since, limit)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list physical metrics: %w", err)
	}
	defer rows.Close()

	return scanPhysicalMetrics(rows)
}

// DeletePhysicalMetric removes the user's record for the calendar day of date.
func (d *DB) DeletePhysicalMetric(ctx context.Context, userID string, date time.Time) error {
	return d.deleteByDay(ctx, "physical_metrics", userID, date)
}

// listAllPhysicalMetrics returns every user's records, newest first.
func (d *DB) listAllPhysicalMetrics(ctx context.Context) ([]*models.PhysicalMetric, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+physicalColumns+` FROM physical_metrics ORDER BY date DESC, user_id`)
	if err != nil {
		return nil, fmt.Errorf("list physical metrics: %w", err)
	}
	defer rows.Close()

	return scanPhysicalMetrics(rows)
}

func scanPhysicalMetrics(rows *sql.Rows) ([]*models.PhysicalMetric, error) {
	var metrics []*models.PhysicalMetric
	for rows.Next() {
		m, err := scanPhysicalMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

func scanPhysicalMetric(row rowScanner) (*models.PhysicalMetric, error) {
	var m models.PhysicalMetric
	var idStr, date, createdAt, updatedAt string
	var sleep, recovery, strain, hrv, rhr sql.NullFloat64
	var steps, calories sql.NullInt64

	err := row.Scan(&idStr, &m.UserID, &date, &sleep, &recovery, &strain, &hrv,
		&rhr, &steps, &calories, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan physical metric: %w", err)
	}

	m.ID, _ = uuid.Parse(idStr)
	m.Date, _ = models.ParseDate(date)
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	m.SleepHours = nullFloat(sleep)
	m.RecoveryPercent = nullFloat(recovery)
	m.Strain = nullFloat(strain)
	m.HRV = nullFloat(hrv)
	m.RestingHeartRate = nullFloat(rhr)
	m.Steps = nullInt(steps)
	m.Calories = nullInt(calories)

	return &m, nil
}

// windowQuery builds a per-user, date-descending SELECT with optional bounds.
func windowQuery(table, columns, userID string, since time.Time, limit int) (string, []any) {
	query := `SELECT ` + columns + ` FROM ` + table + ` WHERE user_id = ?`
	args := []any{userID}

	if !since.IsZero() {
		query += ` AND date >= ?`
		args = append(args, models.FormatDate(models.Day(since)))
	}

	query += ` ORDER BY date DESC`

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return query, args
}

func (d *DB) deleteByDay(ctx context.Context, table, userID string, date time.Time) error {
	day := models.FormatDate(models.Day(date))
	result, err := d.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ? AND date = ?`, userID, day)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s on %s: %w", table, day, ErrNotFound)
	}
	return nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
