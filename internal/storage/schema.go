// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines per-day tables for physical metrics and journal entries.
package storage

// initSchema creates or updates the database schema.
// Both tables hold at most one row per user per calendar day.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS physical_metrics (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		sleep_hours REAL,
		recovery_percent REAL,
		strain REAL,
		hrv REAL,
		resting_heart_rate REAL,
		steps INTEGER,
		calories INTEGER,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE (user_id, date)
	);

	CREATE TABLE IF NOT EXISTS mental_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		mood INTEGER NOT NULL DEFAULT 3,
		journal TEXT,
		gratitude TEXT,
		notes TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE (user_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_physical_user_date ON physical_metrics(user_id, date DESC);
	CREATE INDEX IF NOT EXISTS idx_mental_user_date ON mental_entries(user_id, date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
