// ABOUTME: Repository interface for wellness record storage.
// ABOUTME: Defines per-day upsert, window queries, and export/import.
package storage

import (
	"context"
	"time"

	"github.com/harperreed/checkingin/internal/models"
)

// Repository defines the storage interface for wellness records.
// List methods return records most recent first. A zero since means no
// lower bound and a limit <= 0 means no limit.
type Repository interface {
	// Physical metric operations
	UpsertPhysicalMetric(ctx context.Context, m *models.PhysicalMetric) error
	GetPhysicalMetric(ctx context.Context, userID string, date time.Time) (*models.PhysicalMetric, error)
	ListPhysicalMetrics(ctx context.Context, userID string, since time.Time, limit int) ([]*models.PhysicalMetric, error)
	DeletePhysicalMetric(ctx context.Context, userID string, date time.Time) error

	// Journal operations
	UpsertMentalEntry(ctx context.Context, e *models.MentalEntry) error
	GetMentalEntry(ctx context.Context, userID string, date time.Time) (*models.MentalEntry, error)
	ListMentalEntries(ctx context.Context, userID string, since time.Time, limit int) ([]*models.MentalEntry, error)
	DeleteMentalEntry(ctx context.Context, userID string, date time.Time) error

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error

	// Lifecycle
	Close() error
}
