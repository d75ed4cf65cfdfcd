// ABOUTME: Export and import functionality for wellness records.
// ABOUTME: Supports JSON (round-trippable backup) and YAML (human-readable) formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/checkingin/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current backup format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for wellness records.
type ExportData struct {
	Version         string                   `json:"version" yaml:"version"`
	ExportedAt      time.Time                `json:"exported_at" yaml:"exported_at"`
	Tool            string                   `json:"tool" yaml:"tool"`
	PhysicalMetrics []*models.PhysicalMetric `json:"physical_metrics" yaml:"physical_metrics"`
	JournalEntries  []*models.MentalEntry    `json:"journal_entries" yaml:"journal_entries"`
}

// GetAllData retrieves every user's records for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	metrics, err := d.listAllPhysicalMetrics(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := d.listAllMentalEntries(ctx)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Version:         ExportVersion,
		ExportedAt:      time.Now(),
		Tool:            "checkingin",
		PhysicalMetrics: metrics,
		JournalEntries:  entries,
	}, nil
}

// ImportData upserts every record from an export. Records for a day that
// already exists replace the stored values.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	for _, m := range data.PhysicalMetrics {
		if err := d.UpsertPhysicalMetric(ctx, m); err != nil {
			return fmt.Errorf("import physical metric %s: %w", models.FormatDate(m.Date), err)
		}
	}

	for _, e := range data.JournalEntries {
		if err := d.UpsertMentalEntry(ctx, e); err != nil {
			return fmt.Errorf("import journal entry %s: %w", models.FormatDate(e.Date), err)
		}
	}

	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML, grouped by user and keyed by date.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string              `yaml:"version"`
		ExportedAt string              `yaml:"exported_at"`
		Tool       string              `yaml:"tool"`
		Users      map[string]yamlUser `yaml:"users"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Users:      make(map[string]yamlUser),
	}

	for _, m := range data.PhysicalMetrics {
		u := yamlData.Users[m.UserID]
		u.Physical = append(u.Physical, yamlPhysical{
			Date:             models.FormatDate(m.Date),
			SleepHours:       m.SleepHours,
			RecoveryPercent:  m.RecoveryPercent,
			Strain:           m.Strain,
			HRV:              m.HRV,
			RestingHeartRate: m.RestingHeartRate,
			Steps:            m.Steps,
			Calories:         m.Calories,
		})
		yamlData.Users[m.UserID] = u
	}

	for _, e := range data.JournalEntries {
		u := yamlData.Users[e.UserID]
		ye := yamlJournal{
			Date: models.FormatDate(e.Date),
			Mood: e.Mood,
		}
		if e.Journal != nil {
			ye.Journal = *e.Journal
		}
		if e.Gratitude != nil {
			ye.Gratitude = *e.Gratitude
		}
		if e.Notes != nil {
			ye.Notes = *e.Notes
		}
		u.Journal = append(u.Journal, ye)
		yamlData.Users[e.UserID] = u
	}

	return yaml.Marshal(yamlData)
}

type yamlUser struct {
	Physical []yamlPhysical `yaml:"physical,omitempty"`
	Journal  []yamlJournal  `yaml:"journal,omitempty"`
}

type yamlPhysical struct {
	Date             string   `yaml:"date"`
	SleepHours       *float64 `yaml:"sleep_hours,omitempty"`
	RecoveryPercent  *float64 `yaml:"recovery_percent,omitempty"`
	Strain           *float64 `yaml:"strain,omitempty"`
	HRV              *float64 `yaml:"hrv,omitempty"`
	RestingHeartRate *float64 `yaml:"resting_heart_rate,omitempty"`
	Steps            *int     `yaml:"steps,omitempty"`
	Calories         *int     `yaml:"calories,omitempty"`
}

type yamlJournal struct {
	Date      string `yaml:"date"`
	Mood      int    `yaml:"mood"`
	Journal   string `yaml:"journal,omitempty"`
	Gratitude string `yaml:"gratitude,omitempty"`
	Notes     string `yaml:"notes,omitempty"`
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	if exportData.Version != "" && exportData.Version != ExportVersion {
		return fmt.Errorf("unsupported export version %q", exportData.Version)
	}
	return d.ImportData(ctx, &exportData)
}
