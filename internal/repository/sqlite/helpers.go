package sqlite

import (
	"database/sql"
	"math"

	"locationreminders/internal/domain"
)

// Column order must match between reminderColumns, scanArgs() and
// reminderInsertArgs(). Append new columns at the end of all three.

// reminderColumns is the SELECT/INSERT column list for reminder queries
const reminderColumns = `id, title, description, location, latitude, longitude`

// reminderRow holds all columns from a reminder query for scanning
type reminderRow struct {
	ID          string
	Title       string
	Description string
	Location    string
	Latitude    sql.NullFloat64
	Longitude   sql.NullFloat64
}

// scanArgs returns pointers to all fields for sql.Scan()
func (r *reminderRow) scanArgs() []any {
	return []any{
		&r.ID,
		&r.Title,
		&r.Description,
		&r.Location,
		&r.Latitude,
		&r.Longitude,
	}
}

// toDomain converts the scanned row to a domain.Reminder
func (r *reminderRow) toDomain() *domain.Reminder {
	return &domain.Reminder{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Latitude:    coordinate(r.Latitude),
		Longitude:   coordinate(r.Longitude),
	}
}

// coordinate maps NULL back to NaN, which SQLite stores as NULL
func coordinate(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// reminderInsertArgs prepares arguments for reminder INSERT/UPSERT
func reminderInsertArgs(r *domain.Reminder) []any {
	return []any{
		r.ID,
		r.Title,
		r.Description,
		r.Location,
		r.Latitude,
		r.Longitude,
	}
}
