package repository

import (
	"errors"
	"time"

	"krishi/entities"
)

// ErrNotPending is returned when a state-changing operation targets an
// entry that is no longer pending. Locked entries are never overwritten
// or silently ignored.
var ErrNotPending = errors.New("schedule entry is not pending")

// Stats summarizes schedule adherence for one crop.
type Stats struct {
	Total         int64   `json:"total"`
	Completed     int64   `json:"completed"`
	Missed        int64   `json:"missed"`
	Pending       int64   `json:"pending"`
	Skipped       int64   `json:"skipped"`
	AdherenceRate float64 `json:"adherence_rate"`
}

// UpcomingEntry joins a schedule row with its crop's display names.
type UpcomingEntry struct {
	entities.ScheduleEntry
	CropName  string `json:"crop_name"`
	FieldName string `json:"field_name"`
}

type ScheduleRepository interface {
	FindByIDAndFarmer(id, farmerID uint) (*entities.ScheduleEntry, error)
	// FindByDate returns the entry for (crop, day), or nil when none exists.
	FindByDate(cropID uint, day time.Time) (*entities.ScheduleEntry, error)
	ListByCrop(cropID uint) ([]entities.ScheduleEntry, error)
	Upcoming(farmerID uint, from, to time.Time) ([]UpcomingEntry, error)

	// MarkMissedBefore flips pending entries dated strictly before cutoff
	// to missed and returns how many it flipped. Idempotent.
	MarkMissedBefore(cropID uint, cutoff time.Time) (int64, error)

	// ReplaceLifecycle merges a freshly generated candidate list into the
	// stored schedule in one transaction: future pending entries are
	// disposable and deleted; each candidate is then upserted on
	// (crop, date), updating water/reason only while the stored row is
	// still pending.
	ReplaceLifecycle(cropID uint, today time.Time, entries []entities.ScheduleEntry) error

	// Complete transitions a pending entry to completed and appends the
	// matching history record atomically. ErrNotPending if locked.
	Complete(id, farmerID uint, completedAt time.Time, actualWater *float64, rec *entities.IrrigationRecord) error

	// Skip transitions a pending entry to skipped. ErrNotPending if locked.
	Skip(id, farmerID uint, reason string) error

	Statistics(cropID uint) (*Stats, error)
}
