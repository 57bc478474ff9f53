package repository

import (
	"time"

	"krishi/entities"
)

// HistoryRecordWithCrop joins a history row with its crop's display names.
type HistoryRecordWithCrop struct {
	entities.IrrigationRecord
	CropName  string `json:"crop_name"`
	FieldName string `json:"field_name"`
}

type HistoryRepository interface {
	Create(rec *entities.IrrigationRecord) error
	ListByFarmer(farmerID uint, limit int) ([]HistoryRecordWithCrop, error)
	ListByCrop(cropID uint, limit int) ([]entities.IrrigationRecord, error)
	// ExistsOn reports whether any irrigation was recorded for the crop on
	// the given calendar day.
	ExistsOn(cropID uint, day time.Time) (bool, error)
	// SavedEvents counts zero-water events for the dashboard metric.
	SavedEvents(farmerID uint) (int64, error)
}
