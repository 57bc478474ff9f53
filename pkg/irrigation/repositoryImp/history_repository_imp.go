package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"krishi/entities"
	"krishi/pkg/irrigation/repository"
)

type historyRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.HistoryRepository { return &historyRepo{db} }

func (r *historyRepo) Create(rec *entities.IrrigationRecord) error {
	return r.db.Create(rec).Error
}

func (r *historyRepo) ListByFarmer(farmerID uint, limit int) ([]repository.HistoryRecordWithCrop, error) {
	var out []repository.HistoryRecordWithCrop
	err := r.db.Model(&entities.IrrigationRecord{}).
		Select("irrigation_records.*, crops.crop_name, crops.field_name").
		Joins("JOIN crops ON crops.crop_id = irrigation_records.crop_id").
		Where("irrigation_records.farmer_id = ?", farmerID).
		Order("irrigation_records.recorded_at DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *historyRepo) ListByCrop(cropID uint, limit int) ([]entities.IrrigationRecord, error) {
	var out []entities.IrrigationRecord
	err := r.db.Where("crop_id = ?", cropID).
		Order("recorded_at DESC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *historyRepo) ExistsOn(cropID uint, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var n int64
	err := r.db.Model(&entities.IrrigationRecord{}).
		Where("crop_id = ? AND recorded_at >= ? AND recorded_at < ?", cropID, start, end).
		Count(&n).Error
	return n > 0, err
}

func (r *historyRepo) SavedEvents(farmerID uint) (int64, error) {
	var n int64
	err := r.db.Model(&entities.IrrigationRecord{}).
		Where("farmer_id = ? AND water_required = 0", farmerID).
		Count(&n).Error
	return n, err
}
