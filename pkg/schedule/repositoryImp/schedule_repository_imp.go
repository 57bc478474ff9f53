package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"krishi/entities"
	"krishi/pkg/schedule/repository"
)

type schedRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ScheduleRepository { return &schedRepo{db} }

func (r *schedRepo) FindByIDAndFarmer(id, farmerID uint) (*entities.ScheduleEntry, error) {
	var e entities.ScheduleEntry
	if err := r.db.Where("schedule_id = ? AND farmer_id = ?", id, farmerID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *schedRepo) FindByDate(cropID uint, day time.Time) (*entities.ScheduleEntry, error) {
	var e entities.ScheduleEntry
	err := r.db.Where("crop_id = ? AND scheduled_date = ?", cropID, dateOnly(day)).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *schedRepo) ListByCrop(cropID uint) ([]entities.ScheduleEntry, error) {
	var out []entities.ScheduleEntry
	if err := r.db.Where("crop_id = ?", cropID).
		Order("scheduled_date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *schedRepo) Upcoming(farmerID uint, from, to time.Time) ([]repository.UpcomingEntry, error) {
	var out []repository.UpcomingEntry
	err := r.db.Model(&entities.ScheduleEntry{}).
		Select("schedule_entries.*, crops.crop_name, crops.field_name").
		Joins("JOIN crops ON crops.crop_id = schedule_entries.crop_id").
		Where("schedule_entries.farmer_id = ?", farmerID).
		Where("schedule_entries.scheduled_date BETWEEN ? AND ?", dateOnly(from), dateOnly(to)).
		Where("schedule_entries.status IN ?", []entities.ScheduleStatus{
			entities.SchedulePending, entities.ScheduleMissed,
		}).
		Order("schedule_entries.scheduled_date, crops.field_name").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *schedRepo) MarkMissedBefore(cropID uint, cutoff time.Time) (int64, error) {
	res := r.db.Model(&entities.ScheduleEntry{}).
		Where("crop_id = ? AND scheduled_date < ? AND status = ?",
			cropID, dateOnly(cutoff), entities.SchedulePending).
		Update("status", entities.ScheduleMissed)
	return res.RowsAffected, res.Error
}

func (r *schedRepo) ReplaceLifecycle(cropID uint, today time.Time, entries []entities.ScheduleEntry) error {
	cut := dateOnly(today)
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Future projections are disposable; realized outcomes are not.
		if err := tx.Where("crop_id = ? AND scheduled_date >= ? AND status = ?",
			cropID, cut, entities.SchedulePending).
			Delete(&entities.ScheduleEntry{}).Error; err != nil {
			return err
		}
		for i := range entries {
			e := &entries[i]
			e.ScheduledDate = dateOnly(e.ScheduledDate)
			// Single atomic conditional upsert on (crop, date): no window
			// between an existence check and the write. Rows that are no
			// longer pending keep everything they have.
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "crop_id"}, {Name: "scheduled_date"}},
				DoUpdates: clause.Assignments(map[string]any{
					"water_amount": e.WaterAmount,
					"reason":       e.Reason,
				}),
				Where: clause.Where{Exprs: []clause.Expression{
					clause.Eq{Column: clause.Column{Table: "schedule_entries", Name: "status"},
						Value: string(entities.SchedulePending)},
				}},
			}).Create(e).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *schedRepo) Complete(id, farmerID uint, completedAt time.Time, actualWater *float64, rec *entities.IrrigationRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		upd := map[string]any{
			"status":       entities.ScheduleCompleted,
			"completed_at": completedAt,
		}
		if actualWater != nil {
			upd["actual_water"] = *actualWater
			upd["water_amount"] = *actualWater
		}
		res := tx.Model(&entities.ScheduleEntry{}).
			Where("schedule_id = ? AND farmer_id = ? AND status = ?",
				id, farmerID, entities.SchedulePending).
			Updates(upd)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotPending
		}
		return tx.Create(rec).Error
	})
}

func (r *schedRepo) Skip(id, farmerID uint, reason string) error {
	res := r.db.Model(&entities.ScheduleEntry{}).
		Where("schedule_id = ? AND farmer_id = ? AND status = ?",
			id, farmerID, entities.SchedulePending).
		Updates(map[string]any{
			"status": entities.ScheduleSkipped,
			"reason": reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotPending
	}
	return nil
}

func (r *schedRepo) Statistics(cropID uint) (*repository.Stats, error) {
	var rows []struct {
		Status entities.ScheduleStatus
		N      int64
	}
	err := r.db.Model(&entities.ScheduleEntry{}).
		Select("status, COUNT(*) as n").
		Where("crop_id = ?", cropID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	s := &repository.Stats{}
	for _, row := range rows {
		s.Total += row.N
		switch row.Status {
		case entities.ScheduleCompleted:
			s.Completed = row.N
		case entities.ScheduleMissed:
			s.Missed = row.N
		case entities.SchedulePending:
			s.Pending = row.N
		case entities.ScheduleSkipped:
			s.Skipped = row.N
		}
	}
	if s.Total > 0 {
		rate := float64(s.Completed) / float64(s.Total) * 100
		s.AdherenceRate = float64(int(rate*10+0.5)) / 10
	}
	return s, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
