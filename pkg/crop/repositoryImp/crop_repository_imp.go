package repositoryImp

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"krishi/entities"
	"krishi/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) CreateWithSoil(c *entities.Crop, s *entities.SoilRecord) error {
	c.CropName = strings.ToLower(strings.TrimSpace(c.CropName))
	c.FieldName = strings.TrimSpace(c.FieldName)
	if c.FieldName == "" {
		c.FieldName = "My Field"
	}
	if c.Status == "" {
		c.Status = entities.CropActive
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if s != nil {
			s.CropID = c.CropID
			s.FarmerID = c.FarmerID
			if err := tx.Create(s).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *cropRepo) ListByFarmer(farmerID uint, status entities.CropStatus) ([]entities.Crop, error) {
	var out []entities.Crop
	q := r.db.Where("farmer_id = ?", farmerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("planting_date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cropRepo) FindByIDAndFarmer(id, farmerID uint) (*entities.Crop, error) {
	var c entities.Crop
	if err := r.db.Where("crop_id = ? AND farmer_id = ?", id, farmerID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cropRepo) UpdateStatus(id, farmerID uint, status entities.CropStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid crop status %q", status)
	}
	res := r.db.Model(&entities.Crop{}).
		Where("crop_id = ? AND farmer_id = ?", id, farmerID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cropRepo) Delete(id, farmerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var c entities.Crop
		if err := tx.Where("crop_id = ? AND farmer_id = ?", id, farmerID).First(&c).Error; err != nil {
			return err
		}
		for _, m := range []any{
			&entities.SoilRecord{},
			&entities.ScheduleEntry{},
			&entities.IrrigationRecord{},
		} {
			if err := tx.Where("crop_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&c).Error
	})
}

func (r *cropRepo) CountActive(farmerID uint) (int64, error) {
	var n int64
	err := r.db.Model(&entities.Crop{}).
		Where("farmer_id = ? AND status = ?", farmerID, entities.CropActive).
		Count(&n).Error
	return n, err
}
