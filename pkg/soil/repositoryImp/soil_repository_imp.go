package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"krishi/entities"
	"krishi/pkg/soil/repository"
)

type soilRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SoilRepository { return &soilRepo{db} }

func (r *soilRepo) Create(s *entities.SoilRecord) error { return r.db.Create(s).Error }

func (r *soilRepo) LatestForCrop(cropID uint) (*entities.SoilRecord, error) {
	var s entities.SoilRecord
	err := r.db.Where("crop_id = ?", cropID).
		Order("recorded_at DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *soilRepo) ListByFarmer(farmerID uint) ([]entities.SoilRecord, error) {
	var out []entities.SoilRecord
	if err := r.db.Where("farmer_id = ?", farmerID).
		Order("recorded_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
