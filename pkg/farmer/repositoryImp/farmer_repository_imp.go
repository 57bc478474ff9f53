package repositoryImp

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"krishi/entities"
	"krishi/pkg/farmer/repository"
)

type farmerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmerRepository { return &farmerRepo{db} }

func (r *farmerRepo) Create(f *entities.Farmer) error {
	f.Username = strings.ToLower(strings.TrimSpace(f.Username))
	return r.db.Create(f).Error
}

func (r *farmerRepo) FindByUsername(username string) (*entities.Farmer, error) {
	var f entities.Farmer
	if err := r.db.Where("LOWER(username) = LOWER(?)", strings.TrimSpace(username)).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmerRepo) FindByID(id uint) (*entities.Farmer, error) {
	var f entities.Farmer
	if err := r.db.First(&f, "farmer_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmerRepo) TouchLastLogin(id uint) error {
	now := time.Now()
	return r.db.Model(&entities.Farmer{}).Where("farmer_id = ?", id).
		Update("last_login", &now).Error
}
